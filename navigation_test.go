package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycanvas/internal/label"
	"storycanvas/internal/media"
	"storycanvas/internal/story"
)

type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string, align label.Alignment, fontSize float64) (label.Size, error) {
	return label.Size{W: float64(len(text)) * 20, H: 50}, nil
}

// newTestModel returns a model on the canvas screen sized so one cell is
// 10x20 canvas units and the canvas starts at column 30.
func newTestModel(t *testing.T) model {
	t.Helper()
	s := story.New(media.Item{Path: "shot.jpg", Kind: media.KindPhoto},
		story.Canvas{Width: 390, Height: 800, TopInset: 24}, fixedMeasurer{})
	cs := &canvasState{session: s, composer: newComposer()}
	cs.unsubscribe = s.Subscribe(func(snap story.Snapshot) { cs.committed = snap })
	return model{
		width:  100,
		height: 41,
		screen: ScreenStoryCanvas,
		config: defaultConfig(),
		canvas: cs,
	}
}

// addTestLabel commits "hi" at (175, 375), size 40x50.
func addTestLabel(t *testing.T, m model) label.ID {
	t.Helper()
	s := m.canvas.session
	s.OpenComposer()
	s.SetDraftText("hi")
	id, ok, err := s.Commit()
	require.NoError(t, err)
	require.True(t, ok)
	return id
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestNudgeSelected(t *testing.T) {
	m := newTestModel(t)
	id := addTestLabel(t, m)
	m.canvas.selected = id

	assert.False(t, m.nudgeSelected("j", 1))
	l, _ := m.canvas.session.Label(id)
	assert.Equal(t, label.Point{X: 175, Y: 385}, l.Position)

	assert.False(t, m.nudgeSelected("shift+left", m.getMoveSpeed("shift+left")))
	l, _ = m.canvas.session.Label(id)
	assert.Equal(t, label.Point{X: 155, Y: 385}, l.Position)
	assert.Equal(t, label.Point{}, l.Offset)
}

func TestNudgeOntoTrashDeletes(t *testing.T) {
	m := newTestModel(t)
	id := addTestLabel(t, m)
	m.canvas.selected = id

	// Each step moves 20 down; the bottom edge reaches 705 on the 14th.
	steps := 0
	for i := 0; i < 20; i++ {
		steps++
		if m.nudgeSelected("J", 2) {
			break
		}
	}
	assert.Equal(t, 14, steps)
	assert.Equal(t, 0, m.canvas.session.Len())
	assert.Empty(t, m.canvas.selected)
}

func TestNudgeWithoutSelection(t *testing.T) {
	m := newTestModel(t)
	addTestLabel(t, m)
	assert.False(t, m.nudgeSelected("j", 1))
}

func TestSelectNextCyclesByZ(t *testing.T) {
	m := newTestModel(t)
	first := addTestLabel(t, m)
	second := addTestLabel(t, m)

	m.selectNext()
	assert.Equal(t, first, m.canvas.selected)
	m.selectNext()
	assert.Equal(t, second, m.canvas.selected)
	m.selectNext()
	assert.Equal(t, first, m.canvas.selected)
}

func TestMouseDragMovesLabel(t *testing.T) {
	m := newTestModel(t)
	id := addTestLabel(t, m)

	m.handleMouse(press(49, 20))
	require.NotNil(t, m.canvas.drag)
	assert.Equal(t, id, m.canvas.selected)
	assert.True(t, m.canvas.session.Dragging())

	m.handleMouse(motion(52, 22))
	l, _ := m.canvas.session.Label(id)
	assert.Equal(t, label.Point{X: 175, Y: 375}, l.Position)
	assert.Equal(t, label.Point{X: 30, Y: 40}, l.Offset)

	m.handleMouse(release(52, 22))
	assert.Nil(t, m.canvas.drag)
	l, _ = m.canvas.session.Label(id)
	assert.Equal(t, label.Point{X: 205, Y: 415}, l.Position)
	assert.Equal(t, label.Point{}, l.Offset)
	assert.False(t, m.canvas.session.Dragging())
}

func TestMouseDragToTrash(t *testing.T) {
	m := newTestModel(t)
	addTestLabel(t, m)

	m.handleMouse(press(49, 20))
	cmd := m.handleMouse(motion(49, 35))
	assert.NotNil(t, cmd)
	assert.True(t, m.canvas.animating)
	assert.True(t, m.canvas.session.Snapshot().Trash.Armed)

	m.handleMouse(release(49, 35))
	assert.Equal(t, 0, m.canvas.session.Len())
	assert.Equal(t, "Label deleted", m.successMessage)
}

func TestPressOnEmptyClearsSelection(t *testing.T) {
	m := newTestModel(t)
	m.canvas.selected = addTestLabel(t, m)

	m.handleMouse(press(32, 30))
	assert.Empty(t, m.canvas.selected)
	assert.Nil(t, m.canvas.drag)
	assert.Nil(t, m.canvas.panelDrag)
}

func TestToolbarDragMovesPanel(t *testing.T) {
	m := newTestModel(t)

	// At rest the toolbar sits on row 37 (y = 750).
	m.handleMouse(press(40, 37))
	require.NotNil(t, m.canvas.panelDrag)
	assert.True(t, m.canvas.session.PanelDragging())

	m.handleMouse(motion(40, 36))
	assert.Equal(t, -20.0, m.canvas.session.Snapshot().PanelOffset)

	m.handleMouse(release(40, 36))
	assert.Nil(t, m.canvas.panelDrag)
	assert.Equal(t, -20.0, m.canvas.session.Snapshot().PanelOffset)
}

func TestToolbarSwipeCoversPanelRange(t *testing.T) {
	m := newTestModel(t)
	s := m.canvas.session

	m.handleMouse(press(40, 37))
	m.handleMouse(motion(40, 1))
	assert.Equal(t, -720.0, s.Snapshot().PanelOffset)
	m.handleMouse(release(40, 0))
	assert.Equal(t, -726.0, s.Snapshot().PanelOffset)

	// Pushed all the way up the toolbar is still on screen and grabbable.
	assert.Equal(t, 1, m.viewport().row(s.Snapshot().ToolbarY()))
	m.handleMouse(press(40, 1))
	require.NotNil(t, m.canvas.panelDrag)
	m.handleMouse(motion(40, 37))
	m.handleMouse(release(40, 37))
	assert.Equal(t, -6.0, s.Snapshot().PanelOffset)
}

func TestWheelPinch(t *testing.T) {
	m := newTestModel(t)
	id := addTestLabel(t, m)

	assert.NotNil(t, m.wheelPinch(49, 20, pinchStep))
	m.wheelPinch(49, 20, pinchStep)
	l, _ := m.canvas.session.Label(id)
	assert.InDelta(t, 1.21, l.LiveScale, 1e-9)
	assert.Equal(t, 1.0, l.Scale)

	// A tick from before the last notch does not end the pinch.
	m.endPinch(m.canvas.pinch.seq - 1)
	l, _ = m.canvas.session.Label(id)
	assert.Equal(t, 1.0, l.Scale)

	m.endPinch(m.canvas.pinch.seq)
	l, _ = m.canvas.session.Label(id)
	assert.InDelta(t, 1.21, l.Scale, 1e-9)
	assert.Equal(t, 1.0, l.LiveScale)
	assert.Empty(t, m.canvas.pinch.id)
}

func TestWheelOverEmptySpace(t *testing.T) {
	m := newTestModel(t)
	addTestLabel(t, m)
	assert.Nil(t, m.wheelPinch(32, 30, pinchStep))
	assert.Empty(t, m.canvas.pinch.id)
}

func TestPinchSelected(t *testing.T) {
	m := newTestModel(t)
	id := addTestLabel(t, m)
	m.canvas.selected = id

	m.pinchSelected(pinchStep)
	l, _ := m.canvas.session.Label(id)
	assert.InDelta(t, 1.1, l.Scale, 1e-9)
	assert.Equal(t, 1.0, l.LiveScale)
}

func TestCancelGesturesCommits(t *testing.T) {
	m := newTestModel(t)
	id := addTestLabel(t, m)

	m.handleMouse(press(49, 20))
	m.handleMouse(motion(50, 20))
	m.cancelGestures()

	assert.Nil(t, m.canvas.drag)
	l, _ := m.canvas.session.Label(id)
	assert.Equal(t, label.Point{X: 185, Y: 375}, l.Position)
}

func TestComposerFlow(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(model)
	require.Equal(t, story.ModeComposing, m.canvas.session.Mode())
	assert.True(t, m.canvas.session.Keyboard().Open)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("yo")})
	m = next.(model)
	assert.Equal(t, "yo", m.canvas.session.Draft().Text)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	assert.Equal(t, label.AlignStart, m.canvas.session.Draft().Align)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m = next.(model)
	assert.True(t, m.canvas.session.Draft().Background)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(model)
	assert.Equal(t, story.ModeViewing, m.canvas.session.Mode())
	assert.False(t, m.canvas.session.Keyboard().Open)
	require.Equal(t, 1, m.canvas.session.Len())
	assert.Len(t, m.canvas.committed.Labels, 1)

	l := m.canvas.session.Labels()[0]
	assert.Equal(t, m.canvas.selected, l.ID)
	assert.Equal(t, "yo", l.Text)
	assert.True(t, l.Background)
	assert.Equal(t, label.AlignStart, l.Align)
}

func TestComposerEscapeDiscards(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("gone")})
	m = next.(model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)

	assert.Equal(t, story.ModeViewing, m.canvas.session.Mode())
	assert.Equal(t, 0, m.canvas.session.Len())
	assert.Equal(t, ScreenStoryCanvas, m.screen)
}

func TestBackReturnsToAddStory(t *testing.T) {
	m := newTestModel(t)
	addTestLabel(t, m)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	m = next.(model)
	assert.Equal(t, ScreenAddStory, m.screen)
	assert.Nil(t, m.canvas)
	assert.NotNil(t, cmd)
}
