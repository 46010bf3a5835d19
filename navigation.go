package main

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storycanvas/internal/gesture"
	"storycanvas/internal/label"
	"storycanvas/internal/story"
)

// nudgeSelected drags the selected label one step in the direction of key.
// It goes through the same begin/update/end path as a mouse drag, so a
// nudge onto the deletion target removes the label.
func (m *model) nudgeSelected(key string, speed int) (removed bool) {
	cs := m.canvas
	if cs == nil || cs.selected == "" {
		return false
	}
	step := nudgeStep * float64(speed)
	var t label.Point
	switch key {
	case "h", "left", "H", "shift+left":
		t.X = -step
	case "l", "right", "L", "shift+right":
		t.X = step
	case "k", "up", "K", "shift+up":
		t.Y = -step
	case "j", "down", "J", "shift+down":
		t.Y = step
	default:
		return false
	}

	id := cs.selected
	if !cs.session.BeginDrag(id) {
		cs.selected = ""
		return false
	}
	cs.session.UpdateDrag(id, t)
	removed = cs.session.EndDrag(id, t)
	if removed {
		cs.selected = ""
	}
	return removed
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// selectNext moves the selection to the label above the current one,
// wrapping to the bottom of the stack.
func (m *model) selectNext() {
	cs := m.canvas
	labels := cs.session.Labels()
	if len(labels) == 0 {
		cs.selected = ""
		return
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Z < labels[j].Z })
	for i, l := range labels {
		if l.ID == cs.selected {
			cs.selected = labels[(i+1)%len(labels)].ID
			return
		}
	}
	cs.selected = labels[0].ID
}

func (m *model) viewport() viewport {
	return newViewport(m.canvas.session.Canvas, m.width, m.height-1)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	cs := m.canvas
	s := cs.session
	if s.Mode() == story.ModeComposing {
		return nil
	}
	vp := m.viewport()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if cs.drag != nil || cs.panelDrag != nil {
				return nil
			}
			p, ok := vp.point(msg.X, msg.Y)
			if !ok {
				return nil
			}
			if id, ok := s.LabelAt(p); ok && s.BeginDrag(id) {
				cs.selected = id
				cs.drag = &mouseDrag{id: id, startX: msg.X, startY: msg.Y}
				return nil
			}
			snap := s.Snapshot()
			if snap.Toolbar() && msg.Y == vp.row(snap.ToolbarY()) {
				s.BeginPanelDrag()
				cs.panelDrag = &mouseDrag{startX: msg.X, startY: msg.Y, lastY: msg.Y}
				return nil
			}
			cs.selected = ""
		case tea.MouseButtonWheelUp:
			return m.wheelPinch(msg.X, msg.Y, pinchStep)
		case tea.MouseButtonWheelDown:
			return m.wheelPinch(msg.X, msg.Y, 1/pinchStep)
		}

	case tea.MouseActionMotion:
		switch {
		case cs.drag != nil:
			t := vp.delta(msg.X-cs.drag.startX, msg.Y-cs.drag.startY)
			if s.UpdateDrag(cs.drag.id, t) != gesture.FeedbackNone {
				return m.animate()
			}
		case cs.panelDrag != nil:
			cs.panelDrag.lastY = msg.Y
			s.UpdatePanelDrag(vp.delta(0, msg.Y-cs.panelDrag.startY).Y)
		}

	case tea.MouseActionRelease:
		switch {
		case cs.drag != nil:
			id := cs.drag.id
			t := vp.delta(msg.X-cs.drag.startX, msg.Y-cs.drag.startY)
			cs.drag = nil
			if s.EndDrag(id, t) {
				if cs.selected == id {
					cs.selected = ""
				}
				m.successMessage = "Label deleted"
			}
		case cs.panelDrag != nil:
			s.EndPanelDrag(vp.delta(0, msg.Y-cs.panelDrag.startY).Y)
			cs.panelDrag = nil
		}
	}
	return nil
}

// cancelGestures ends whatever the mouse was doing, committing the last
// values seen.
func (m *model) cancelGestures() {
	cs := m.canvas
	if cs == nil {
		return
	}
	if cs.drag != nil {
		if cs.session.CancelDrag(cs.drag.id) && cs.selected == cs.drag.id {
			cs.selected = ""
		}
		cs.drag = nil
	}
	if cs.panelDrag != nil {
		d := cs.panelDrag
		cs.session.EndPanelDrag(m.viewport().delta(0, d.lastY-d.startY).Y)
		cs.panelDrag = nil
	}
	if cs.pinch.id != "" {
		cs.session.CancelPinch(cs.pinch.id)
		cs.pinch = pinchState{seq: cs.pinch.seq}
	}
}

// wheelPinch scales the label under the pointer. Successive notches belong
// to one pinch until pinchIdle passes without another.
func (m *model) wheelPinch(x, y int, step float64) tea.Cmd {
	cs := m.canvas
	s := cs.session
	if cs.pinch.id == "" {
		p, ok := m.viewport().point(x, y)
		if !ok {
			return nil
		}
		id, ok := s.LabelAt(p)
		if !ok || !s.BeginPinch(id) {
			return nil
		}
		cs.selected = id
		cs.pinch = pinchState{id: id, factor: 1, seq: cs.pinch.seq}
	}
	cs.pinch.factor *= step
	s.UpdatePinch(cs.pinch.id, cs.pinch.factor)
	cs.pinch.seq++
	seq := cs.pinch.seq
	return tea.Tick(pinchIdle, func(time.Time) tea.Msg {
		return pinchIdleMsg{seq: seq}
	})
}

func (m *model) endPinch(seq int) {
	cs := m.canvas
	if cs == nil || cs.pinch.id == "" || seq != cs.pinch.seq {
		return
	}
	cs.session.EndPinch(cs.pinch.id, cs.pinch.factor)
	cs.pinch = pinchState{seq: cs.pinch.seq}
}

// pinchSelected applies one pinch step to the selected label from the
// keyboard.
func (m *model) pinchSelected(f float64) {
	cs := m.canvas
	if cs.selected == "" {
		return
	}
	if cs.pinch.id != "" {
		m.endPinch(cs.pinch.seq)
	}
	if cs.session.BeginPinch(cs.selected) {
		cs.session.UpdatePinch(cs.selected, f)
		cs.session.EndPinch(cs.selected, f)
	}
}

// animate starts the frame ticker that drives the deletion target spring.
func (m *model) animate() tea.Cmd {
	if m.canvas.animating {
		return nil
	}
	m.canvas.animating = true
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}
