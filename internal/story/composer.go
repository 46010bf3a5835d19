package story

import (
	"fmt"

	"storycanvas/internal/gesture"
	"storycanvas/internal/label"
)

// edgeMargin is the gap kept between start- or end-aligned labels and the
// canvas edge.
const edgeMargin = 15.0

// Draft is the text being composed. It only becomes a label on commit.
type Draft struct {
	Text           string
	Align          label.Alignment
	Background     bool
	Color          string
	PaletteVisible bool
}

// Keyboard is the last reported on-screen keyboard state.
type Keyboard struct {
	Open   bool
	Height float64
}

func (s *Session) freshDraft() Draft {
	return Draft{Align: label.AlignCenter, Color: s.palette[0]}
}

func (s *Session) Draft() Draft { return s.draft }

func (s *Session) Keyboard() Keyboard { return s.keyboard }

// OpenComposer shows the text tool with a reset draft.
func (s *Session) OpenComposer() {
	s.draft = s.freshDraft()
	s.mode = ModeComposing
}

func (s *Session) composing() bool { return s.mode == ModeComposing }

func (s *Session) SetDraftText(text string) {
	if s.composing() {
		s.draft.Text = text
	}
}

// ToggleAlign moves the draft to the next alignment.
func (s *Session) ToggleAlign() label.Alignment {
	if s.composing() {
		s.draft.Align = s.draft.Align.Next()
	}
	return s.draft.Align
}

func (s *Session) ToggleBackground() bool {
	if s.composing() {
		s.draft.Background = !s.draft.Background
	}
	return s.draft.Background
}

// TogglePalette shows or hides the color row.
func (s *Session) TogglePalette() bool {
	if s.composing() {
		s.draft.PaletteVisible = !s.draft.PaletteVisible
	}
	return s.draft.PaletteVisible
}

func (s *Session) SelectColor(color string) {
	if s.composing() && color != "" {
		s.draft.Color = color
	}
}

// CycleColor steps through the palette from the current draft color.
func (s *Session) CycleColor(step int) string {
	if !s.composing() {
		return s.draft.Color
	}
	cur := 0
	for i, c := range s.palette {
		if c == s.draft.Color {
			cur = i
			break
		}
	}
	n := len(s.palette)
	s.draft.Color = s.palette[((cur+step)%n+n)%n]
	return s.draft.Color
}

// Commit turns the draft into a label on top of the others. An empty draft
// just closes the composer. A measuring error leaves the composer open.
func (s *Session) Commit() (label.ID, bool, error) {
	if !s.composing() {
		return "", false, nil
	}
	if s.draft.Text == "" {
		s.mode = ModeViewing
		return "", false, nil
	}

	size, err := s.measurer.Measure(s.draft.Text, s.draft.Align, s.fontSize)
	if err != nil {
		return "", false, fmt.Errorf("measure label text: %w", err)
	}

	l := label.New(label.Params{
		Text:       s.draft.Text,
		Color:      s.draft.Color,
		Background: s.draft.Background,
		Align:      s.draft.Align,
		FontSize:   s.fontSize,
	}, s.place(size, s.draft.Align), size, label.NextZ(s.labels))

	s.labels = append(s.labels, l)
	s.controllers[l.ID] = &gesture.Controller{}
	s.mode = ModeViewing
	s.logf("added label %s z=%d at (%.0f, %.0f)", l.ID, l.Z, l.Position.X, l.Position.Y)
	s.publish()
	return l.ID, true, nil
}

// Cancel discards the draft and closes the composer.
func (s *Session) Cancel() {
	s.draft = s.freshDraft()
	s.mode = ModeViewing
}

// KeyboardChanged records the keyboard state. Closing the keyboard
// dismisses the text tool.
func (s *Session) KeyboardChanged(open bool, height float64) {
	s.keyboard = Keyboard{Open: open, Height: height}
	if open {
		return
	}
	s.keyboard.Height = 0
	if s.composing() {
		s.Cancel()
	}
}

// place returns the initial position of a label of size: vertically
// centered, horizontally by alignment.
func (s *Session) place(size label.Size, align label.Alignment) label.Point {
	var x float64
	switch align {
	case label.AlignStart:
		x = edgeMargin
	case label.AlignEnd:
		x = s.Canvas.Width - size.W - edgeMargin
	default:
		x = (s.Canvas.Width - size.W) / 2
	}
	return label.Point{X: x, Y: (s.Canvas.Height - size.H) / 2}
}
