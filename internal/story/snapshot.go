package story

import (
	"storycanvas/internal/gesture"
	"storycanvas/internal/label"
	"storycanvas/internal/media"
)

// Trash is the deletion target as it should be drawn. It is only shown
// while a label is being dragged.
type Trash struct {
	Visible bool
	Armed   bool
	Scale   float64
	Y       float64
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	SessionID   string
	Media       media.Item
	Canvas      Canvas
	Labels      []label.Label
	Mode        Mode
	Draft       Draft
	Keyboard    Keyboard
	Dragging    bool
	Trash       Trash
	PanelOffset float64
}

// Toolbar reports whether the top options are shown: they hide while a
// label is dragged or text is being composed.
func (s Snapshot) Toolbar() bool {
	return !s.Dragging && s.Mode != ModeComposing
}

// ToolbarY is the canvas y of the options panel's bottom edge, where its
// toolbar sits. It runs from Height-PanelMargin at rest up to TopInset
// when the panel is pushed all the way up.
func (s Snapshot) ToolbarY() float64 {
	return s.Canvas.Height - gesture.PanelMargin + s.PanelOffset
}

func (s *Session) Snapshot() Snapshot {
	dragging := s.Dragging()
	return Snapshot{
		SessionID: s.ID,
		Media:     s.Media,
		Canvas:    s.Canvas,
		Labels:    s.Labels(),
		Mode:      s.mode,
		Draft:     s.draft,
		Keyboard:  s.keyboard,
		Dragging:  dragging,
		Trash: Trash{
			Visible: dragging,
			Armed:   s.indicator.Armed(),
			Scale:   s.indicator.Scale(),
			Y:       s.target.Y,
		},
		PanelOffset: s.panel.Offset(),
	}
}
