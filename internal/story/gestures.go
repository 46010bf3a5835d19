package story

import (
	"storycanvas/internal/gesture"
	"storycanvas/internal/label"
)

// Gesture events are addressed by label id. Events for unknown labels and
// events that do not match the gesture's state are ignored.

func (s *Session) controller(id label.ID) (*gesture.Controller, *label.Label, int) {
	c, ok := s.controllers[id]
	if !ok {
		return nil, nil, -1
	}
	l, i := s.borrow(id)
	if l == nil {
		return nil, nil, -1
	}
	return c, l, i
}

// BeginDrag starts dragging label id.
func (s *Session) BeginDrag(id label.ID) bool {
	c, l, _ := s.controller(id)
	if c == nil {
		return false
	}
	c.BeginDrag(l)
	return true
}

// UpdateDrag sets the drag's cumulative translation t and returns the
// deletion target's reaction to it.
func (s *Session) UpdateDrag(id label.ID, t label.Point) gesture.Feedback {
	c, l, _ := s.controller(id)
	if c == nil {
		return gesture.FeedbackNone
	}
	return c.UpdateDrag(l, t, s.target, s.indicator)
}

// EndDrag commits the drag and removes the label if it was dropped on the
// deletion target.
func (s *Session) EndDrag(id label.ID, t label.Point) (removed bool) {
	c, l, i := s.controller(id)
	if c == nil {
		return false
	}
	remove, ok := c.EndDrag(l, t, s.target, s.indicator)
	return s.finishDrag(i, remove, ok)
}

// CancelDrag ends an abandoned drag as if it had completed with the last
// translation seen.
func (s *Session) CancelDrag(id label.ID) (removed bool) {
	c, l, i := s.controller(id)
	if c == nil {
		return false
	}
	remove, ok := c.CancelDrag(l, s.target, s.indicator)
	return s.finishDrag(i, remove, ok)
}

func (s *Session) finishDrag(i int, remove, ok bool) bool {
	if !ok {
		return false
	}
	if remove {
		s.logf("deleted label %s", s.labels[i].ID)
		s.remove(i)
	}
	s.publish()
	return remove
}

func (s *Session) BeginPinch(id label.ID) bool {
	c, l, _ := s.controller(id)
	if c == nil {
		return false
	}
	c.BeginPinch(l)
	return true
}

// UpdatePinch sets the pinch's cumulative scale factor f.
func (s *Session) UpdatePinch(id label.ID, f float64) bool {
	c, l, _ := s.controller(id)
	if c == nil {
		return false
	}
	return c.UpdatePinch(l, f)
}

// EndPinch commits the pinch factor into the label's scale.
func (s *Session) EndPinch(id label.ID, f float64) bool {
	c, l, _ := s.controller(id)
	if c == nil || !c.EndPinch(l, f) {
		return false
	}
	s.publish()
	return true
}

// CancelPinch commits the last factor seen.
func (s *Session) CancelPinch(id label.ID) bool {
	c, l, _ := s.controller(id)
	if c == nil || !c.CancelPinch(l) {
		return false
	}
	s.publish()
	return true
}

// GestureState reports which gestures are in progress on label id.
func (s *Session) GestureState(id label.ID) (dragging, pinching bool) {
	if c, ok := s.controllers[id]; ok {
		return c.Dragging(), c.Pinching()
	}
	return false, false
}

func (s *Session) BeginPanelDrag() { s.panel.Begin() }

func (s *Session) UpdatePanelDrag(ty float64) bool { return s.panel.Update(ty) }

func (s *Session) EndPanelDrag(ty float64) bool { return s.panel.End(ty) }

func (s *Session) PanelDragging() bool { return s.panel.Active() }

// StepIndicator advances the deletion target animation by one frame and
// reports whether it has settled.
func (s *Session) StepIndicator() bool { return s.indicator.Step() }
