package gesture

import "storycanvas/internal/label"

// Controller is the gesture state of a single label. Its methods borrow the
// label for the duration of the call; drag writes Offset and Position, pinch
// writes LiveScale and Scale, so the two may interleave freely.
type Controller struct {
	drag  Drag
	pinch Pinch
}

func (c *Controller) Dragging() bool { return c.drag.Active() }
func (c *Controller) Pinching() bool { return c.pinch.Active() }

func (c *Controller) BeginDrag(l *label.Label) {
	c.drag.Begin()
	l.Offset = label.Point{}
}

// UpdateDrag moves the label's live offset to t and drives the deletion
// target: it arms when the would-be drop position is inside the threshold
// and disarms when it leaves.
func (c *Controller) UpdateDrag(l *label.Label, t label.Point, target Target, ind *Indicator) Feedback {
	if !c.drag.Update(t) {
		return FeedbackNone
	}
	l.Offset = t
	if target.Hit(*l, t.Y) {
		if ind.Arm() {
			return FeedbackGrow
		}
	} else if ind.Disarm() {
		return FeedbackShrink
	}
	return FeedbackNone
}

// EndDrag commits t into the label's position and reports whether the label
// now sits on the deletion target. ok is false when no drag was active.
func (c *Controller) EndDrag(l *label.Label, t label.Point, target Target, ind *Indicator) (remove, ok bool) {
	final, ok := c.drag.End(t)
	if !ok {
		return false, false
	}
	return c.commitDrag(l, final, target, ind), true
}

// CancelDrag commits the last translation seen.
func (c *Controller) CancelDrag(l *label.Label, target Target, ind *Indicator) (remove, ok bool) {
	final, ok := c.drag.Cancel()
	if !ok {
		return false, false
	}
	return c.commitDrag(l, final, target, ind), true
}

func (c *Controller) commitDrag(l *label.Label, t label.Point, target Target, ind *Indicator) bool {
	l.Position = l.Position.Add(t)
	l.Offset = label.Point{}
	ind.Reset()
	return target.Hit(*l, 0)
}

func (c *Controller) BeginPinch(l *label.Label) {
	c.pinch.Begin()
	l.LiveScale = 1
}

// UpdatePinch sets the live scale so the label renders at Scale * f.
func (c *Controller) UpdatePinch(l *label.Label, f float64) bool {
	if !c.pinch.Update(f) {
		return false
	}
	l.LiveScale = f
	return true
}

// EndPinch commits f into the label's scale.
func (c *Controller) EndPinch(l *label.Label, f float64) bool {
	final, ok := c.pinch.End(f)
	if !ok {
		return false
	}
	l.Scale *= final
	l.LiveScale = 1
	return true
}

// CancelPinch commits the last factor seen.
func (c *Controller) CancelPinch(l *label.Label) bool {
	final, ok := c.pinch.Cancel()
	if !ok {
		return false
	}
	l.Scale *= final
	l.LiveScale = 1
	return true
}
