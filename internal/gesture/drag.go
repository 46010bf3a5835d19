package gesture

import "storycanvas/internal/label"

// Drag tracks one drag gesture. Recognizers report the translation since
// the gesture began, so updates replace the value instead of summing.
type Drag struct {
	active      bool
	translation label.Point
}

func (d *Drag) Begin() {
	d.active = true
	d.translation = label.Point{}
}

func (d *Drag) Active() bool { return d.active }

// Translation is the last cumulative translation seen.
func (d *Drag) Translation() label.Point { return d.translation }

// Update records t. Updates without an active gesture are ignored.
func (d *Drag) Update(t label.Point) bool {
	if !d.active {
		return false
	}
	d.translation = t
	return true
}

// End finishes the gesture with its final translation.
func (d *Drag) End(t label.Point) (label.Point, bool) {
	if !d.active {
		return label.Point{}, false
	}
	d.active = false
	d.translation = label.Point{}
	return t, true
}

// Cancel finishes the gesture with the last translation seen, so an
// abandoned stream commits like a completed one.
func (d *Drag) Cancel() (label.Point, bool) {
	return d.End(d.translation)
}
