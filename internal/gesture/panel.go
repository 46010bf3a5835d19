package gesture

// PanelMargin keeps this much of the options panel on screen when it is
// pushed all the way up.
const PanelMargin = 50.0

// Panel is the vertical translation of the options panel. It follows the
// same live/commit split as label drags but is clamped to
// [-(canvasHeight - topInset - 50), 0].
type Panel struct {
	min       float64
	committed float64
	live      float64
	active    bool
}

func NewPanel(canvasHeight, topInset float64) Panel {
	return Panel{min: -(canvasHeight - topInset - PanelMargin)}
}

func (p *Panel) Begin() {
	p.active = true
	p.live = p.committed
}

func (p *Panel) Active() bool { return p.active }

// Update moves the live offset by ty from the committed value. Positions
// outside the bounds are dropped and the panel stays where it was.
func (p *Panel) Update(ty float64) bool {
	if !p.active {
		return false
	}
	v := p.committed + ty
	if v < p.min || v > 0 {
		return false
	}
	p.live = v
	return true
}

// End commits the translation, clamped to the bounds.
func (p *Panel) End(ty float64) bool {
	if !p.active {
		return false
	}
	p.active = false
	p.committed = p.clamp(p.committed + ty)
	p.live = p.committed
	return true
}

// Offset is the offset the panel is drawn at.
func (p *Panel) Offset() float64 { return p.live }

func (p *Panel) Committed() float64 { return p.committed }

func (p *Panel) Min() float64 { return p.min }

func (p *Panel) clamp(v float64) float64 {
	if v < p.min {
		return p.min
	}
	if v > 0 {
		return 0
	}
	return v
}
