package gesture

import "math"

// Pinch tracks one pinch gesture. The factor is cumulative since the
// gesture began.
type Pinch struct {
	active bool
	factor float64
}

func (p *Pinch) Begin() {
	p.active = true
	p.factor = 1
}

func (p *Pinch) Active() bool { return p.active }

func (p *Pinch) Factor() float64 {
	if !p.active {
		return 1
	}
	return p.factor
}

// validFactor rejects factors a scale cannot be multiplied by: zero,
// negatives, NaN and infinities.
func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

// Update records f. Invalid factors and updates without an active gesture
// are ignored.
func (p *Pinch) Update(f float64) bool {
	if !p.active || !validFactor(f) {
		return false
	}
	p.factor = f
	return true
}

// End finishes the gesture with its final factor.
func (p *Pinch) End(f float64) (float64, bool) {
	if !p.active {
		return 1, false
	}
	if !validFactor(f) {
		f = p.factor
	}
	p.active = false
	p.factor = 1
	return f, true
}

// Cancel finishes the gesture with the last factor seen.
func (p *Pinch) Cancel() (float64, bool) {
	return p.End(p.factor)
}
