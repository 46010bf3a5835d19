package gesture

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	ArmedScale = 1.5
	RestScale  = 1.0

	springFrequency = 6.0
	springDamping   = 0.5
	settleEpsilon   = 0.001
)

// Feedback is the visual reaction of the deletion target to a drag update.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackGrow
	FeedbackShrink
)

func (f Feedback) String() string {
	switch f {
	case FeedbackGrow:
		return "grow"
	case FeedbackShrink:
		return "shrink"
	default:
		return "none"
	}
}

// Indicator is the animated deletion target. Arming flips immediately so a
// label sitting inside the threshold triggers the grow animation once, not
// on every frame; the spring only moves the drawn scale.
type Indicator struct {
	spring   harmonica.Spring
	armed    bool
	scale    float64
	velocity float64
	target   float64
}

// NewIndicator returns a resting indicator animated at fps frames per second.
func NewIndicator(fps int) *Indicator {
	return &Indicator{
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		scale:  RestScale,
		target: RestScale,
	}
}

// Arm starts the grow animation. It returns false if already armed.
func (i *Indicator) Arm() bool {
	if i.armed {
		return false
	}
	i.armed = true
	i.target = ArmedScale
	return true
}

// Disarm starts the shrink animation. It returns false if not armed.
func (i *Indicator) Disarm() bool {
	if !i.armed {
		return false
	}
	i.armed = false
	i.target = RestScale
	return true
}

// Reset clears the armed state and snaps back to rest.
func (i *Indicator) Reset() {
	i.armed = false
	i.target = RestScale
	i.scale = RestScale
	i.velocity = 0
}

// Step advances the animation by one frame and reports whether it has
// settled on its target.
func (i *Indicator) Step() bool {
	if i.Settled() {
		return true
	}
	i.scale, i.velocity = i.spring.Update(i.scale, i.velocity, i.target)
	if math.Abs(i.scale-i.target) < settleEpsilon && math.Abs(i.velocity) < settleEpsilon {
		i.scale = i.target
		i.velocity = 0
		return true
	}
	return false
}

func (i *Indicator) Settled() bool {
	return i.scale == i.target && i.velocity == 0
}

func (i *Indicator) Armed() bool     { return i.armed }
func (i *Indicator) Scale() float64  { return i.scale }
func (i *Indicator) Target() float64 { return i.target }
