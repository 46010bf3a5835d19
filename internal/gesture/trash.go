// Package gesture turns raw drag and pinch streams into label transforms.
// Every gesture keeps its in-progress value apart from the committed one:
// updates only touch live state and the label model changes once, when the
// gesture completes.
package gesture

import (
	"math"

	"storycanvas/internal/label"
)

const (
	// DeleteThreshold is how close, in canvas pixels, a label's bottom edge
	// has to be to the deletion target to be dropped into it.
	DeleteThreshold = 50.0

	targetInset = 62.0
)

// Target is the fixed deletion target near the bottom of the canvas.
type Target struct {
	Y         float64
	Threshold float64
}

// NewTarget anchors the deletion target for a canvas of the given height.
func NewTarget(canvasHeight float64) Target {
	return Target{Y: canvasHeight - targetInset, Threshold: DeleteThreshold}
}

// Near reports whether bottomY is strictly within threshold of targetY.
func Near(bottomY, targetY, threshold float64) bool {
	return math.Abs(bottomY-targetY) < threshold
}

// BottomEdge is the y of the label's bottom edge on the scaled box if the
// label were committed dy below its current position.
func BottomEdge(l label.Label, dy float64) float64 {
	return (l.Position.Y + dy + l.Size.H) * l.RenderedScale()
}

// Hit reports whether l, moved dy from its committed position, would be
// dropped into the target.
func (t Target) Hit(l label.Label, dy float64) bool {
	return Near(BottomEdge(l, dy), t.Y, t.Threshold)
}
