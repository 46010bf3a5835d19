// Package label holds the text annotations placed on a story and the
// stacking order rule for new ones.
package label

import "github.com/google/uuid"

// ID identifies a label for the lifetime of a session.
type ID string

// NewID returns a fresh random label id.
func NewID() ID {
	return ID(uuid.NewString())
}

type Alignment int

const (
	AlignCenter Alignment = iota
	AlignStart
	AlignEnd
)

// Next returns the alignment the composer toggle moves to:
// center -> start -> end -> center.
func (a Alignment) Next() Alignment {
	switch a {
	case AlignCenter:
		return AlignStart
	case AlignStart:
		return AlignEnd
	default:
		return AlignCenter
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "center"
	}
}

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

type Size struct {
	W, H float64
}

// Label is one text annotation and its transform state. Position and Scale
// are the committed values; Offset and LiveScale only carry an in-progress
// drag or pinch and are at identity otherwise.
type Label struct {
	ID         ID
	Text       string
	Color      string
	Background bool
	Align      Alignment
	FontSize   float64

	Position  Point
	Offset    Point
	Scale     float64
	LiveScale float64
	Size      Size
	Z         int
}

// Params are the creation parameters of a label. They do not change after
// the label exists.
type Params struct {
	Text       string
	Color      string
	Background bool
	Align      Alignment
	FontSize   float64
}

// New builds a label at pos with identity live values.
func New(p Params, pos Point, size Size, z int) Label {
	return Label{
		ID:         NewID(),
		Text:       p.Text,
		Color:      p.Color,
		Background: p.Background,
		Align:      p.Align,
		FontSize:   p.FontSize,
		Position:   pos,
		Scale:      1,
		LiveScale:  1,
		Size:       size,
		Z:          z,
	}
}

// RenderedPosition is where the label is drawn right now.
func (l Label) RenderedPosition() Point {
	return l.Position.Add(l.Offset)
}

// RenderedScale is the scale the label is drawn at right now.
func (l Label) RenderedScale() float64 {
	return l.Scale * l.LiveScale
}

// TextColor is the foreground color: black on a filled background,
// the label color otherwise.
func (l Label) TextColor() string {
	if l.Background {
		return "#000"
	}
	return l.Color
}

// Contains reports whether the canvas point p falls on the rendered label.
// The box is scaled around its center.
func (l Label) Contains(p Point) bool {
	pos := l.RenderedPosition()
	s := l.RenderedScale()
	cx := pos.X + l.Size.W/2
	cy := pos.Y + l.Size.H/2
	hw := l.Size.W * s / 2
	hh := l.Size.H * s / 2
	return p.X >= cx-hw && p.X <= cx+hw && p.Y >= cy-hh && p.Y <= cy+hh
}
