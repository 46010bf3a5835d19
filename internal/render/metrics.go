// Package render measures label text and composites labels onto the story
// media for export.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"storycanvas/internal/label"
)

// LineSpacing is the multiplier applied to the font height between lines.
const LineSpacing = 1.2

// FontMeasurer measures label text with the bold Go font. Lines longer
// than MaxWidth are wrapped.
type FontMeasurer struct {
	MaxWidth float64

	font  *truetype.Font
	faces map[float64]font.Face
}

func NewFontMeasurer(maxWidth float64) (*FontMeasurer, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontMeasurer{
		MaxWidth: maxWidth,
		font:     f,
		faces:    make(map[float64]font.Face),
	}, nil
}

// Face returns the font face for size, creating it on first use.
func (m *FontMeasurer) Face(size float64) font.Face {
	if face, ok := m.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(m.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	m.faces[size] = face
	return face
}

// Lines splits text into the lines it is drawn with.
func (m *FontMeasurer) Lines(text string, fontSize float64) []string {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(m.Face(fontSize))
	return m.wrap(dc, text)
}

func (m *FontMeasurer) wrap(dc *gg.Context, text string) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if m.MaxWidth <= 0 || para == "" {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, dc.WordWrap(para, m.MaxWidth)...)
	}
	return lines
}

// Measure returns the bounding box of text rendered at fontSize. Alignment
// does not change the box; it only moves lines inside it.
func (m *FontMeasurer) Measure(text string, align label.Alignment, fontSize float64) (label.Size, error) {
	if fontSize <= 0 {
		return label.Size{}, fmt.Errorf("invalid font size %v", fontSize)
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(m.Face(fontSize))
	lines := m.wrap(dc, text)
	w, h := dc.MeasureMultilineString(strings.Join(lines, "\n"), LineSpacing)
	return label.Size{W: math.Ceil(w), H: math.Ceil(h)}, nil
}
