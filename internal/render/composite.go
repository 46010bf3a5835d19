package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sort"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"storycanvas/internal/label"
)

const (
	labelPadding = 5.0
	labelRadius  = 5.0
)

var ErrNothingToExport = errors.New("nothing to export")

// LoadImage decodes the image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Compositor draws labels over a background at canvas resolution.
type Compositor struct {
	Width, Height int
	Measurer      *FontMeasurer
}

func NewCompositor(width, height int, m *FontMeasurer) *Compositor {
	return &Compositor{Width: width, Height: height, Measurer: m}
}

// Render draws bg scaled to cover the canvas and the labels on top of it in
// stacking order, each at its rendered position and scale.
func (c *Compositor) Render(bg image.Image, labels []label.Label) (image.Image, error) {
	if bg == nil && len(labels) == 0 {
		return nil, ErrNothingToExport
	}

	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(color.Black)
	dc.Clear()

	if bg != nil {
		dc.DrawImage(c.cover(bg), 0, 0)
	}

	ordered := make([]label.Label, len(labels))
	copy(ordered, labels)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })

	for _, l := range ordered {
		c.drawLabel(dc, l)
	}
	return dc.Image(), nil
}

// cover scales bg so it fills the canvas, cropping the overflow evenly.
func (c *Compositor) cover(bg image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	b := bg.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return dst
	}
	s := math.Max(float64(c.Width)/float64(b.Dx()), float64(c.Height)/float64(b.Dy()))
	w := int(math.Ceil(float64(b.Dx()) * s))
	h := int(math.Ceil(float64(b.Dy()) * s))
	x := (c.Width - w) / 2
	y := (c.Height - h) / 2
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), bg, b, xdraw.Over, nil)
	return dst
}

func (c *Compositor) drawLabel(dc *gg.Context, l label.Label) {
	pos := l.RenderedPosition()
	s := l.RenderedScale()

	dc.Push()
	defer dc.Pop()
	dc.ScaleAbout(s, s, pos.X+l.Size.W/2, pos.Y+l.Size.H/2)

	if l.Background {
		dc.SetHexColor(l.Color)
		dc.DrawRoundedRectangle(pos.X-labelPadding, pos.Y-labelPadding,
			l.Size.W+2*labelPadding, l.Size.H+2*labelPadding, labelRadius)
		dc.Fill()
	}

	dc.SetFontFace(c.Measurer.Face(l.FontSize))
	dc.SetHexColor(l.TextColor())
	dc.DrawStringWrapped(l.Text, pos.X, pos.Y, 0, 0, l.Size.W, LineSpacing, ggAlign(l.Align))
}

func ggAlign(a label.Alignment) gg.Align {
	switch a {
	case label.AlignStart:
		return gg.AlignLeft
	case label.AlignEnd:
		return gg.AlignRight
	default:
		return gg.AlignCenter
	}
}
