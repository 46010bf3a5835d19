package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
)

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}

// SavePDF writes img as a single page sized to the image, in points.
func SavePDF(path string, img image.Image) error {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("story", opts, &buf)
	pdf.ImageOptions("story", 0, 0, w, h, false, opts, 0, "")
	return pdf.OutputFileAndClose(path)
}
