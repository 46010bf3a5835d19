package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storycanvas/internal/label"
	"storycanvas/internal/render"
)

// Exporter saves a story: the original media is copied and, for photos, the
// labels are composited onto it.
type Exporter struct {
	Dir        string
	PDF        bool
	Compositor *render.Compositor
	Log        *log.Logger

	now func() time.Time
}

// Result lists the files an export wrote.
type Result struct {
	Copy      string
	Composite string
	PDF       string
}

func (e *Exporter) logf(format string, args ...any) {
	if e.Log != nil {
		e.Log.Printf("[export] "+format, args...)
	}
}

func (e *Exporter) stamp() string {
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	return now().UTC().Format("20060102T150405.000Z")
}

// Export writes item and the labels drawn over it into e.Dir.
func (e *Exporter) Export(ctx context.Context, item Item, labels []label.Label) (Result, error) {
	res, err := e.export(ctx, item, labels)
	if err != nil {
		e.logf("failed to save %s: %v", item.Path, err)
		return res, err
	}
	e.logf("saved %s to %s", item.Kind, res.Copy)
	if res.Composite != "" {
		e.logf("composited %d labels to %s", len(labels), res.Composite)
	}
	return res, nil
}

func (e *Exporter) export(ctx context.Context, item Item, labels []label.Label) (Result, error) {
	var res Result
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return res, classify(err)
	}

	ext := strings.ToLower(filepath.Ext(item.Path))
	base := e.freeBase(fmt.Sprintf("%s_%s", item.Kind, e.stamp()), ext)
	res.Copy = filepath.Join(e.Dir, base+ext)
	if err := copyFile(ctx, item.Path, res.Copy); err != nil {
		return res, err
	}

	if item.Kind != KindPhoto || e.Compositor == nil {
		return res, nil
	}

	bg, err := render.LoadImage(item.Path)
	if err != nil {
		return res, err
	}
	img, err := e.Compositor.Render(bg, labels)
	if err != nil {
		return res, err
	}
	res.Composite = filepath.Join(e.Dir, base+"_story.png")
	if err := render.SavePNG(res.Composite, img); err != nil {
		return res, classify(err)
	}
	if e.PDF {
		res.PDF = filepath.Join(e.Dir, base+"_story.pdf")
		if err := render.SavePDF(res.PDF, img); err != nil {
			return res, classify(err)
		}
	}
	return res, nil
}

// freeBase returns base, or base with a numeric suffix, such that no file
// an export would write under it exists yet in e.Dir.
func (e *Exporter) freeBase(base, ext string) string {
	candidate := base
	for n := 2; e.taken(candidate, ext); n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	return candidate
}

func (e *Exporter) taken(base, ext string) bool {
	for _, suffix := range []string{ext, "_story.png", "_story.pdf"} {
		if _, err := os.Stat(filepath.Join(e.Dir, base+suffix)); err == nil {
			return true
		}
	}
	return false
}

func copyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return classify(err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return classify(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
