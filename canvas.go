package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"storycanvas/internal/gesture"
	"storycanvas/internal/label"
	"storycanvas/internal/story"
)

// viewport maps the story canvas onto terminal cells. Cells are about
// twice as tall as they are wide.
type viewport struct {
	left  int
	cols  int
	rows  int
	cellW float64
	cellH float64
}

func newViewport(c story.Canvas, width, height int) viewport {
	rows := height
	if rows < 1 {
		rows = 1
	}
	cellH := c.Height / float64(rows)
	cellW := cellH / 2
	cols := int(math.Ceil(c.Width / cellW))
	if width > 0 && cols > width {
		cols = width
		cellW = c.Width / float64(cols)
		cellH = cellW * 2
		rows = int(math.Ceil(c.Height / cellH))
	}
	left := 0
	if width > cols {
		left = (width - cols) / 2
	}
	return viewport{left: left, cols: cols, rows: rows, cellW: cellW, cellH: cellH}
}

// point returns the canvas point at the center of screen cell (x, y).
func (v viewport) point(x, y int) (label.Point, bool) {
	cx := x - v.left
	if cx < 0 || cx >= v.cols || y < 0 || y >= v.rows {
		return label.Point{}, false
	}
	return label.Point{
		X: (float64(cx) + 0.5) * v.cellW,
		Y: (float64(y) + 0.5) * v.cellH,
	}, true
}

// delta converts a movement of whole cells into canvas units.
func (v viewport) delta(dx, dy int) label.Point {
	return label.Point{X: float64(dx) * v.cellW, Y: float64(dy) * v.cellH}
}

func (v viewport) col(x float64) int { return int(math.Floor(x / v.cellW)) }
func (v viewport) row(y float64) int { return int(math.Floor(y / v.cellH)) }

type cell struct {
	ch        rune
	fg        string
	bg        string
	underline bool
}

// grid is the canvas rasterized to styled terminal cells.
type grid struct {
	cols  int
	rows  int
	cells [][]cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]cell, cols)
		for x := range g.cells[y] {
			g.cells[y][x] = cell{ch: ' '}
		}
	}
	return g
}

func (g *grid) valid(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

func (g *grid) fill(bg string) {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = cell{ch: ' ', bg: bg}
		}
	}
}

// paintImage draws img, which must be cols wide and twice rows high, with
// one upper half block per cell.
func (g *grid) paintImage(img *image.RGBA) {
	b := img.Bounds()
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			top := img.RGBAAt(b.Min.X+x, b.Min.Y+2*y)
			bottom := img.RGBAAt(b.Min.X+x, b.Min.Y+2*y+1)
			g.cells[y][x] = cell{ch: '▀', fg: hexColor(top), bg: hexColor(bottom)}
		}
	}
}

// text writes s starting at (x, y). Cells keep their background unless bg
// is set.
func (g *grid) text(x, y int, s string, fg, bg string, underline bool) {
	for i, r := range []rune(s) {
		cx := x + i
		if !g.valid(cx, y) {
			continue
		}
		c := g.cells[y][cx]
		switch {
		case bg != "":
			c.bg = bg
		case c.ch == '▀':
			c.bg = c.fg
		}
		c.ch = r
		c.fg = fg
		c.underline = underline
		g.cells[y][cx] = c
	}
}

func (g *grid) rect(x0, y0, x1, y1 int, bg string) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if g.valid(x, y) {
				g.cells[y][x] = cell{ch: ' ', bg: bg}
			}
		}
	}
}

// lines renders the grid, styling runs of identical cells together.
func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for y, row := range g.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, c := range row[start:x] {
				run = append(run, c.ch)
			}
			b.WriteString(cellStyle(row[start]).Render(string(run)))
			start = x
		}
		out[y] = b.String()
	}
	return out
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.underline == b.underline
}

func cellStyle(c cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	if c.underline {
		s = s.Underline(true)
	}
	return s
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// expandHex turns the short "#fff" form into "#ffffff" so terminals that
// only take the long form still get the color.
func expandHex(c string) string {
	if len(c) == 4 && c[0] == '#' {
		return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	return c
}

// scaleCover fills a cols by 2*rows image with src, cropping whatever
// overflows the aspect ratio.
func scaleCover(src image.Image, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	sb := src.Bounds()
	if sb.Empty() {
		return dst
	}
	scale := math.Max(float64(cols)/float64(sb.Dx()), float64(rows*2)/float64(sb.Dy()))
	w := int(math.Ceil(float64(sb.Dx()) * scale))
	h := int(math.Ceil(float64(sb.Dy()) * scale))
	x := (cols - w) / 2
	y := (rows*2 - h) / 2
	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, draw.Src, nil)
	return dst
}

// lineSplitter splits label text into its drawn lines.
type lineSplitter interface {
	Lines(text string, fontSize float64) []string
}

// canvasView holds what drawCanvas needs besides the snapshot.
type canvasView struct {
	vp         viewport
	background *image.RGBA
	video      bool
	lines      lineSplitter
	selected   label.ID
}

func drawCanvas(snap story.Snapshot, v canvasView) []string {
	g := newGrid(v.vp.cols, v.vp.rows)
	switch {
	case v.background != nil:
		g.paintImage(v.background)
	case v.video:
		g.fill(videoPlaceholderColor)
		msg := "▶ video"
		g.text((g.cols-len([]rune(msg)))/2, g.rows/2, msg, "#aaaaaa", videoPlaceholderColor, false)
	default:
		g.fill("#000000")
	}

	labels := append([]label.Label(nil), snap.Labels...)
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Z < labels[j].Z })
	for _, l := range labels {
		drawLabel(g, v, l)
	}

	if snap.Toolbar() {
		drawToolbar(g, v.vp, snap)
	}
	if snap.Trash.Visible {
		drawTrash(g, v.vp, snap.Trash)
	}
	return g.lines()
}

func drawLabel(g *grid, v canvasView, l label.Label) {
	pos := l.RenderedPosition()
	s := l.RenderedScale()
	cx := pos.X + l.Size.W/2
	cy := pos.Y + l.Size.H/2
	x0 := v.vp.col(cx - l.Size.W*s/2)
	x1 := v.vp.col(cx+l.Size.W*s/2) + 1
	y0 := v.vp.row(cy - l.Size.H*s/2)
	y1 := v.vp.row(cy+l.Size.H*s/2) + 1

	if l.Background {
		g.rect(x0, y0, x1, y1, expandHex(l.Color))
	}

	var lines []string
	if v.lines != nil {
		lines = v.lines.Lines(l.Text, l.FontSize)
	} else {
		lines = strings.Split(l.Text, "\n")
	}
	width := x1 - x0
	top := y0 + (y1-y0-len(lines))/2
	if top < y0 {
		top = y0
	}
	bg := ""
	if l.Background {
		bg = expandHex(l.Color)
	}
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		x := x0
		switch l.Align {
		case label.AlignCenter:
			x = x0 + (width-len(runes))/2
		case label.AlignEnd:
			x = x1 - len(runes)
		}
		g.text(x, top+i, string(runes), expandHex(l.TextColor()), bg, l.ID == v.selected)
	}
}

func drawToolbar(g *grid, vp viewport, snap story.Snapshot) {
	y := vp.row(snap.ToolbarY())
	if y < 0 {
		return
	}
	bar := " Aa t │ save s │ back b "
	g.text(g.cols-len([]rune(bar))-1, y, bar, "#ffffff", "#333333", false)
}

func drawTrash(g *grid, vp viewport, t story.Trash) {
	glyph := " ✕ "
	bg := "#555555"
	if t.Scale > (gesture.RestScale+gesture.ArmedScale)/2 {
		glyph = "  ✕  "
	}
	if t.Armed {
		bg = "#cc3333"
	}
	y := vp.row(t.Y)
	g.text((g.cols-len([]rune(glyph)))/2, y, glyph, "#ffffff", bg, false)
}
