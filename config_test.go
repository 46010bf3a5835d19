package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	input := `
# story settings
save_directory = ~/stories
media_dir = /tmp/media
canvas_width = 412
canvas_height=915
top_inset = 0
font_size = 32
palette = #fff, #000 ,#ff0000,
export_pdf = TRUE
capture_command = fswebcam --no-banner {out}
video = ffmpeg -t 5 {out}
log = /var/log/story.log
bogus line
unknown = 1
`
	cfg := defaultConfig()
	parseConfig(strings.NewReader(input), "/home/u", cfg)

	assert.Equal(t, filepath.Join("/home/u", "stories"), cfg.SaveDirectory)
	assert.Equal(t, "/tmp/media", cfg.MediaDirectory)
	assert.Equal(t, 412.0, cfg.CanvasWidth)
	assert.Equal(t, 915.0, cfg.CanvasHeight)
	assert.Equal(t, 0.0, cfg.TopInset)
	assert.Equal(t, 32.0, cfg.FontSize)
	assert.Equal(t, []string{"#fff", "#000", "#ff0000"}, cfg.Palette)
	assert.True(t, cfg.ExportPDF)
	assert.Equal(t, "fswebcam --no-banner {out}", cfg.CaptureCommand)
	assert.Equal(t, "ffmpeg -t 5 {out}", cfg.VideoCommand)
	assert.Equal(t, "/var/log/story.log", cfg.LogFile)
}

func TestParseConfigKeepsDefaultsOnBadValues(t *testing.T) {
	cfg := defaultConfig()
	parseConfig(strings.NewReader("canvas_width = -5\nfont_size = big\npalette = ,\ntop_inset = -1\n"), "/home/u", cfg)

	def := defaultConfig()
	assert.Equal(t, def.CanvasWidth, cfg.CanvasWidth)
	assert.Equal(t, def.FontSize, cfg.FontSize)
	assert.Equal(t, def.Palette, cfg.Palette)
	assert.Equal(t, def.TopInset, cfg.TopInset)
}

func TestConfigDirs(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, ".", cfg.ExportDir())
	assert.Equal(t, ".", cfg.MediaDir())

	cfg.SaveDirectory = "/out"
	cfg.MediaDirectory = "/in"
	assert.Equal(t, "/out", cfg.ExportDir())
	assert.Equal(t, "/in", cfg.MediaDir())

	c := cfg.Canvas()
	assert.Equal(t, 390.0, c.Width)
	assert.Equal(t, 800.0, c.Height)
	assert.Equal(t, 24.0, c.TopInset)
}
