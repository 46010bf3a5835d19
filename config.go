package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"storycanvas/internal/story"
)

type Config struct {
	SaveDirectory  string
	MediaDirectory string
	CanvasWidth    float64
	CanvasHeight   float64
	TopInset       float64
	FontSize       float64
	Palette        []string
	ExportPDF      bool
	CaptureCommand string
	VideoCommand   string
	LogFile        string
}

func defaultConfig() *Config {
	return &Config{
		CanvasWidth:  390,
		CanvasHeight: 800,
		TopInset:     24,
		FontSize:     story.DefaultFontSize,
		Palette:      story.DefaultPalette,
		LogFile:      "storycanvas.log",
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	file, err := os.Open(filepath.Join(homeDir, ".storyrc"))
	if err != nil {
		return config
	}
	defer file.Close()

	parseConfig(file, homeDir, config)
	return config
}

// parseConfig reads key = value lines into config. Unknown keys and
// malformed values are skipped.
func parseConfig(r io.Reader, homeDir string, config *Config) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "mediadirectory", "media_directory", "mediadir":
			config.MediaDirectory = expandPath(value, homeDir)
		case "canvaswidth", "canvas_width", "width":
			setPositive(&config.CanvasWidth, value)
		case "canvasheight", "canvas_height", "height":
			setPositive(&config.CanvasHeight, value)
		case "topinset", "top_inset":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
				config.TopInset = v
			}
		case "fontsize", "font_size":
			setPositive(&config.FontSize, value)
		case "palette", "colors":
			var colors []string
			for _, c := range strings.Split(value, ",") {
				if c = strings.TrimSpace(c); c != "" {
					colors = append(colors, c)
				}
			}
			if len(colors) > 0 {
				config.Palette = colors
			}
		case "exportpdf", "export_pdf", "pdf":
			config.ExportPDF = strings.ToLower(value) == "true"
		case "capturecommand", "capture_command", "capture":
			config.CaptureCommand = value
		case "videocommand", "video_command", "video":
			config.VideoCommand = value
		case "logfile", "log_file", "log":
			config.LogFile = expandPath(value, homeDir)
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func setPositive(dst *float64, value string) {
	if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
		*dst = v
	}
}

// ExportDir is where saved stories go.
func (c *Config) ExportDir() string {
	if c.SaveDirectory == "" {
		return "."
	}
	return c.SaveDirectory
}

// MediaDir is where the add story screen looks for media.
func (c *Config) MediaDir() string {
	if c.MediaDirectory == "" {
		return "."
	}
	return c.MediaDirectory
}

func (c *Config) Canvas() story.Canvas {
	return story.Canvas{Width: c.CanvasWidth, Height: c.CanvasHeight, TopInset: c.TopInset}
}
