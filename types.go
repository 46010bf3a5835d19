package main

import (
	"image"
	"log"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"storycanvas/internal/label"
	"storycanvas/internal/media"
	"storycanvas/internal/render"
	"storycanvas/internal/story"
)

type model struct {
	width  int
	height int
	screen Screen
	help   bool

	config   *Config
	logger   *log.Logger
	measurer *render.FontMeasurer
	exporter *media.Exporter

	fileList         []string
	selectedFile     int
	pathInput        textinput.Model
	pathEntry        bool
	permissionDenied bool
	acquiring        bool

	canvas *canvasState

	errorMessage   string
	successMessage string
}

// canvasState is the story canvas screen. It is shared by pointer so the
// snapshot listener and the model copies bubbletea passes around see the
// same session.
type canvasState struct {
	session     *story.Session
	committed   story.Snapshot
	unsubscribe func()

	background image.Image
	scaled     *image.RGBA
	scaledCols int
	scaledRows int

	composer textarea.Model
	selected label.ID

	drag      *mouseDrag
	panelDrag *mouseDrag
	pinch     pinchState
	animating bool
	saving    bool
}

// mouseDrag tracks a press that is moving something. Translations are
// cumulative from the press cell.
type mouseDrag struct {
	id     label.ID
	startX int
	startY int
	lastY  int
}

// pinchState is a wheel pinch in progress. seq invalidates idle ticks
// scheduled before the latest notch.
type pinchState struct {
	id     label.ID
	factor float64
	seq    int
}

type mediaListMsg struct {
	files []string
	err   error
}

type mediaMsg struct {
	item media.Item
	err  error
}

type backgroundMsg struct {
	path string
	img  image.Image
	err  error
}

type exportMsg struct {
	result media.Result
	err    error
}

type settingsMsg struct {
	err error
}

type frameMsg struct{}

type pinchIdleMsg struct {
	seq int
}
