package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storycanvas/internal/media"
	"storycanvas/internal/render"
	"storycanvas/internal/story"
)

// labelWrapMargin is the horizontal room left on each side of the canvas
// when long label text is wrapped.
const labelWrapMargin = 15.0

func main() {
	config := loadConfig()

	f, err := tea.LogToFile(config.LogFile, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer f.Close()
	logger := log.New(f, "", log.LstdFlags)

	measurer, err := render.NewFontMeasurer(config.CanvasWidth - 2*labelWrapMargin)
	if err != nil {
		log.Fatal(err)
	}
	exporter := &media.Exporter{
		Dir:        config.ExportDir(),
		PDF:        config.ExportPDF,
		Compositor: render.NewCompositor(int(config.CanvasWidth), int(config.CanvasHeight), measurer),
		Log:        logger,
	}

	p := tea.NewProgram(
		initialModel(config, logger, measurer, exporter),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, logger *log.Logger, measurer *render.FontMeasurer, exporter *media.Exporter) model {
	ti := textinput.New()
	ti.Placeholder = "path to a photo or video"
	ti.Prompt = "Open: "

	return model{
		screen:       ScreenAddStory,
		config:       config,
		logger:       logger,
		measurer:     measurer,
		exporter:     exporter,
		pathInput:    ti,
		selectedFile: -1,
	}
}

func newComposer() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Type something"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetHeight(3)
	return ta
}

func (m model) Init() tea.Cmd {
	return listMediaCmd(m.config.MediaDir())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.canvas != nil {
			m.canvas.composer.SetWidth(m.composerWidth())
			if m.canvas.session.Keyboard().Open {
				m.canvas.session.KeyboardChanged(true, m.keyboardHeight())
			}
		}
		return m, nil

	case mediaListMsg:
		m.fileList = msg.files
		m.selectedFile = -1
		if len(m.fileList) > 0 {
			m.selectedFile = 0
		}
		if msg.err != nil {
			m.setMediaError(msg.err)
		}
		return m, nil

	case mediaMsg:
		m.acquiring = false
		if msg.err != nil {
			m.setMediaError(msg.err)
			return m, nil
		}
		return m, m.startSession(msg.item)

	case backgroundMsg:
		if m.canvas == nil || m.canvas.session.Media.Path != msg.path {
			return m, nil
		}
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Could not load photo: %v", msg.err)
			return m, nil
		}
		m.canvas.background = msg.img
		m.canvas.scaled = nil
		return m, nil

	case exportMsg:
		if m.canvas != nil {
			m.canvas.saving = false
		}
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Save failed: %v", msg.err)
			m.successMessage = ""
			return m, nil
		}
		saved := msg.result.Copy
		if msg.result.Composite != "" {
			saved = msg.result.Composite
		}
		m.errorMessage = ""
		m.successMessage = "Saved " + filepath.Base(saved)
		return m, nil

	case settingsMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		}
		return m, nil

	case frameMsg:
		if m.canvas == nil {
			return m, nil
		}
		if m.canvas.session.StepIndicator() {
			m.canvas.animating = false
			return m, nil
		}
		return m, frameCmd()

	case pinchIdleMsg:
		m.endPinch(msg.seq)
		return m, nil

	case tea.MouseMsg:
		if m.screen != ScreenStoryCanvas || m.canvas == nil || m.help {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeSession()
			return m, tea.Quit
		}
		if m.help {
			if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
				m.help = false
			}
			return m, nil
		}
		if m.screen == ScreenAddStory {
			return m.updateAddStory(msg)
		}
		if m.canvas.session.Mode() == story.ModeComposing {
			return m.updateComposer(msg)
		}
		return m.updateCanvas(msg)
	}

	if m.pathEntry {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
	if m.canvas != nil && m.canvas.session.Mode() == story.ModeComposing {
		var cmd tea.Cmd
		m.canvas.composer, cmd = m.canvas.composer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) setMediaError(err error) {
	m.successMessage = ""
	if errors.Is(err, media.ErrPermissionDenied) {
		m.permissionDenied = true
		m.errorMessage = "Permission denied. Press p to open settings"
		return
	}
	m.errorMessage = err.Error()
}

func (m *model) startSession(item media.Item) tea.Cmd {
	s := story.New(item, m.config.Canvas(), m.measurer,
		story.WithLogger(m.logger),
		story.WithPalette(m.config.Palette),
		story.WithFontSize(m.config.FontSize),
	)
	cs := &canvasState{session: s, composer: newComposer()}
	cs.composer.SetWidth(m.composerWidth())
	cs.committed = s.Snapshot()
	cs.unsubscribe = s.Subscribe(func(snap story.Snapshot) {
		cs.committed = snap
	})

	m.canvas = cs
	m.screen = ScreenStoryCanvas
	m.permissionDenied = false
	m.errorMessage = ""
	m.successMessage = ""
	return loadBackgroundCmd(item)
}

// closeSession drops the story being edited. Gestures still running are
// committed first so the log shows where labels ended up.
func (m *model) closeSession() {
	if m.canvas == nil {
		return
	}
	m.cancelGestures()
	m.canvas.unsubscribe()
	m.canvas = nil
	m.screen = ScreenAddStory
}

func (m model) updateAddStory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pathEntry {
		switch msg.String() {
		case "esc":
			m.pathEntry = false
			m.pathInput.Blur()
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			m.pathEntry = false
			m.pathInput.Blur()
			if path == "" {
				return m, nil
			}
			m.acquiring = true
			return m, acquireCmd(m.pickSource(expandPath(path, homeDir())))
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	if m.acquiring {
		return m, nil
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = true
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.fileList)-1 {
			m.selectedFile++
		}
	case "enter":
		if m.selectedFile >= 0 && m.selectedFile < len(m.fileList) {
			m.acquiring = true
			return m, acquireCmd(m.pickSource(m.fileList[m.selectedFile]))
		}
	case "o":
		m.pathEntry = true
		m.pathInput.SetValue("")
		return m, m.pathInput.Focus()
	case "c", "v":
		kind := media.KindPhoto
		if msg.String() == "v" {
			kind = media.KindVideo
		}
		src, ok := m.captureSource(kind)
		if !ok {
			m.errorMessage = fmt.Sprintf("No %s capture command set in ~/.storyrc", kind)
			return m, nil
		}
		m.acquiring = true
		return m, acquireCmd(src)
	case "p":
		if m.permissionDenied {
			return m, openSettingsCmd
		}
	case "r":
		m.permissionDenied = false
		return m, listMediaCmd(m.config.MediaDir())
	}
	return m, nil
}

func (m model) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cs := m.canvas
	s := cs.session
	m.errorMessage = ""
	m.successMessage = ""

	key := msg.String()
	switch key {
	case "q":
		m.closeSession()
		return m, tea.Quit
	case "?":
		m.help = true
	case "b", "esc":
		m.closeSession()
		return m, listMediaCmd(m.config.MediaDir())
	case "t":
		if s.Dragging() {
			return m, nil
		}
		m.cancelGestures()
		s.OpenComposer()
		s.KeyboardChanged(true, m.keyboardHeight())
		cs.composer.Reset()
		m.styleComposer()
		return m, cs.composer.Focus()
	case "s":
		if cs.saving || s.Dragging() {
			return m, nil
		}
		m.endPinch(cs.pinch.seq)
		cs.saving = true
		m.successMessage = "Saving..."
		return m, exportCmd(m.exporter, s.Media, s.Labels())
	case "tab":
		m.selectNext()
	case "+", "=":
		m.pinchSelected(pinchStep)
	case "-", "_":
		m.pinchSelected(1 / pinchStep)
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		if cs.drag != nil {
			return m, nil
		}
		if m.nudgeSelected(key, m.getMoveSpeed(key)) {
			m.successMessage = "Label deleted"
		}
	}
	return m, nil
}

func (m model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cs := m.canvas
	s := cs.session
	m.errorMessage = ""

	switch msg.String() {
	case "esc":
		s.KeyboardChanged(false, 0)
		cs.composer.Blur()
		return m, nil
	case "ctrl+s":
		id, ok, err := s.Commit()
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		if ok {
			cs.selected = id
		}
		s.KeyboardChanged(false, 0)
		cs.composer.Blur()
		return m, nil
	case "tab":
		s.ToggleAlign()
		return m, nil
	case "ctrl+b":
		s.ToggleBackground()
		m.styleComposer()
		return m, nil
	case "ctrl+t":
		s.TogglePalette()
		return m, nil
	case "ctrl+n":
		s.CycleColor(1)
		m.styleComposer()
		return m, nil
	case "ctrl+p":
		s.CycleColor(-1)
		m.styleComposer()
		return m, nil
	case "ctrl+v":
		if err := m.pasteIntoDraft(); err != nil {
			m.errorMessage = fmt.Sprintf("Paste failed: %v", err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	cs.composer, cmd = cs.composer.Update(msg)
	s.SetDraftText(cs.composer.Value())
	return m, cmd
}

// styleComposer shows the draft in the color it will get on the canvas.
func (m *model) styleComposer() {
	d := m.canvas.session.Draft()
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(expandHex(d.Color)))
	if d.Background {
		text = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(expandHex(d.Color)))
	}
	m.canvas.composer.FocusedStyle.Text = text
	m.canvas.composer.FocusedStyle.CursorLine = text
}

func (m *model) composerWidth() int {
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	return w
}

// keyboardHeight is the composer's height in canvas units.
func (m *model) keyboardHeight() float64 {
	return float64(composerRows) * m.viewport().cellH
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return dir
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.screen == ScreenAddStory || m.canvas == nil {
		return m.addStoryView()
	}
	return m.canvasView()
}

func (m model) addStoryView() string {
	var result strings.Builder
	title := lipgloss.NewStyle().Bold(true).Render("Add Story")
	result.WriteString(title)
	result.WriteString("\n")
	result.WriteString(strings.Repeat("─", max(m.width, 20)))
	result.WriteString("\n")

	if len(m.fileList) == 0 {
		result.WriteString(fmt.Sprintf("No photos or videos in %s\n", m.config.MediaDir()))
	}
	for i, file := range m.fileList {
		if i == m.selectedFile {
			result.WriteString("> ")
			result.WriteString(file)
			result.WriteString(" <")
		} else {
			result.WriteString("  ")
			result.WriteString(file)
		}
		result.WriteString("\n")
	}

	result.WriteString(strings.Repeat("─", max(m.width, 20)))
	result.WriteString("\n")
	if m.pathEntry {
		result.WriteString(m.pathInput.View())
		result.WriteString("\n")
	}

	var status string
	switch {
	case m.acquiring:
		status = "Loading..."
	case m.errorMessage != "":
		status = "ERROR: " + m.errorMessage
	case m.pathEntry:
		status = "Enter=open, Esc=cancel"
	default:
		status = "↑/↓=select, Enter=open, o=open path, c=take photo, v=record video, r=refresh, ?=help, q=quit"
	}
	if m.permissionDenied && !m.pathEntry {
		status += " | p=open settings"
	}
	result.WriteString(status)
	return result.String()
}

func (m model) canvasView() string {
	cs := m.canvas
	snap := cs.session.Snapshot()
	vp := m.viewport()

	if cs.background != nil && (cs.scaled == nil || cs.scaledCols != vp.cols || cs.scaledRows != vp.rows) {
		cs.scaled = scaleCover(cs.background, vp.cols, vp.rows)
		cs.scaledCols, cs.scaledRows = vp.cols, vp.rows
	}

	v := canvasView{
		vp:         vp,
		background: cs.scaled,
		video:      snap.Media.Kind == media.KindVideo,
		selected:   cs.selected,
	}
	if m.measurer != nil {
		v.lines = m.measurer
	}
	lines := drawCanvas(snap, v)
	pad := strings.Repeat(" ", vp.left)
	for i := range lines {
		lines[i] = pad + lines[i]
	}

	if snap.Mode == story.ModeComposing {
		panel := strings.Split(m.composerView(snap), "\n")
		start := len(lines) - len(panel)
		if start < 0 {
			start = 0
		}
		lines = append(lines[:start], panel...)
	}

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.canvasStatus(snap))
	return result.String()
}

func (m model) composerView(snap story.Snapshot) string {
	d := snap.Draft
	bg := "off"
	if d.Background {
		bg = "on"
	}
	opts := fmt.Sprintf("align: %s  background: %s  color: %s", d.Align, bg, d.Color)

	var body strings.Builder
	body.WriteString(m.canvas.composer.View())
	body.WriteString("\n")
	body.WriteString(opts)
	if d.PaletteVisible {
		body.WriteString("\n")
		for _, c := range m.canvas.session.Palette() {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(expandHex(c))).Render("██")
			if c == d.Color {
				body.WriteString("[" + swatch + "]")
			} else {
				body.WriteString(" " + swatch + " ")
			}
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(m.composerWidth()).
		Render(body.String())
}

func (m model) canvasStatus(snap story.Snapshot) string {
	var status string
	switch {
	case snap.Mode == story.ModeComposing:
		status = "Mode: TEXT | Tab=align, Ctrl+B=background, Ctrl+T=colors, Ctrl+N/P=color, Ctrl+V=paste, Ctrl+S=done, Esc=cancel"
	case snap.Dragging:
		status = "Mode: DRAG | drop on ✕ to delete"
	default:
		status = fmt.Sprintf("Mode: VIEW | %s | %d labels", snap.Media.Kind, len(m.canvas.committed.Labels))
		if m.canvas.selected != "" {
			status += " | Selected"
		}
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" && snap.Mode != story.ModeComposing {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) helpView() string {
	helpLines := []string{
		"Story Canvas Help",
		"=================",
		"",
		"Add Story:",
		"----------",
		"  ↑/↓ Enter        Pick a photo or video from the media directory",
		"  o                Open a file by path",
		"  c / v            Take a photo / record a video with the capture command",
		"  p                Open system settings after a permission error",
		"  r                Reload the media list",
		"",
		"Canvas:",
		"-------",
		"  t                Add text",
		"  Drag             Move a label; drop it on ✕ to delete it",
		"  Wheel            Resize the label under the pointer",
		"  Tab              Select the next label",
		"  h/←/j/↓/k/↑/l/→  Move the selected label",
		"  Shift+direction  Move 2x faster",
		"  + / -            Resize the selected label",
		"  Drag the toolbar Move the options out of the way",
		"  s                Save the story",
		"  b / Esc          Back to Add Story",
		"",
		"Text tool:",
		"----------",
		"  Tab              Cycle alignment",
		"  Ctrl+B           Toggle background",
		"  Ctrl+T           Show or hide colors",
		"  Ctrl+N / Ctrl+P  Next / previous color",
		"  Ctrl+V           Paste",
		"  Ctrl+S           Add the label",
		"  Esc              Discard",
		"",
		"? or Esc to close help",
	}
	return strings.Join(helpLines, "\n")
}
