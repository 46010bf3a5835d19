package main

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"storycanvas/internal/label"
	"storycanvas/internal/media"
	"storycanvas/internal/render"
)

func listMediaCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := media.List(dir)
		return mediaListMsg{files: files, err: err}
	}
}

func acquireCmd(src media.Source) tea.Cmd {
	return func() tea.Msg {
		item, err := src.Acquire(context.Background())
		return mediaMsg{item: item, err: err}
	}
}

func (m *model) pickSource(name string) media.Source {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.config.MediaDir(), name)
	}
	return media.FileSource{Path: path}
}

func (m *model) captureSource(kind media.Kind) (media.Source, bool) {
	command := m.config.CaptureCommand
	if kind == media.KindVideo {
		command = m.config.VideoCommand
	}
	if command == "" {
		return nil, false
	}
	return media.CommandSource{Command: command, Dir: m.config.MediaDir(), Kind: kind}, true
}

func loadBackgroundCmd(item media.Item) tea.Cmd {
	if item.Kind != media.KindPhoto {
		return nil
	}
	return func() tea.Msg {
		img, err := render.LoadImage(item.Path)
		return backgroundMsg{path: item.Path, img: img, err: err}
	}
}

// exportCmd saves the committed labels over the story media.
func exportCmd(e *media.Exporter, item media.Item, labels []label.Label) tea.Cmd {
	return func() tea.Msg {
		res, err := e.Export(context.Background(), item, labels)
		return exportMsg{result: res, err: err}
	}
}

func openSettingsCmd() tea.Msg {
	return settingsMsg{err: media.OpenSettings(context.Background())}
}
