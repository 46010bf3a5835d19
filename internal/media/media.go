// Package media acquires the photo or video a story is built on and
// exports the finished story.
package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrPermissionDenied = errors.New("media access denied")
	ErrUnsupported      = errors.New("unsupported media type")
)

type Kind int

const (
	KindPhoto Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "photo"
}

// Item is a handle to captured or picked media.
type Item struct {
	Path string
	Kind Kind
}

// Source produces the media a story starts from.
type Source interface {
	Acquire(ctx context.Context) (Item, error)
}

var extKinds = map[string]Kind{
	".jpg":  KindPhoto,
	".jpeg": KindPhoto,
	".png":  KindPhoto,
	".gif":  KindPhoto,
	".webp": KindPhoto,
	".bmp":  KindPhoto,
	".tif":  KindPhoto,
	".tiff": KindPhoto,
	".mp4":  KindVideo,
	".mov":  KindVideo,
	".m4v":  KindVideo,
	".webm": KindVideo,
	".mkv":  KindVideo,
	".avi":  KindVideo,
	".3gp":  KindVideo,
}

// KindOf classifies path by its extension.
func KindOf(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if k, ok := extKinds[ext]; ok {
		return k, nil
	}
	switch t := mime.TypeByExtension(ext); {
	case strings.HasPrefix(t, "image/"):
		return KindPhoto, nil
	case strings.HasPrefix(t, "video/"):
		return KindVideo, nil
	}
	return 0, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

// FileSource picks an existing file.
type FileSource struct {
	Path string
}

func (s FileSource) Acquire(ctx context.Context) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	kind, err := KindOf(s.Path)
	if err != nil {
		return Item{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return Item{}, classify(err)
	}
	f.Close()
	return Item{Path: s.Path, Kind: kind}, nil
}

func classify(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%v: %w", err, ErrPermissionDenied)
	}
	return err
}

// List returns the media files in dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, classify(err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := KindOf(entry.Name()); err == nil {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
