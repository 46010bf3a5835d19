package media

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		err  bool
	}{
		{"a.jpg", KindPhoto, false},
		{"a.JPEG", KindPhoto, false},
		{"dir/b.png", KindPhoto, false},
		{"c.mp4", KindVideo, false},
		{"c.MOV", KindVideo, false},
		{"notes.txt", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindOf(tt.path)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "photo", KindPhoto.String())
	assert.Equal(t, "video", KindVideo.String())
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o644))

	item, err := FileSource{Path: path}.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Item{Path: path, Kind: KindPhoto}, item)

	_, err = FileSource{Path: filepath.Join(dir, "missing.jpg")}.Acquire(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
}

func TestFileSourcePermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file modes do not restrict this user")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o000))

	_, err := FileSource{Path: path}.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFileSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileSource{Path: "a.jpg"}.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.mp4", "notes.txt", "c.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	files, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp4", "b.png", "c.jpg"}, files)
}

func TestCommandSource(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses cp and sh")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.jpg")
	require.NoError(t, os.WriteFile(src, []byte("frame"), 0o644))

	s := CommandSource{Command: "cp " + src + " " + OutputPlaceholder, Dir: dir, Kind: KindPhoto}
	item, err := s.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindPhoto, item.Kind)
	assert.Equal(t, ".jpg", filepath.Ext(item.Path))
	data, err := os.ReadFile(item.Path)
	require.NoError(t, err)
	assert.Equal(t, "frame", string(data))
}

func TestCommandSourceErrors(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	_, err := CommandSource{}.Acquire(context.Background())
	assert.Error(t, err)

	dir := t.TempDir()
	script := filepath.Join(dir, "deny.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'Permission denied' >&2\nexit 1\n"), 0o755))
	_, err = CommandSource{Command: script, Dir: dir}.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	noop := filepath.Join(dir, "noop.sh")
	require.NoError(t, os.WriteFile(noop, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	_, err = CommandSource{Command: noop, Dir: dir}.Acquire(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
}

func TestSettingsCommand(t *testing.T) {
	assert.NotEmpty(t, SettingsCommand())
}
