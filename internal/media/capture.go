package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// OutputPlaceholder is replaced with the destination path in a capture
// command.
const OutputPlaceholder = "{out}"

// CommandSource captures media by running an external program, for example
// "fswebcam --no-banner {out}" or "imagesnap {out}".
type CommandSource struct {
	Command string
	Dir     string
	Kind    Kind
}

func (s CommandSource) Acquire(ctx context.Context) (Item, error) {
	args := strings.Fields(s.Command)
	if len(args) == 0 {
		return Item{}, fmt.Errorf("no capture command configured")
	}

	ext := ".jpg"
	if s.Kind == KindVideo {
		ext = ".mp4"
	}
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	out := filepath.Join(dir, fmt.Sprintf("capture_%d%s", time.Now().UnixNano(), ext))
	for i, a := range args {
		args[i] = strings.ReplaceAll(a, OutputPlaceholder, out)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.ToLower(stderr.String())
		if strings.Contains(msg, "permission denied") || strings.Contains(msg, "not permitted") ||
			strings.Contains(msg, "not authorized") {
			return Item{}, fmt.Errorf("%s: %w", args[0], ErrPermissionDenied)
		}
		return Item{}, fmt.Errorf("capture with %s: %w", args[0], err)
	}

	if _, err := os.Stat(out); err != nil {
		return Item{}, fmt.Errorf("capture produced no file: %w", classify(err))
	}
	return Item{Path: out, Kind: s.Kind}, nil
}

// SettingsCommand is the platform command that lets the user grant camera
// and file access.
func SettingsCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open", "x-apple.systempreferences:com.apple.preference.security?Privacy_Camera"}
	case "windows":
		return []string{"cmd", "/c", "start", "ms-settings:privacy-webcam"}
	default:
		return []string{"xdg-open", "settings://privacy"}
	}
}

// OpenSettings launches the settings command without waiting for it.
func OpenSettings(ctx context.Context) error {
	args := SettingsCommand()
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	go cmd.Wait()
	return nil
}
