// Package story is the editing session for one piece of media: it owns the
// labels placed on it, the text composer and the gesture controllers that
// move and resize the labels.
//
// A Session is driven from a single event loop and is not safe for
// concurrent use.
package story

import (
	"io"
	"log"

	"github.com/google/uuid"

	"storycanvas/internal/gesture"
	"storycanvas/internal/label"
	"storycanvas/internal/media"
)

const (
	DefaultFontSize = 40.0
	DefaultColor    = "#fff"

	indicatorFPS = 60
)

// DefaultPalette is used when no palette is configured.
var DefaultPalette = []string{
	"#fff", "#000", "#f44336", "#e91e63", "#9c27b0", "#3f51b5",
	"#2196f3", "#00bcd4", "#4caf50", "#ffeb3b", "#ff9800", "#795548",
}

// Canvas is the drawing area in canvas pixels. TopInset is the height of
// the status bar above it.
type Canvas struct {
	Width    float64
	Height   float64
	TopInset float64
}

// Measurer returns the rendered size of label text.
type Measurer interface {
	Measure(text string, align label.Alignment, fontSize float64) (label.Size, error)
}

type Mode int

const (
	ModeViewing Mode = iota
	ModeComposing
)

func (m Mode) String() string {
	if m == ModeComposing {
		return "composing"
	}
	return "viewing"
}

type Session struct {
	ID     string
	Media  media.Item
	Canvas Canvas

	measurer    Measurer
	labels      []label.Label
	controllers map[label.ID]*gesture.Controller
	target      gesture.Target
	indicator   *gesture.Indicator
	panel       gesture.Panel

	mode     Mode
	draft    Draft
	keyboard Keyboard

	palette  []string
	fontSize float64

	listeners []func(Snapshot)
	log       *log.Logger
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPalette sets the colors the composer cycles through. The first one
// is the default label color.
func WithPalette(colors []string) Option {
	return func(s *Session) {
		if len(colors) > 0 {
			s.palette = append([]string(nil), colors...)
		}
	}
}

func WithFontSize(size float64) Option {
	return func(s *Session) {
		if size > 0 {
			s.fontSize = size
		}
	}
}

// New starts an editing session on item.
func New(item media.Item, canvas Canvas, m Measurer, opts ...Option) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		Media:       item,
		Canvas:      canvas,
		measurer:    m,
		controllers: make(map[label.ID]*gesture.Controller),
		target:      gesture.NewTarget(canvas.Height),
		indicator:   gesture.NewIndicator(indicatorFPS),
		panel:       gesture.NewPanel(canvas.Height, canvas.TopInset),
		palette:     DefaultPalette,
		fontSize:    DefaultFontSize,
		log:         log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.draft = s.freshDraft()
	s.logf("opened %s %s", item.Kind, item.Path)
	return s
}

func (s *Session) logf(format string, args ...any) {
	s.log.Printf("[session] "+format, args...)
}

// Labels returns a copy of the labels in creation order.
func (s *Session) Labels() []label.Label {
	out := make([]label.Label, len(s.labels))
	copy(out, s.labels)
	return out
}

// Label returns the label with id.
func (s *Session) Label(id label.ID) (label.Label, bool) {
	if l, _ := s.borrow(id); l != nil {
		return *l, true
	}
	return label.Label{}, false
}

func (s *Session) Len() int { return len(s.labels) }

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) Target() gesture.Target { return s.target }

func (s *Session) Palette() []string { return append([]string(nil), s.palette...) }

// Dragging reports whether any label is being dragged.
func (s *Session) Dragging() bool {
	for _, c := range s.controllers {
		if c.Dragging() {
			return true
		}
	}
	return false
}

// LabelAt returns the id of the topmost label under p.
func (s *Session) LabelAt(p label.Point) (label.ID, bool) {
	i := label.TopAt(s.labels, p)
	if i < 0 {
		return "", false
	}
	return s.labels[i].ID, true
}

// borrow returns the label with id for the duration of one call. The
// pointer must not be kept: appends and removals move labels.
func (s *Session) borrow(id label.ID) (*label.Label, int) {
	for i := range s.labels {
		if s.labels[i].ID == id {
			return &s.labels[i], i
		}
	}
	return nil, -1
}

func (s *Session) remove(i int) {
	id := s.labels[i].ID
	s.labels = append(s.labels[:i], s.labels[i+1:]...)
	delete(s.controllers, id)
}

// Subscribe registers fn to receive a snapshot after every committed
// change. The returned func removes it.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

func (s *Session) publish() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.listeners {
		if fn != nil {
			fn(snap)
		}
	}
}
