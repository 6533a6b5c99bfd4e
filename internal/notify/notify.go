// Package notify carries user-visible success and error notifications
// from the data layer to whichever surface is rendering them.
package notify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flightdeck/internal/api"
)

// GenericErrorMessage is shown when an error carries no displayable detail
const GenericErrorMessage = "Something went wrong, please try again later"

// Notifier receives transient user-visible notifications
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ErrorMessage extracts the message to show for err: the API's detail when
// it was sent as a plain string, otherwise the generic message.
func ErrorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if detail, ok := apiErr.DetailText(); ok {
			return detail
		}
	}
	return GenericErrorMessage
}

// Level distinguishes success from error notifications
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Toast is one notification with its display window
type Toast struct {
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Log writes notifications to a slog.Logger
type Log struct {
	Logger *slog.Logger
}

func (l Log) Success(msg string) { l.logger().Info("notification", "level", "success", "message", msg) }
func (l Log) Error(msg string)   { l.logger().Warn("notification", "level", "error", "message", msg) }

func (l Log) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Writer prints styled notifications, one per line (CLI output)
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer notifier
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(msg string) { n.write(successStyle.Render("✓ " + msg)) }
func (n *Writer) Error(msg string)   { n.write(errorStyle.Render("✗ " + msg)) }

func (n *Writer) write(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, line)
}

// Queue keeps transient toasts until they expire (TUI footer)
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast
	onPush func(Toast)
}

// NewQueue creates a queue whose toasts live for ttl
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Queue{ttl: ttl, now: time.Now}
}

// OnPush registers a callback run after every new toast
func (q *Queue) OnPush(fn func(Toast)) {
	q.mu.Lock()
	q.onPush = fn
	q.mu.Unlock()
}

func (q *Queue) Success(msg string) { q.push(LevelSuccess, msg) }
func (q *Queue) Error(msg string)   { q.push(LevelError, msg) }

func (q *Queue) push(level Level, msg string) {
	q.mu.Lock()
	now := q.now()
	t := Toast{Level: level, Message: msg, CreatedAt: now, ExpiresAt: now.Add(q.ttl)}
	q.toasts = append(q.toasts, t)
	fn := q.onPush
	q.mu.Unlock()

	if fn != nil {
		fn(t)
	}
}

// Active drops expired toasts and returns the rest, oldest first
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
	return append([]Toast(nil), kept...)
}

// Recorder stores every notification (tests)
type Recorder struct {
	mu     sync.Mutex
	Toasts []Toast
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	r.Toasts = append(r.Toasts, Toast{Level: level, Message: msg})
	r.mu.Unlock()
}

// Messages returns the recorded messages of one level
func (r *Recorder) Messages(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, t := range r.Toasts {
		if t.Level == level {
			out = append(out, t.Message)
		}
	}
	return out
}

// Multi fans notifications out to several notifiers
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
