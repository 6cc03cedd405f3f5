package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Severity classifies a toast banner.
type Severity string

// Toast severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Toast is one transient banner.
type Toast struct {
	ID       int
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Toaster maintains a stack of dismissible, auto-expiring banners. Concurrent
// banners stack; each disappears after its duration or on explicit dismissal,
// whichever comes first.
type Toaster struct {
	mu              sync.Mutex
	out             io.Writer
	defaultDuration time.Duration
	nextID          int
	active          []Toast
	timers          map[int]*time.Timer
}

// NewToaster creates a Toaster writing banners to out.
func NewToaster(out io.Writer, defaultDuration time.Duration) *Toaster {
	if defaultDuration <= 0 {
		defaultDuration = 5 * time.Second
	}
	return &Toaster{
		out:             out,
		defaultDuration: defaultDuration,
		timers:          map[int]*time.Timer{},
	}
}

// Notify enqueues a banner and returns its ID. An optional duration overrides
// the configured default.
func (t *Toaster) Notify(message string, severity Severity, duration ...time.Duration) int {
	d := t.defaultDuration
	if len(duration) > 0 && duration[0] > 0 {
		d = duration[0]
	}

	t.mu.Lock()
	t.nextID++
	id := t.nextID
	toast := Toast{ID: id, Message: message, Severity: severity, ShownAt: time.Now()}
	t.active = append(t.active, toast)
	t.timers[id] = time.AfterFunc(d, func() { t.Dismiss(id) })
	t.mu.Unlock()

	fmt.Fprintf(t.out, "[%s] %s\n", severity, message)
	return id
}

// Dismiss removes a banner. Dismissing an expired or unknown ID is a no-op.
func (t *Toaster) Dismiss(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	timer, ok := t.timers[id]
	if !ok {
		return
	}
	timer.Stop()
	delete(t.timers, id)

	for i := range t.active {
		if t.active[i].ID == id {
			t.active = append(t.active[:i], t.active[i+1:]...)
			break
		}
	}
}

// Active returns the currently visible banners, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Toast, len(t.active))
	copy(out, t.active)
	return out
}

// Close dismisses everything and stops all pending expiry timers.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.active = nil
}
