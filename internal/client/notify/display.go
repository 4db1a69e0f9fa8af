package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// AutoCloseDelay is how long an alert stays visible unless replaced or cleared.
const AutoCloseDelay = 5 * time.Second

// Timer is the part of *time.Timer the Display needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc in production, a fake in tests.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Display renders alerts to a writer and owns their expiry: each non-empty
// alert gets a fresh timer, and any change of the slot stops the pending one.
type Display struct {
	alerts    *Service
	out       io.Writer
	ttl       time.Duration
	afterFunc AfterFunc

	mu    sync.Mutex
	timer Timer
}

func NewDisplay(alerts *Service, out io.Writer, ttl time.Duration) *Display {
	if ttl <= 0 {
		ttl = AutoCloseDelay
	}
	return &Display{alerts: alerts, out: out, ttl: ttl, afterFunc: systemAfterFunc}
}

// Start subscribes the display to the alert slot. The returned function
// unsubscribes and cancels any pending expiry.
func (d *Display) Start() (stop func()) {
	unsubscribe := d.alerts.Subscribe(d.render)
	return func() {
		unsubscribe()
		d.mu.Lock()
		d.stopTimer()
		d.mu.Unlock()
	}
}

func (d *Display) render(a *Alert) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	if a == nil {
		return
	}

	fmt.Fprintf(d.out, "[%s] %s\n", label(a.Type), a.Message)
	d.timer = d.afterFunc(d.ttl, func() { d.alerts.Dismiss(a) })
}

// stopTimer must be called with mu held.
func (d *Display) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func label(t Type) string {
	switch t {
	case Success, Error, Info, Warning:
		return strings.ToUpper(string(t))
	default:
		return "ALERT"
	}
}
