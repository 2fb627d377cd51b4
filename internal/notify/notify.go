// Package notify shows one transient alert at a time.
//
// An alert sent while the notifier is idle is shown immediately and dismissed
// after a fixed delay unless it persists. An alert sent while another one is
// visible hides the current alert, waits for the swap delay and then shows
// the newest pending alert. Only one alert waits during the swap; a later
// send replaces it.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Type is the severity of an alert.
type Type string

// Alert types.
const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

// Default timings.
const (
	DefaultDismissAfter = 3000 * time.Millisecond
	DefaultSwapDelay    = 600 * time.Millisecond
)

const subscriberBuffer = 32

// Alert is a single message.
type Alert struct {
	ID      string
	Type    Type
	Content string
	Persist bool
}

// Event is a visibility change of an alert.
type Event struct {
	Alert   Alert
	Visible bool
}

// Notifier is the single-slot alert queue. It is safe for concurrent use.
type Notifier struct {
	mu           sync.Mutex
	current      *Alert
	pending      *Alert
	dismissTimer *time.Timer
	swapTimer    *time.Timer
	swapGen      uint64
	subs         []chan Event
	closed       bool

	dismissAfter time.Duration
	swapDelay    time.Duration
	logger       *zap.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithDismissAfter sets how long a non-persistent alert stays visible.
func WithDismissAfter(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.dismissAfter = d
		}
	}
}

// WithSwapDelay sets the gap between hiding one alert and showing the next.
func WithSwapDelay(d time.Duration) Option {
	return func(n *Notifier) {
		if d >= 0 {
			n.swapDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *Notifier) {
		n.logger = l
	}
}

// New creates an idle Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		dismissAfter: DefaultDismissAfter,
		swapDelay:    DefaultSwapDelay,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send queues an alert and returns its id. Sends after Close are dropped.
func (n *Notifier) Send(t Type, content string, persist bool) string {
	a := &Alert{ID: uuid.NewString(), Type: t, Content: content, Persist: persist}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return a.ID
	}
	n.logger.Debug("alert", zap.String("type", string(t)), zap.String("content", content))

	switch {
	case n.swapTimer != nil:
		// Mid-swap: the newest alert wins the single pending slot.
		n.pending = a
	case n.current != nil:
		n.hideLocked()
		n.pending = a
		n.swapGen++
		gen := n.swapGen
		n.swapTimer = time.AfterFunc(n.swapDelay, func() { n.swap(gen) })
	default:
		n.showLocked(a)
	}
	return a.ID
}

// Current returns the visible alert, if any.
func (n *Notifier) Current() (Alert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Alert{}, false
	}
	return *n.current, true
}

// Dismiss hides the visible alert. A pending alert is still shown after the
// swap delay.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil {
		n.hideLocked()
	}
}

// Subscribe returns a channel receiving every visibility change. The channel
// is buffered; a subscriber that falls behind misses events rather than
// blocking the notifier. It is closed by Close.
func (n *Notifier) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		close(ch)
		return ch
	}
	n.subs = append(n.subs, ch)
	return ch
}

// Close stops all timers and closes subscriber channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	if n.dismissTimer != nil {
		n.dismissTimer.Stop()
		n.dismissTimer = nil
	}
	if n.swapTimer != nil {
		n.swapTimer.Stop()
		n.swapTimer = nil
	}
	n.pending = nil
	for _, ch := range n.subs {
		close(ch)
	}
	n.subs = nil
}

func (n *Notifier) showLocked(a *Alert) {
	n.current = a
	n.emitLocked(Event{Alert: *a, Visible: true})
	if a.Persist {
		return
	}
	id := a.ID
	n.dismissTimer = time.AfterFunc(n.dismissAfter, func() { n.expire(id) })
}

func (n *Notifier) hideLocked() {
	if n.dismissTimer != nil {
		n.dismissTimer.Stop()
		n.dismissTimer = nil
	}
	prev := *n.current
	n.current = nil
	n.emitLocked(Event{Alert: prev, Visible: false})
}

func (n *Notifier) expire(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || n.current == nil || n.current.ID != id {
		return
	}
	n.dismissTimer = nil
	n.hideLocked()
}

func (n *Notifier) swap(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || gen != n.swapGen {
		return
	}
	n.swapTimer = nil
	next := n.pending
	n.pending = nil
	if next == nil {
		return
	}
	if n.current != nil {
		n.hideLocked()
	}
	n.showLocked(next)
}

func (n *Notifier) emitLocked(ev Event) {
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
			n.logger.Warn("dropping alert event for slow subscriber", zap.String("id", ev.Alert.ID))
		}
	}
}
