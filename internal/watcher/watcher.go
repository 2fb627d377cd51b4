// Package watcher polls the clipboard for pull-request and issue links,
// fetches their metadata and records them in the history.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/devdeck-labs/devdeck/internal/clipboard"
	"github.com/devdeck-labs/devdeck/internal/clipparse"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/devdeck-labs/devdeck/internal/notify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Default timings.
const (
	DefaultInterval       = time.Second
	DefaultCopiedDuration = 2 * time.Second
)

// Alert texts.
const (
	msgIssueFetched  = "Issue fetched successfully."
	msgIssueFailed   = "Failed to fetch issue."
	msgPRFailed      = "Failed to fetch pull request."
	msgClipboardFail = "Failed to write to the clipboard."
)

// Fetcher retrieves metadata for a recognized link.
type Fetcher interface {
	FetchPR(ctx context.Context, prURL, token string) (history.Item, error)
	FetchIssue(ctx context.Context, key, token string) (history.Item, error)
}

// CredentialSource supplies the current API tokens.
type CredentialSource interface {
	Credentials() (credentials.Credentials, error)
}

// Notifier shows transient alerts.
type Notifier interface {
	Send(t notify.Type, content string, persist bool) string
}

// Snapshot is the watcher state at one instant.
type Snapshot struct {
	Status Status
	// ActiveID is the history id the clipboard currently refers to.
	ActiveID string
}

// Watcher runs the clipboard state machine. All methods are safe for
// concurrent use.
type Watcher struct {
	clip     clipboard.Clipboard
	history  *history.Store
	fetcher  Fetcher
	creds    CredentialSource
	notifier Notifier
	logger   *zap.Logger

	interval       time.Duration
	copiedDuration time.Duration

	mu          sync.Mutex
	status      Status
	activeID    string
	revertTimer *time.Timer
	revertGen   uint64

	fetches sync.WaitGroup
	group   singleflight.Group
	changes chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the polling period.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithCopiedDuration sets how long the copied state lasts before reverting
// to idle.
func WithCopiedDuration(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.copiedDuration = d
		}
	}
}

// WithNotifier sets where alerts are sent.
func WithNotifier(n Notifier) Option {
	return func(w *Watcher) {
		w.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates an idle Watcher.
func New(clip clipboard.Clipboard, hist *history.Store, fetcher Fetcher, creds CredentialSource, opts ...Option) *Watcher {
	w := &Watcher{
		clip:           clip,
		history:        hist,
		fetcher:        fetcher,
		creds:          creds,
		notifier:       discard{},
		logger:         zap.NewNop(),
		interval:       DefaultInterval,
		copiedDuration: DefaultCopiedDuration,
		changes:        make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run ticks immediately and then once per interval until ctx is done. On
// return the revert timer is stopped and in-flight fetches have finished.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.teardown()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		w.Tick(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs one step of the state machine. A fetch it starts runs in the
// background under ctx.
func (w *Watcher) Tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	creds, err := w.creds.Credentials()
	if err != nil {
		w.logger.Warn("loading credentials", zap.Error(err))
	}
	if !creds.Validate().Valid {
		w.setState(StatusCredentials, w.snapshot().ActiveID)
		return
	}

	text, err := w.clip.ReadText()
	if err != nil {
		w.logger.Debug("reading clipboard", zap.Error(err))
		return
	}
	if text == "" || w.snapshot().Status.sticky() {
		return
	}

	match := clipparse.Parse(text)
	if match == nil {
		w.advance(StatusIdle, "")
		return
	}

	exists, err := w.history.Contains(match.ID)
	if err != nil {
		w.logger.Warn("reading history", zap.String("id", match.ID), zap.Error(err))
	}
	if exists {
		w.advance(StatusExists, match.ID)
		return
	}

	if w.advance(StatusMatch, match.ID) {
		w.startFetch(ctx, match, creds)
	}
}

func (w *Watcher) startFetch(ctx context.Context, match *clipparse.Result, creds credentials.Credentials) {
	w.fetches.Add(1)
	go func() {
		defer w.fetches.Done()
		// Ticks that see the same link while its fetch is in flight join it.
		_, _, _ = w.group.Do(match.ID, func() (any, error) {
			w.fetch(ctx, match, creds)
			return nil, nil
		})
	}()
}

func (w *Watcher) fetch(ctx context.Context, match *clipparse.Result, creds credentials.Credentials) {
	var (
		item    history.Item
		err     error
		failMsg string
	)
	switch match.Type {
	case history.TypeLinear:
		item, err = w.fetcher.FetchIssue(ctx, match.ID, creds.Linear)
		failMsg = msgIssueFailed
	default:
		item, err = w.fetcher.FetchPR(ctx, match.URL, creds.GitHub)
		failMsg = msgPRFailed
	}

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("fetching metadata", zap.String("id", match.ID), zap.Error(err))
		w.notifier.Send(notify.Error, failMsg, false)
		w.setState(StatusError, match.ID)
		return
	}

	if _, err := w.history.Insert(item); err != nil {
		w.logger.Error("saving history item", zap.String("id", item.ID), zap.Error(err))
	}
	w.logger.Info("captured", zap.String("id", item.ID), zap.String("label", item.Label))
	w.signal()

	if match.Type == history.TypeLinear {
		w.notifier.Send(notify.Success, msgIssueFetched, false)
	}
}

// Copy writes the selected artifact of item to the clipboard, enters the
// copied state and schedules the return to idle.
func (w *Watcher) Copy(item history.Item, kind CopyKind) error {
	text, err := Content(item, kind)
	if err != nil {
		return err
	}
	if err := w.clip.WriteText(text); err != nil {
		w.notifier.Send(notify.Error, msgClipboardFail, false)
		return fmt.Errorf("copying %s: %w", item.ID, err)
	}

	w.mu.Lock()
	w.stopRevertLocked()
	w.revertGen++
	gen := w.revertGen
	w.revertTimer = time.AfterFunc(w.copiedDuration, func() { w.revert(gen) })
	changed := w.setStateLocked(StatusCopied, w.activeID)
	w.mu.Unlock()
	if changed {
		w.signal()
	}

	w.notifier.Send(notify.Success, CopyMessage(item, kind), false)
	return nil
}

// Remove deletes id from the history. When id is the active item the OS
// clipboard is cleared as well so the next tick does not capture it again.
func (w *Watcher) Remove(id string) error {
	if err := w.history.Remove(id); err != nil {
		return fmt.Errorf("removing %s: %w", id, err)
	}

	if w.snapshot().ActiveID == id {
		if err := w.clip.WriteText(""); err != nil {
			w.logger.Warn("clearing clipboard", zap.Error(err))
		}
		w.reset()
	}
	w.signal()
	return nil
}

// ClearHistory deletes every history item and resets the state.
func (w *Watcher) ClearHistory() error {
	if err := w.history.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	w.reset()
	w.signal()
	return nil
}

// Reset returns to idle. It is the only way out of the error state.
func (w *Watcher) Reset() {
	w.reset()
}

// Snapshot returns the current state.
func (w *Watcher) Snapshot() Snapshot {
	return w.snapshot()
}

// Changes delivers a value after any state or history change. Bursts are
// coalesced; receivers should re-read Snapshot and the history.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// History returns the store the watcher records into.
func (w *Watcher) History() *history.Store {
	return w.history
}

// Wait blocks until in-flight fetches finish.
func (w *Watcher) Wait() {
	w.fetches.Wait()
}

func (w *Watcher) reset() {
	w.mu.Lock()
	w.stopRevertLocked()
	changed := w.setStateLocked(StatusIdle, "")
	w.mu.Unlock()
	if changed {
		w.signal()
	}
}

func (w *Watcher) revert(gen uint64) {
	w.mu.Lock()
	if gen != w.revertGen || w.status != StatusCopied {
		w.mu.Unlock()
		return
	}
	w.revertTimer = nil
	changed := w.setStateLocked(StatusIdle, "")
	w.mu.Unlock()
	if changed {
		w.signal()
	}
}

func (w *Watcher) teardown() {
	w.mu.Lock()
	w.stopRevertLocked()
	w.mu.Unlock()
	w.fetches.Wait()
}

func (w *Watcher) stopRevertLocked() {
	if w.revertTimer != nil {
		w.revertTimer.Stop()
		w.revertTimer = nil
	}
	w.revertGen++
}

func (w *Watcher) snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{Status: w.status, ActiveID: w.activeID}
}

func (w *Watcher) setState(s Status, activeID string) {
	w.mu.Lock()
	changed := w.setStateLocked(s, activeID)
	w.mu.Unlock()
	if changed {
		w.signal()
	}
}

// advance applies a clipboard-driven transition unless a sticky state was
// entered since the tick looked. It reports whether the transition applied.
func (w *Watcher) advance(s Status, activeID string) bool {
	w.mu.Lock()
	if w.status.sticky() {
		w.mu.Unlock()
		return false
	}
	changed := w.setStateLocked(s, activeID)
	w.mu.Unlock()
	if changed {
		w.signal()
	}
	return true
}

func (w *Watcher) setStateLocked(s Status, activeID string) bool {
	if w.status == s && w.activeID == activeID {
		return false
	}
	if w.status != s {
		w.logger.Debug("state", zap.Stringer("from", w.status), zap.Stringer("to", s), zap.String("id", activeID))
	}
	w.status = s
	w.activeID = activeID
	return true
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

type discard struct{}

func (discard) Send(notify.Type, string, bool) string { return "" }
