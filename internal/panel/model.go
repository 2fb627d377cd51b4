// Package panel is the interactive terminal view of DevDeck: watcher status,
// the captured history with its copy actions, and the Discord timestamp and
// fancy text sections.
package panel

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdeck-labs/devdeck/internal/clipboard"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/devdeck-labs/devdeck/internal/notify"
	"github.com/devdeck-labs/devdeck/internal/store"
	"github.com/devdeck-labs/devdeck/internal/toggle"
	"github.com/devdeck-labs/devdeck/internal/watcher"
	"go.uber.org/zap"
)

// Watcher is the part of the watcher the panel drives.
type Watcher interface {
	Snapshot() watcher.Snapshot
	Copy(item history.Item, kind watcher.CopyKind) error
	Remove(id string) error
	ClearHistory() error
	Reset()
	Changes() <-chan struct{}
}

// Alerts shows and publishes transient alerts.
type Alerts interface {
	Send(t notify.Type, content string, persist bool) string
	Subscribe() <-chan notify.Event
}

// Deps are the collaborators of the panel.
type Deps struct {
	Watcher   Watcher
	History   *history.Store
	Store     *store.Store
	Alerts    Alerts
	Clipboard clipboard.Clipboard
	// Open launches a URL in the browser.
	Open   func(url string) error
	Now    func() time.Time
	Logger *zap.Logger
}

type section int

const (
	sectionHistory section = iota
	sectionDiscord
	sectionFancy
)

// RefreshMsg asks the panel to reload its state, e.g. after the store file
// changed on disk.
type RefreshMsg struct{}

type (
	changedMsg struct{}
	alertMsg   notify.Event
	clockMsg   time.Time
)

// Model is the bubbletea model of the panel.
type Model struct {
	deps    Deps
	changes <-chan struct{}
	alerts  <-chan notify.Event

	items    []history.Item
	cursor   int
	snapshot watcher.Snapshot
	alert    *notify.Alert
	creds    credentials.Validation
	toggles  toggle.State

	focus section

	moment        time.Time
	discordCursor int

	fancyInput  textinput.Model
	fancyCursor int

	now      time.Time
	width    int
	height   int
	quitting bool
}

// New builds the panel and loads its initial state.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	fi := textinput.New()
	fi.Placeholder = "Type something..."
	fi.CharLimit = 200

	now := deps.Now()
	m := Model{
		deps:       deps,
		changes:    deps.Watcher.Changes(),
		alerts:     deps.Alerts.Subscribe(),
		fancyInput: fi,
		moment:     now.Truncate(time.Minute),
		now:        now,
		width:      100,
		height:     30,
	}
	m.refresh()
	return m
}

// Init starts listening for watcher changes, alerts and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		waitForAlert(m.alerts),
		clockTick(),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func waitForAlert(ch <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return alertMsg(ev)
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// refresh reloads history, watcher state, credentials and toggles.
func (m *Model) refresh() {
	items, err := m.deps.History.Sorted()
	if err != nil {
		m.deps.Logger.Warn("loading history", zap.Error(err))
	} else {
		m.items = items
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}

	m.snapshot = m.deps.Watcher.Snapshot()

	if creds, err := credentials.Load(m.deps.Store); err == nil {
		m.creds = creds.Validate()
	}
	if state, err := toggle.All(m.deps.Store); err == nil {
		m.toggles = state
	}
	if !m.sectionVisible(m.focus) {
		m.focus = sectionHistory
	}
}

func (m Model) sectionVisible(s section) bool {
	switch s {
	case sectionDiscord:
		return m.toggles[toggle.DiscordTimestampVisible]
	case sectionFancy:
		return m.toggles[toggle.FancyTextVisible]
	default:
		return true
	}
}

func (m Model) selected() (history.Item, bool) {
	if len(m.items) == 0 {
		return history.Item{}, false
	}
	return m.items[m.cursor], true
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

var _ tea.Model = Model{}
