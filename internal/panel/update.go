package panel

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdeck-labs/devdeck/internal/discord"
	"github.com/devdeck-labs/devdeck/internal/fancytext"
	"github.com/devdeck-labs/devdeck/internal/notify"
	"github.com/devdeck-labs/devdeck/internal/toggle"
	"github.com/devdeck-labs/devdeck/internal/watcher"
	"go.uber.org/zap"
)

// Update handles keys and background events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case RefreshMsg:
		m.refresh()
		return m, nil

	case alertMsg:
		if msg.Visible {
			a := msg.Alert
			m.alert = &a
		} else if m.alert != nil && m.alert.ID == msg.Alert.ID {
			m.alert = nil
		}
		return m, waitForAlert(m.alerts)

	case clockMsg:
		m.now = time.Time(msg)
		m.snapshot = m.deps.Watcher.Snapshot()
		return m, clockTick()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && (m.focus != sectionFancy || msg.String() == "ctrl+c") {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, keys.NextSection) {
			m.nextSection()
			return m, nil
		}
		switch m.focus {
		case sectionDiscord:
			return m.updateDiscord(msg)
		case sectionFancy:
			return m.updateFancy(msg)
		default:
			return m.updateHistory(msg)
		}
	}
	return m, nil
}

func (m *Model) nextSection() {
	for next := m.focus + 1; ; next++ {
		if next > sectionFancy {
			next = sectionHistory
		}
		if m.sectionVisible(next) {
			m.setFocus(next)
			return
		}
	}
}

func (m *Model) setFocus(s section) {
	m.focus = s
	if s == sectionFancy {
		m.fancyInput.Focus()
	} else {
		m.fancyInput.Blur()
	}
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.CopyMarkdown):
		m.copyItem(watcher.CopyMarkdown)
	case key.Matches(msg, keys.CopyBranch):
		m.copyItem(watcher.CopyBranchName)
	case key.Matches(msg, keys.CopyPRName):
		m.copyItem(watcher.CopyPRName)
	case key.Matches(msg, keys.Open):
		if item, ok := m.selected(); ok {
			if err := m.deps.Open(item.URL); err != nil {
				m.fail("Failed to open "+item.ID+".", err)
			}
		}
	case key.Matches(msg, keys.Remove):
		if item, ok := m.selected(); ok {
			if err := m.deps.Watcher.Remove(item.ID); err != nil {
				m.fail("Failed to remove "+item.ID+".", err)
			}
			m.refresh()
		}
	case key.Matches(msg, keys.ClearHistory):
		if err := m.deps.Watcher.ClearHistory(); err != nil {
			m.fail("Failed to clear history.", err)
		}
		m.refresh()
	case key.Matches(msg, keys.Reset):
		m.deps.Watcher.Reset()
		m.snapshot = m.deps.Watcher.Snapshot()
	case key.Matches(msg, keys.ToggleDiscord):
		m.flip(toggle.DiscordTimestampVisible)
	case key.Matches(msg, keys.ToggleFancy):
		m.flip(toggle.FancyTextVisible)
	}
	return m, nil
}

func (m *Model) copyItem(kind watcher.CopyKind) {
	item, ok := m.selected()
	if !ok {
		return
	}
	if _, err := watcher.Content(item, kind); err != nil {
		m.deps.Alerts.Send(notify.Warning, err.Error()+".", false)
		return
	}
	if err := m.deps.Watcher.Copy(item, kind); err != nil {
		m.deps.Logger.Warn("copying item", zap.String("id", item.ID), zap.Error(err))
	}
	m.snapshot = m.deps.Watcher.Snapshot()
}

func (m *Model) flip(n toggle.Name) {
	if _, err := toggle.Flip(m.deps.Store, n); err != nil {
		m.fail("Failed to save setting.", err)
		return
	}
	m.refresh()
}

func (m *Model) fail(msg string, err error) {
	m.deps.Logger.Warn(msg, zap.Error(err))
	m.deps.Alerts.Send(notify.Error, msg, false)
}

func (m *Model) copyText(text, confirmation string) {
	if err := m.deps.Clipboard.WriteText(text); err != nil {
		m.fail("Failed to write to the clipboard.", err)
		return
	}
	m.deps.Alerts.Send(notify.Success, confirmation, false)
}

func (m Model) updateDiscord(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Leave):
		m.setFocus(sectionHistory)
	case key.Matches(msg, keys.Up):
		if m.discordCursor > 0 {
			m.discordCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.discordCursor < len(discord.Formats)-1 {
			m.discordCursor++
		}
	case key.Matches(msg, keys.Now):
		m.moment = m.deps.Now().Truncate(time.Minute)
	case key.Matches(msg, keys.Later):
		m.moment = m.moment.Add(time.Hour)
	case key.Matches(msg, keys.Earlier):
		m.moment = m.moment.Add(-time.Hour)
	case key.Matches(msg, keys.CopyMarkdown):
		ts := discord.Formats[m.discordCursor].Markup(m.moment)
		m.copyText(ts, discord.CopyMessage(ts))
	case key.Matches(msg, keys.ToggleDiscord):
		m.flip(toggle.DiscordTimestampVisible)
	}
	return m, nil
}

func (m Model) updateFancy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.setFocus(sectionHistory)
		return m, nil
	case tea.KeyUp:
		if m.fancyCursor > 0 {
			m.fancyCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.fancyCursor < len(fancytext.Styles)-1 {
			m.fancyCursor++
		}
		return m, nil
	case tea.KeyEnter:
		text := m.fancyInput.Value()
		if text == "" {
			return m, nil
		}
		style := fancytext.Styles[m.fancyCursor]
		m.copyText(style.Transform(text), fancytext.CopyMessage(style.Name))
		return m, nil
	}

	var cmd tea.Cmd
	m.fancyInput, cmd = m.fancyInput.Update(msg)
	return m, cmd
}
