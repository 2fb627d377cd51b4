package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devdeck-labs/devdeck/internal/branding"
	"github.com/devdeck-labs/devdeck/internal/discord"
	"github.com/devdeck-labs/devdeck/internal/fancytext"
	"github.com/devdeck-labs/devdeck/internal/history"
)

// View renders the panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	status := statusStyle(m.snapshot.Status).Render(m.snapshot.Status.Text())
	b.WriteString(titleStyle.Render(branding.DisplayName()) + "  " + status)
	if m.snapshot.ActiveID != "" {
		b.WriteString(dimStyle.Render("  " + m.snapshot.ActiveID))
	}
	b.WriteString("\n")

	if !m.creds.Valid {
		missing := strings.Join(m.creds.Missing(), " and ")
		b.WriteString(bannerStyle.Render(fmt.Sprintf("%s token missing. Run '%s creds set'.", missing, branding.CLIName())))
		b.WriteString("\n")
	}

	if m.alert != nil {
		b.WriteString(alertStyle(m.alert.Type).Render(m.alert.Content))
	}
	b.WriteString("\n")

	b.WriteString(m.renderHistory())
	if m.sectionVisible(sectionDiscord) {
		b.WriteString("\n" + m.renderDiscord())
	}
	if m.sectionVisible(sectionFancy) {
		b.WriteString("\n" + m.renderFancy())
	}

	b.WriteString("\n" + helpStyle.Render("  "+m.help()))
	return b.String()
}

func (m Model) header(title string, s section) string {
	if m.focus == s {
		return focusedSectionStyle.Render(title)
	}
	return sectionStyle.Render(title)
}

func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("History (%d)", len(m.items)), sectionHistory) + "\n")

	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render("  Copy a GitHub pull request or Linear issue link to capture it.") + "\n")
		return b.String()
	}

	for i, item := range m.items {
		b.WriteString(m.renderItem(item, i == m.cursor) + "\n")
	}
	return b.String()
}

func (m Model) renderItem(item history.Item, selected bool) string {
	id := pad(item.ID, 10)
	age := pad(item.Date.Local().Format("01-02 15:04"), 12)
	label := truncate(item.Label, max(20, m.width-30))

	if selected && m.focus == sectionHistory {
		row := selectedStyle.Render(strings.Join([]string{id, age, label}, " "))
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, row)
	}

	tag := githubTag
	if item.Type == history.TypeLinear {
		tag = linearTag
	}
	return normalStyle.Render(tag.Render(id) + " " + dimStyle.Render(age) + " " + label)
}

func (m Model) renderDiscord() string {
	var b strings.Builder
	b.WriteString(m.header("Discord Timestamp  "+m.moment.Format("2006-01-02 15:04"), sectionDiscord) + "\n")
	for i, f := range discord.Formats {
		line := pad(f.Label, 16) + " " + f.Preview(m.moment, m.now)
		if i == m.discordCursor && m.focus == sectionDiscord {
			b.WriteString(selectedStyle.Render(line) + "\n")
			continue
		}
		b.WriteString(normalStyle.Render(line) + "\n")
	}
	return b.String()
}

func (m Model) renderFancy() string {
	var b strings.Builder
	b.WriteString(m.header("Fancy Text", sectionFancy) + "\n")
	b.WriteString(" " + m.fancyInput.View() + "\n")

	text := m.fancyInput.Value()
	for i, s := range fancytext.Styles {
		preview := dimStyle.Render("-")
		if text != "" {
			preview = s.Transform(text)
		}
		line := pad(s.Name, 14) + " " + preview
		if i == m.fancyCursor && m.focus == sectionFancy {
			b.WriteString(selectedStyle.Render(line) + "\n")
			continue
		}
		b.WriteString(normalStyle.Render(line) + "\n")
	}
	return b.String()
}

func (m Model) help() string {
	switch m.focus {
	case sectionDiscord:
		return helpLine(keys.Up, keys.Down, keys.CopyMarkdown, keys.Now, keys.Later, keys.Earlier, keys.Leave, keys.NextSection)
	case sectionFancy:
		return "type to preview  " + helpLine(keys.CopyMarkdown, keys.Leave, keys.NextSection)
	default:
		return helpLine(keys.CopyMarkdown, keys.CopyBranch, keys.CopyPRName, keys.Open, keys.Remove,
			keys.ClearHistory, keys.Reset, keys.ToggleDiscord, keys.ToggleFancy, keys.NextSection, keys.Quit)
	}
}

func pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-2]) + ".."
}
