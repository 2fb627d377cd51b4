package panel

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/devdeck-labs/devdeck/internal/notify"
	"github.com/devdeck-labs/devdeck/internal/watcher"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	focusedSectionStyle = sectionStyle.
				Background(lipgloss.Color("25"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	normalStyle = lipgloss.NewStyle().
			Padding(0, 1)

	linearTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("105")).
			Bold(true)

	githubTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

var statusColors = map[watcher.Status]lipgloss.Color{
	watcher.StatusIdle:        lipgloss.Color("242"),
	watcher.StatusMatch:       lipgloss.Color("39"),
	watcher.StatusCopied:      lipgloss.Color("42"),
	watcher.StatusExists:      lipgloss.Color("220"),
	watcher.StatusCredentials: lipgloss.Color("214"),
	watcher.StatusError:       lipgloss.Color("196"),
}

var alertColors = map[notify.Type]lipgloss.Color{
	notify.Success: lipgloss.Color("42"),
	notify.Error:   lipgloss.Color("196"),
	notify.Warning: lipgloss.Color("214"),
	notify.Info:    lipgloss.Color("39"),
}

func statusStyle(s watcher.Status) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColors[s])
}

func alertStyle(t notify.Type) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(alertColors[t]).
		Padding(0, 1)
}
