package panel

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextSection   key.Binding
	CopyMarkdown  key.Binding
	CopyBranch    key.Binding
	CopyPRName    key.Binding
	Open          key.Binding
	Remove        key.Binding
	ClearHistory  key.Binding
	Reset         key.Binding
	Now           key.Binding
	Later         key.Binding
	Earlier       key.Binding
	ToggleDiscord key.Binding
	ToggleFancy   key.Binding
	Leave         key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	NextSection:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
	CopyMarkdown:  key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "copy")),
	CopyBranch:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "branch")),
	CopyPRName:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PR name")),
	Open:          key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
	Remove:        key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
	ClearHistory:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear history")),
	Reset:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Now:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "now")),
	Later:         key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "+1h")),
	Earlier:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "-1h")),
	ToggleDiscord: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "timestamps")),
	ToggleFancy:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fancy text")),
	Leave:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
