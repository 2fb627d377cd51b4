package watcher

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/history"
)

// CopyKind selects which derived artifact of a history item is copied.
type CopyKind int

// Copy kinds.
const (
	CopyMarkdown CopyKind = iota
	CopyBranchName
	CopyPRName
)

func (k CopyKind) String() string {
	switch k {
	case CopyBranchName:
		return "Branch name"
	case CopyPRName:
		return "PR name"
	default:
		return "Markdown"
	}
}

// ParseCopyKind maps "markdown", "branch" and "pr" to a CopyKind.
func ParseCopyKind(s string) (CopyKind, error) {
	switch s {
	case "markdown", "md", "":
		return CopyMarkdown, nil
	case "branch", "branch-name":
		return CopyBranchName, nil
	case "pr", "pr-name":
		return CopyPRName, nil
	}
	return 0, fmt.Errorf("unknown copy kind %q (want markdown, branch or pr)", s)
}

// Content returns the text of item that kind selects. Branch and PR names
// only exist on Linear items.
func Content(item history.Item, kind CopyKind) (string, error) {
	var text string
	switch kind {
	case CopyBranchName:
		text = item.BranchName
	case CopyPRName:
		text = item.PRName
	default:
		text = item.Markdown
	}
	if text == "" {
		return "", fmt.Errorf("%s not available for %s", kind, item.ID)
	}
	return text, nil
}

// CopyMessage is the confirmation shown after a copy.
func CopyMessage(item history.Item, kind CopyKind) string {
	return fmt.Sprintf("%s for %s %s copied to clipboard.", kind, item.ProviderName(), item.ID)
}
