package watcher

// Status is the watcher's user-visible state.
type Status int

// Watcher states.
const (
	StatusIdle Status = iota
	StatusMatch
	StatusCopied
	StatusExists
	StatusCredentials
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:        "idle",
	StatusMatch:       "match",
	StatusCopied:      "copied",
	StatusExists:      "exists",
	StatusCredentials: "credentials",
	StatusError:       "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Text is the status line shown to the user.
func (s Status) Text() string {
	switch s {
	case StatusMatch:
		return "Match found!"
	case StatusCopied:
		return "Copied to clipboard!"
	case StatusExists:
		return "Already in history."
	case StatusCredentials:
		return "API credentials not found."
	case StatusError:
		return "Error occurred."
	default:
		return "Watching the clipboard..."
	}
}

// sticky states ignore clipboard changes until they are left explicitly.
func (s Status) sticky() bool {
	return s == StatusCopied || s == StatusError
}
