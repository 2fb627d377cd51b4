// Package clipboard reads and writes the system clipboard as plain text.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard is a plain-text clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// System is the OS clipboard.
type System struct{}

// ReadText returns the current clipboard text.
func (System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents.
func (System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Unsupported reports whether no clipboard utility was found, as happens on
// headless Linux without xclip, xsel or wl-clipboard.
func Unsupported() bool {
	return clipboard.Unsupported
}

// Memory is an in-process clipboard for tests and headless runs.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes []string
	err    error
}

// NewMemory returns a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// ReadText returns the stored text, or the injected error.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// WriteText stores text and records the write.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	m.writes = append(m.writes, text)
	return nil
}

// SetText replaces the stored text without recording a write, as if another
// application had copied it.
func (m *Memory) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// SetError makes subsequent reads and writes fail with err. Nil clears it.
func (m *Memory) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Writes returns every text passed to WriteText, oldest first.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}
