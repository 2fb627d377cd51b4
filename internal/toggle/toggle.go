// Package toggle reads and flips the boolean feature flags kept in the store.
package toggle

import (
	"fmt"
	"sort"

	"github.com/devdeck-labs/devdeck/internal/store"
)

// Name is a user-facing toggle name.
type Name string

// Toggles.
const (
	DebugMode               Name = "debug-mode"
	DiscordTimestampVisible Name = "discord-timestamp-visible"
	FancyTextVisible        Name = "fancy-text-visible"
)

var keys = map[Name]store.Key{
	DebugMode:               store.KeyDebugMode,
	DiscordTimestampVisible: store.KeyDiscordTimestampVisible,
	FancyTextVisible:        store.KeyFancyTextVisible,
}

var descriptions = map[Name]string{
	DebugMode:               "Log at debug level",
	DiscordTimestampVisible: "Show the Discord timestamp section in the panel",
	FancyTextVisible:        "Show the fancy text section in the panel",
}

// Names lists every toggle in alphabetical order.
func Names() []Name {
	out := make([]Name, 0, len(keys))
	for n := range keys {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse validates a toggle name.
func Parse(s string) (Name, error) {
	n := Name(s)
	if _, ok := keys[n]; !ok {
		return "", fmt.Errorf("unknown toggle %q (want one of %v)", s, Names())
	}
	return n, nil
}

// Description is a one-line summary of the toggle.
func (n Name) Description() string {
	return descriptions[n]
}

// Get returns the toggle value. Absent keys read as false.
func Get(kv *store.Store, n Name) (bool, error) {
	key, ok := keys[n]
	if !ok {
		return false, fmt.Errorf("unknown toggle %q", n)
	}
	var v bool
	if _, err := kv.Get(key, &v); err != nil {
		return false, fmt.Errorf("reading %s: %w", n, err)
	}
	return v, nil
}

// Set stores the toggle value.
func Set(kv *store.Store, n Name, v bool) error {
	key, ok := keys[n]
	if !ok {
		return fmt.Errorf("unknown toggle %q", n)
	}
	if err := kv.Set(key, v); err != nil {
		return fmt.Errorf("saving %s: %w", n, err)
	}
	return nil
}

// Flip inverts the toggle and returns the new value.
func Flip(kv *store.Store, n Name) (bool, error) {
	v, err := Get(kv, n)
	if err != nil {
		return false, err
	}
	if err := Set(kv, n, !v); err != nil {
		return false, err
	}
	return !v, nil
}

// State is the value of every toggle.
type State map[Name]bool

// All reads every toggle.
func All(kv *store.Store) (State, error) {
	s := make(State, len(keys))
	for n := range keys {
		v, err := Get(kv, n)
		if err != nil {
			return nil, err
		}
		s[n] = v
	}
	return s, nil
}
