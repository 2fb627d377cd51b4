// Package standup composes the "good morning" note posted to the team chat:
// a random greeting followed by what was done yesterday and what is planned
// for today.
package standup

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/devdeck-labs/devdeck/internal/store"
)

// Greetings and Emojis are combined at random into the first line.
var (
	Greetings = []string{"GM", "gm", "𝐆𝐌", "🅶🅼"}
	Emojis    = []string{
		"🚀", "🌞", "🎉", "🌟", "☕", "🌇",
		":coffeevibrate:", ":LC_coffee:", ":coffeepal:", ":shinji_coffee:",
		":blobmorning:", ":milomorning:", ":wavemorning:",
	}
)

// DateLayout is the format of the recorded compose date.
const DateLayout = "2006-01-02"

// Greeting is the first line of a note.
type Greeting struct {
	Word  string
	Emoji string
}

// Message is the greeting line, e.g. "GM 🚀".
func (g Greeting) Message() string {
	return g.Word + " " + g.Emoji
}

// Composer holds the current greeting and rerolls it on request.
type Composer struct {
	rnd     *rand.Rand
	current Greeting
}

// NewComposer picks an initial greeting using rnd, or a randomly seeded
// source when rnd is nil.
func NewComposer(rnd *rand.Rand) *Composer {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c := &Composer{rnd: rnd}
	c.current = c.random()
	return c
}

// Greeting returns the current greeting.
func (c *Composer) Greeting() Greeting {
	return c.current
}

// Reroll replaces the greeting with a different one.
func (c *Composer) Reroll() Greeting {
	next := c.random()
	for next == c.current {
		next = c.random()
	}
	c.current = next
	return next
}

// Compose builds the note for the current greeting.
func (c *Composer) Compose(yesterday, today string) string {
	return Compose(c.current, yesterday, today)
}

func (c *Composer) random() Greeting {
	return Greeting{
		Word:  Greetings[c.rnd.IntN(len(Greetings))],
		Emoji: Emojis[c.rnd.IntN(len(Emojis))],
	}
}

// Compose joins the greeting and the non-empty sections with blank lines.
// The result carries no trailing whitespace.
func Compose(g Greeting, yesterday, today string) string {
	parts := []string{g.Message()}
	if y := strings.TrimSpace(yesterday); y != "" {
		parts = append(parts, "Yesterday:\n"+y)
	}
	if t := strings.TrimSpace(today); t != "" {
		parts = append(parts, "Today:\n"+t)
	}
	return strings.Join(parts, "\n\n")
}

// Pristine reports whether neither section has content.
func Pristine(yesterday, today string) bool {
	return strings.TrimSpace(yesterday) == "" && strings.TrimSpace(today) == ""
}

// Render formats a note as terminal markdown. style is a glamour style name
// such as "dark", "light" or "notty"; empty picks one from the terminal.
func Render(note string, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	// Single newlines are line breaks in a chat message, not in markdown.
	out, err := r.Render(strings.ReplaceAll(note, "\n", "  \n"))
	if err != nil {
		return "", fmt.Errorf("rendering note: %w", err)
	}
	return out, nil
}

// RecordComposed stores the date a note was last composed.
func RecordComposed(kv *store.Store, at time.Time) error {
	if err := kv.Set(store.KeyToday, at.Format(DateLayout)); err != nil {
		return fmt.Errorf("recording compose date: %w", err)
	}
	return nil
}

// LastComposed returns the date a note was last composed, if ever.
func LastComposed(kv *store.Store) (string, bool, error) {
	var day string
	ok, err := kv.Get(store.KeyToday, &day)
	if err != nil {
		return "", false, fmt.Errorf("reading compose date: %w", err)
	}
	return day, ok, nil
}
