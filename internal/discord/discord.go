// Package discord builds Discord timestamp markup (<t:unix:code>) and
// previews of how each format renders.
package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Format is one of Discord's timestamp styles.
type Format struct {
	Code  string
	Label string
	// layout is a time layout; empty means the relative form.
	layout string
}

// Formats in display order.
var Formats = []Format{
	{Code: "t", Label: "Short time", layout: "3:04 PM"},
	{Code: "T", Label: "Long time", layout: "3:04:05 PM"},
	{Code: "R", Label: "Relative"},
	{Code: "D", Label: "Long date", layout: "January 2, 2006"},
	{Code: "f", Label: "Short datetime", layout: "January 2, 2006 3:04 PM"},
	{Code: "F", Label: "Long datetime", layout: "Monday, January 2, 2006 3:04 PM"},
}

// Lookup finds a format by its code. Codes are case-sensitive.
func Lookup(code string) (Format, bool) {
	for _, f := range Formats {
		if f.Code == code {
			return f, true
		}
	}
	return Format{}, false
}

// Preview renders t the way Discord would show it, relative to now for the
// R format.
func (f Format) Preview(t, now time.Time) string {
	if f.layout == "" {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Format(f.layout)
}

// Markup returns the Discord markup for t in this format.
func (f Format) Markup(t time.Time) string {
	return Timestamp(t, f.Code)
}

// Timestamp returns "<t:<unix seconds>:<code>>".
func Timestamp(t time.Time, code string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), code)
}

// CopyMessage is the confirmation shown after copying a timestamp.
func CopyMessage(ts string) string {
	return "Copied " + ts + " to clipboard!"
}

// ParseDateTime combines a yyyy-MM-dd date and an HH:mm time in loc. Empty
// inputs are an error, as there is nothing to preview.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("date and time are both required")
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s %s: %w", date, clock, err)
	}
	return t, nil
}

// Now returns the current time truncated to the minute, matching what the
// date and time inputs can express.
func Now() time.Time {
	return time.Now().Truncate(time.Minute)
}
