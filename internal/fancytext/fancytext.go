// Package fancytext restyles ASCII letters and digits with Unicode lookalikes
// (mathematical alphanumerics, enclosed letters, fullwidth forms, small
// capitals) and generates deterministic Zalgo text.
package fancytext

import (
	"fmt"
	"strings"
)

// Style is a named text transform.
type Style struct {
	Name      string
	Transform func(string) string
}

// Styles in display order.
var Styles = []Style{
	{"Bold", Bold},
	{"Italic", Italic},
	{"Bold Italic", BoldItalic},
	{"Script", Script},
	{"Double-struck", DoubleStruck},
	{"Monospace", Monospace},
	{"Fraktur", Fraktur},
	{"Circled", Circled},
	{"Squared", Squared},
	{"Fullwidth", Fullwidth},
	{"Small Caps", SmallCaps},
	{"Zalgo", Zalgo},
}

// Lookup finds a style by name, ignoring case and treating spaces, hyphens
// and underscores alike.
func Lookup(name string) (Style, bool) {
	want := normalize(name)
	for _, s := range Styles {
		if normalize(s.Name) == want {
			return s, true
		}
	}
	return Style{}, false
}

// Names lists every style name.
func Names() []string {
	out := make([]string, len(Styles))
	for i, s := range Styles {
		out[i] = s.Name
	}
	return out
}

// CopyMessage is the confirmation shown after copying a styled text.
func CopyMessage(style string) string {
	return fmt.Sprintf("Copied %s to clipboard!", style)
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// alphabet maps A-Z, a-z and optionally 0-9 onto contiguous code point runs.
// Exceptions fill the holes Unicode left in some runs.
type alphabet struct {
	upper, lower rune
	digit        rune
	exceptions   map[rune]rune
}

func (a alphabet) apply(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 4)
	for _, r := range text {
		if e, ok := a.exceptions[r]; ok {
			b.WriteRune(e)
			continue
		}
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(a.upper + (r - 'A'))
		case r >= 'a' && r <= 'z':
			b.WriteRune(a.lower + (r - 'a'))
		case a.digit != 0 && r >= '0' && r <= '9':
			b.WriteRune(a.digit + (r - '0'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	bold = alphabet{upper: 0x1D400, lower: 0x1D41A, digit: 0x1D7CE}

	italic = alphabet{upper: 0x1D434, lower: 0x1D44E, exceptions: map[rune]rune{
		'h': 0x210E,
	}}

	boldItalic = alphabet{upper: 0x1D468, lower: 0x1D482}

	script = alphabet{upper: 0x1D49C, lower: 0x1D4B6, exceptions: map[rune]rune{
		'B': 0x212C, 'E': 0x2130, 'F': 0x2131, 'H': 0x210B, 'I': 0x2110,
		'L': 0x2112, 'M': 0x2133, 'R': 0x211B, 'e': 0x212F, 'g': 0x210A,
		'o': 0x2134,
	}}

	doubleStruck = alphabet{upper: 0x1D538, lower: 0x1D552, digit: 0x1D7D8, exceptions: map[rune]rune{
		'C': 0x2102, 'H': 0x210D, 'N': 0x2115, 'P': 0x2119, 'Q': 0x211A,
		'R': 0x211D, 'Z': 0x2124,
	}}

	monospace = alphabet{upper: 0x1D670, lower: 0x1D68A, digit: 0x1D7F6}

	fraktur = alphabet{upper: 0x1D504, lower: 0x1D51E, exceptions: map[rune]rune{
		'C': 0x212D, 'H': 0x210C, 'I': 0x2111, 'R': 0x211C, 'Z': 0x2128,
	}}

	// Circled digits run from ① at U+2460; ⓪ sits apart at U+24EA.
	circled = alphabet{upper: 0x24B6, lower: 0x24D0, digit: 0x2460 - 1, exceptions: map[rune]rune{
		'0': 0x24EA,
	}}

	// Squared letters only exist in uppercase.
	squared = alphabet{upper: 0x1F130, lower: 0x1F130}

	fullwidth = alphabet{upper: 0xFF21, lower: 0xFF41, digit: 0xFF10}
)

// Bold uses Mathematical Bold.
func Bold(s string) string { return bold.apply(s) }

// Italic uses Mathematical Italic.
func Italic(s string) string { return italic.apply(s) }

// BoldItalic uses Mathematical Bold Italic.
func BoldItalic(s string) string { return boldItalic.apply(s) }

// Script uses Mathematical Script.
func Script(s string) string { return script.apply(s) }

// DoubleStruck uses Mathematical Double-Struck.
func DoubleStruck(s string) string { return doubleStruck.apply(s) }

// Monospace uses Mathematical Monospace.
func Monospace(s string) string { return monospace.apply(s) }

// Fraktur uses Mathematical Fraktur.
func Fraktur(s string) string { return fraktur.apply(s) }

// Circled uses enclosed alphanumerics.
func Circled(s string) string { return circled.apply(s) }

// Squared uses squared Latin capitals for both cases.
func Squared(s string) string { return squared.apply(s) }

// Fullwidth uses halfwidth and fullwidth forms.
func Fullwidth(s string) string { return fullwidth.apply(s) }

var smallCaps = map[rune]rune{
	'a': 0x1D00, 'b': 0x0299, 'c': 0x1D04, 'd': 0x1D05, 'e': 0x1D07,
	'f': 0xA730, 'g': 0x0262, 'h': 0x029C, 'i': 0x026A, 'j': 0x1D0A,
	'k': 0x1D0B, 'l': 0x029F, 'm': 0x1D0D, 'n': 0x0274, 'o': 0x1D0F,
	'p': 0x1D18, 'q': 0x01EB, 'r': 0x0280, 's': 0xA731, 't': 0x1D1B,
	'u': 0x1D1C, 'v': 0x1D20, 'w': 0x1D21, 'x': 0x02E3, 'y': 0x028F,
	'z': 0x1D22,
}

// SmallCaps maps letters of either case to small capitals. There is no
// small capital Q or X, so q and x use the closest lookalikes.
func SmallCaps(s string) string {
	var b strings.Builder
	for _, r := range s {
		lower := r
		if r >= 'A' && r <= 'Z' {
			lower = r + ('a' - 'A')
		}
		if sc, ok := smallCaps[lower]; ok {
			b.WriteRune(sc)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
