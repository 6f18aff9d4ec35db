// Package mood defines the closed set of moods a chat can start from and the
// therapist persona each one selects.
package mood

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mood is one of a fixed set of tags
type Mood string

const (
	Happy       Mood = "happy"
	Energetic   Mood = "energetic"
	Overwhelmed Mood = "overwhelmed"
	Focused     Mood = "focused"
	Neutral     Mood = "neutral"
	Depression  Mood = "depression"
)

// ErrUnknown is returned by Parse for a tag outside the set
var ErrUnknown = errors.New("unknown mood")

var all = []Mood{Happy, Energetic, Overwhelmed, Focused, Neutral, Depression}

// All returns every mood in picker order
func All() []Mood {
	out := make([]Mood, len(all))
	copy(out, all)
	return out
}

// Parse normalises s and checks it against the set
func Parse(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return m, nil
}

// Valid reports whether m is in the set
func (m Mood) Valid() bool {
	for _, v := range all {
		if v == m {
			return true
		}
	}
	return false
}

// Label is the mood with its first letter upper-cased ("happy" -> "Happy")
func (m Mood) Label() string {
	s := string(m)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
