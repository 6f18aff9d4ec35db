// Package journal stores Mind Mirror entries, asks the model to reflect on
// them and derives recurring themes.
package journal

import (
	"sort"
	"time"
)

// Key is the storage key holding the entry list
const Key = "mindMirrorEntries"

// Entry is one journal submission with the model's reflection on it
type Entry struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	AIReflection   string    `json:"aiReflection"`
	FollowUpPrompt string    `json:"followUpPrompt,omitempty"`
	Mood           string    `json:"mood,omitempty"`
	Themes         []string  `json:"themes"`
	Timestamp      time.Time `json:"timestamp"`
}

// Pattern is a theme that recurs across entries. Never persisted.
type Pattern struct {
	Theme     string    `json:"theme"`
	Frequency int       `json:"frequency"`
	LastSeen  time.Time `json:"lastSeen"`
	Context   string    `json:"context"`
}

const excerptLength = 100

// Aggregate counts themes across entries and returns those found in at
// least two entries, most frequent first, ties broken by theme name.
// Context is an excerpt of the newest entry carrying the theme.
func Aggregate(entries []Entry) []Pattern {
	byTheme := make(map[string]*Pattern)

	for _, e := range entries {
		seen := make(map[string]bool, len(e.Themes))
		for _, theme := range e.Themes {
			if seen[theme] {
				continue
			}
			seen[theme] = true

			p, ok := byTheme[theme]
			if !ok {
				byTheme[theme] = &Pattern{
					Theme:     theme,
					Frequency: 1,
					LastSeen:  e.Timestamp,
					Context:   excerpt(e.Content),
				}
				continue
			}
			p.Frequency++
			if e.Timestamp.After(p.LastSeen) {
				p.LastSeen = e.Timestamp
				p.Context = excerpt(e.Content)
			}
		}
	}

	patterns := make([]Pattern, 0, len(byTheme))
	for _, p := range byTheme {
		if p.Frequency >= 2 {
			patterns = append(patterns, *p)
		}
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Frequency != patterns[j].Frequency {
			return patterns[i].Frequency > patterns[j].Frequency
		}
		return patterns[i].Theme < patterns[j].Theme
	})
	return patterns
}

func excerpt(content string) string {
	r := []rune(content)
	if len(r) > excerptLength {
		r = r[:excerptLength]
	}
	return string(r) + "..."
}
