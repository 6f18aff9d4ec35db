package journal

import (
	"strings"
	"testing"
	"time"
)

func entryAt(content string, ts time.Time, themes ...string) Entry {
	return Entry{Content: content, Themes: themes, Timestamp: ts}
}

func TestAggregateKeepsRecurringThemes(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []Entry{
		entryAt("one", base, "a", "b"),
		entryAt("two", base.Add(time.Hour), "a"),
		entryAt("three", base.Add(2*time.Hour), "c"),
	}

	patterns := Aggregate(entries)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d: %+v", len(patterns), patterns)
	}
	p := patterns[0]
	if p.Theme != "a" || p.Frequency != 2 {
		t.Errorf("pattern = %+v", p)
	}
	if !p.LastSeen.Equal(base.Add(time.Hour)) {
		t.Errorf("LastSeen = %v", p.LastSeen)
	}
	if p.Context != "two..." {
		t.Errorf("Context = %q", p.Context)
	}
}

func TestAggregateOrdering(t *testing.T) {
	ts := time.Now()
	entries := []Entry{
		entryAt("1", ts, "work", "sleep", "family"),
		entryAt("2", ts, "work", "sleep", "family"),
		entryAt("3", ts, "work"),
	}

	patterns := Aggregate(entries)
	var got []string
	for _, p := range patterns {
		got = append(got, p.Theme)
	}
	want := []string{"work", "family", "sleep"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestAggregateCountsEntriesNotOccurrences(t *testing.T) {
	ts := time.Now()
	patterns := Aggregate([]Entry{entryAt("x", ts, "calm", "calm")})
	if len(patterns) != 0 {
		t.Errorf("a theme repeated within one entry should not recur: %+v", patterns)
	}
}

func TestAggregateContextFollowsNewestEntry(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	long := strings.Repeat("é", 150)
	entries := []Entry{
		entryAt("older", base, "hope"),
		entryAt(long, base.Add(24*time.Hour), "hope"),
		entryAt("oldest", base.Add(-24*time.Hour), "hope"),
	}

	patterns := Aggregate(entries)
	if len(patterns) != 1 || patterns[0].Frequency != 3 {
		t.Fatalf("unexpected patterns %+v", patterns)
	}
	want := strings.Repeat("é", 100) + "..."
	if patterns[0].Context != want {
		t.Errorf("context should be the first 100 runes of the newest entry, got %q", patterns[0].Context)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("expected no patterns, got %+v", got)
	}
}
