package journal

import (
	"encoding/json"
	"strings"
)

// Analysis is what the model returns for a journal entry
type Analysis struct {
	Reflection string   `json:"reflection" jsonschema:"description=A gentle 1-2 sentence reflection on the entry"`
	FollowUp   string   `json:"followUp" jsonschema:"description=A question inviting deeper reflection"`
	Mood       string   `json:"mood" jsonschema:"description=One word for the primary emotional tone"`
	Themes     []string `json:"themes" jsonschema:"description=Key themes or concepts mentioned"`
}

// ParseResult says which branch produced an Analysis
type ParseResult int

const (
	// ParsedOK means the model output decoded into an Analysis
	ParsedOK ParseResult = iota
	// FallbackMalformed means the output was unusable and the fixed
	// malformed-output analysis was substituted
	FallbackMalformed
)

func (r ParseResult) String() string {
	if r == ParsedOK {
		return "parsed"
	}
	return "fallback_malformed"
}

func malformedFallback() Analysis {
	return Analysis{
		Reflection: "Thank you for sharing your thoughts. I can sense there's depth in what you've written.",
		FollowUp:   "What feels most important to you about what you just shared?",
		Mood:       "reflective",
		Themes:     []string{"self-reflection"},
	}
}

func networkFallback() Analysis {
	return Analysis{
		Reflection: "I'm here to listen and reflect with you. Your thoughts and feelings are valid.",
		FollowUp:   "What would you like to explore more deeply about this experience?",
		Mood:       "neutral",
		Themes:     []string{"personal-growth"},
	}
}

// ParseAnalysis decodes model output. Output that is not a JSON object, or
// that has no reflection, yields the malformed fallback. Missing themes
// decode as an empty list.
func ParseAnalysis(text string) (Analysis, ParseResult) {
	var a Analysis
	if err := json.Unmarshal([]byte(stripFence(text)), &a); err != nil {
		return malformedFallback(), FallbackMalformed
	}
	if strings.TrimSpace(a.Reflection) == "" {
		return malformedFallback(), FallbackMalformed
	}
	if a.Themes == nil {
		a.Themes = []string{}
	}
	return a, ParsedOK
}

// stripFence removes a surrounding ``` or ```json block
func stripFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return t
	}
	t = strings.TrimSuffix(strings.TrimPrefix(t, "```"), "```")
	t = strings.TrimPrefix(t, "json")
	return strings.TrimSpace(t)
}
