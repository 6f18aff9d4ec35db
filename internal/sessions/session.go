package sessions

import (
	"time"

	"moodwell/internal/mood"
)

// Role tags who wrote a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a transcript
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one continuous chat transcript tied to a mood
type Session struct {
	ID          string    `json:"id"`
	Mood        mood.Mood `json:"mood"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (s Session) clone() Session {
	s.Messages = append([]Message(nil), s.Messages...)
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	return s
}

// DefaultTitle is the title a new session gets: "Happy Session" etc.
func DefaultTitle(m mood.Mood) string {
	return m.Label() + " Session"
}

// titleRunes is how much of the first user turn becomes the title
const titleRunes = 50

// TitleFrom builds the title used once a transcript has a user turn: the
// first 50 characters of messages[1] followed by "...". ok is false for
// transcripts shorter than two messages.
func TitleFrom(messages []Message) (title string, ok bool) {
	if len(messages) < 2 {
		return "", false
	}
	r := []rune(messages[1].Content)
	if len(r) > titleRunes {
		r = r[:titleRunes]
	}
	return string(r) + "...", true
}
