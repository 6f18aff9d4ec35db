// Package nudge picks gentle productivity reminders in one of three tones.
package nudge

import (
	"errors"
	"math/rand/v2"
	"strings"
)

// Tone selects the voice of a reminder
type Tone string

const (
	Soft         Tone = "soft"
	Motivational Tone = "motivational"
	Funny        Tone = "funny"
)

// ErrUnknownTone is returned for a tone outside the set
var ErrUnknownTone = errors.New("unknown reminder tone")

var messages = map[Tone][]string{
	Soft: {
		"Hey, how about a gentle 15-minute focus session? You've been doing great 💖",
		"Time for a little productivity moment. You're amazing for keeping up! 🌸",
		"Just a sweet reminder - your future self will thank you for this 🤗",
	},
	Motivational: {
		"Let's crush this next task — you've got the momentum! 🚀",
		"Time to show this task who's boss! You're unstoppable! 💪",
		"Your goals are calling — let's make them proud! ⭐",
	},
	Funny: {
		"Alright champion, time to pretend we love productivity again 🦸‍♀️",
		"Your procrastination break is officially over. Back to being awesome! 😄",
		"Plot twist: You're about to be productive AND have fun doing it! 🎭",
	},
}

// Tones returns the tones in picker order
func Tones() []Tone {
	return []Tone{Soft, Motivational, Funny}
}

// ParseTone normalises s; an empty string means Soft
func ParseTone(s string) (Tone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Soft, nil
	}
	t := Tone(s)
	if _, ok := messages[t]; !ok {
		return "", ErrUnknownTone
	}
	return t, nil
}

// Messages returns every reminder for t
func Messages(t Tone) ([]string, error) {
	msgs, ok := messages[t]
	if !ok {
		return nil, ErrUnknownTone
	}
	return append([]string(nil), msgs...), nil
}

// Picker chooses reminders at random
type Picker struct {
	intn func(n int) int
}

// NewPicker returns a Picker using the global random source
func NewPicker() *Picker {
	return &Picker{intn: rand.IntN}
}

// Pick returns a random reminder in tone t
func (p *Picker) Pick(t Tone) (string, error) {
	msgs, ok := messages[t]
	if !ok {
		return "", ErrUnknownTone
	}
	return msgs[p.intn(len(msgs))], nil
}
