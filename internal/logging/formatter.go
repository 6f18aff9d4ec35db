package logging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SourceLocation captures the source code location of a log call
type SourceLocation struct {
	File     string
	Line     int
	Function string
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Component string
	Source    SourceLocation
	Message   string
	Context   Fields
}

// LogFormatter renders entries as single lines
type LogFormatter struct{}

func NewLogFormatter() *LogFormatter {
	return &LogFormatter{}
}

// Format renders an entry as
//
//	[YYYY-MM-DD HH:MM:SS] LEVEL [component] file.go:line function message key=value
//
// Context keys are emitted in sorted order.
func (f *LogFormatter) Format(entry LogEntry) string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(entry.Timestamp.Format("2006-01-02 15:04:05"))
	sb.WriteString("] ")
	sb.WriteString(entry.Level.String())
	sb.WriteString(" [")
	sb.WriteString(entry.Component)
	sb.WriteString("] ")
	sb.WriteString(entry.Source.File)
	sb.WriteString(":")
	sb.WriteString(strconv.Itoa(entry.Source.Line))
	sb.WriteString(" ")
	sb.WriteString(entry.Source.Function)
	sb.WriteString(" ")
	sb.WriteString(sanitizeMessage(entry.Message))

	if len(entry.Context) > 0 {
		keys := make([]string, 0, len(entry.Context))
		for k := range entry.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(sanitizeMessage(fmt.Sprintf("%v", entry.Context[k])))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// sanitizeMessage replaces control characters other than \n and \t with spaces
// so user-supplied text cannot forge log lines.
func sanitizeMessage(msg string) string {
	var sb strings.Builder
	sb.Grow(len(msg))
	for _, r := range msg {
		if r < 0x20 && r != '\n' && r != '\t' {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
