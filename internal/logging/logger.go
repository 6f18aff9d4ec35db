package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields is a set of key=value pairs appended to every line of a derived logger
type Fields map[string]interface{}

// Logger writes leveled, component-tagged lines
type Logger struct {
	level     Level
	component string
	output    io.Writer
	context   Fields
	formatter *LogFormatter
}

// NewLogger creates a logger for a component. A nil output means stdout.
func NewLogger(component string, level Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	return &Logger{
		level:     level,
		component: component,
		output:    output,
		formatter: NewLogFormatter(),
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return NewLogger("discard", ERROR+1, io.Discard)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Component returns a logger for another component sharing level, output and context
func (l *Logger) Component(name string) *Logger {
	c := l.clone()
	c.component = name
	return c
}

// WithContext returns a new Logger with an added context field
func (l *Logger) WithContext(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a new Logger with multiple context fields
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.context[k] = v
	}
	return c
}

// WithError is shorthand for WithContext("error", err.Error())
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithContext("error", err.Error())
}

func (l *Logger) clone() *Logger {
	ctx := make(Fields, len(l.context)+1)
	for k, v := range l.context {
		ctx[k] = v
	}
	return &Logger{
		level:     l.level,
		component: l.component,
		output:    l.output,
		context:   ctx,
		formatter: l.formatter,
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	// Skip log() and the exported level method.
	src := SourceLocation{File: "unknown", Function: "unknown"}
	if pc, file, line, ok := runtime.Caller(2); ok {
		src.File = filepath.Base(file)
		src.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			src.Function = filepath.Base(fn.Name())
		}
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Component: l.component,
		Source:    src,
		Message:   fmt.Sprintf(format, args...),
		Context:   l.context,
	}
	l.output.Write([]byte(l.formatter.Format(entry)))
}

// ParseLevel converts a string to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}
