package logging

import (
	"bytes"
	"io"
)

// MultiWriter routes formatted lines by level. With debug file logging on,
// DEBUG/INFO go to the file only and WARN/ERROR go to both destinations.
// With it off, everything goes to the console.
type MultiWriter struct {
	consoleWriter io.Writer
	fileWriter    io.Writer
	debugEnabled  bool
}

func NewMultiWriter(consoleWriter, fileWriter io.Writer, debugEnabled bool) *MultiWriter {
	return &MultiWriter{
		consoleWriter: consoleWriter,
		fileWriter:    fileWriter,
		debugEnabled:  debugEnabled,
	}
}

// Write implements io.Writer
func (m *MultiWriter) Write(p []byte) (int, error) {
	if !m.debugEnabled || m.fileWriter == nil {
		return m.consoleWriter.Write(p)
	}

	level := extractLevel(p)
	if level != "WARN" && level != "ERROR" {
		return m.fileWriter.Write(p)
	}

	fileN, fileErr := m.fileWriter.Write(p)
	consoleN, consoleErr := m.consoleWriter.Write(p)
	n := fileN
	if consoleN > n {
		n = consoleN
	}
	if fileErr != nil {
		return n, fileErr
	}
	return n, consoleErr
}

// extractLevel pulls LEVEL out of "[YYYY-MM-DD HH:MM:SS] LEVEL [component] ..."
func extractLevel(p []byte) string {
	i := bytes.Index(p, []byte("] "))
	if i == -1 {
		return ""
	}
	rest := p[i+2:]
	j := bytes.IndexByte(rest, ' ')
	if j == -1 {
		return ""
	}
	return string(rest[:j])
}
