// Package output handles user-facing output: styled progress lines on the
// terminal, and structured rendering in text, JSON, or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// Stdout and Stderr are overridable for tests.
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr

	quiet bool
)

// SetQuiet suppresses everything except errors.
func SetQuiet(q bool) {
	quiet = q
}

// Info prints an informational line.
func Info(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// Success prints a line prefixed with a green checkmark.
func Success(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(Stdout, "%s %s\n", SuccessStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// Warning prints a styled warning line.
func Warning(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintln(Stdout, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints a styled error line to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintln(Stderr, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Break prints a blank line separating logical steps.
func Break() {
	if quiet {
		return
	}
	fmt.Fprintln(Stdout)
}

// Format represents an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer renders values in the configured format.
type Writer struct {
	format Format
	w      io.Writer
}

// NewWriter creates a new output writer.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{format: format, w: w}
}

// Write outputs the given value in the configured format.
func (w *Writer) Write(v interface{}) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w.w, s.String())
			return err
		}
		_, err := fmt.Fprintf(w.w, "%+v\n", v)
		return err
	}
}

// ParseFormat parses a format string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}
