// Package ui provides consistent styled output for the ccr CLI.
package ui

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
)

// Writer provides styled output methods that respect color settings.
type Writer struct {
	out     io.Writer
	errOut  io.Writer
	noColor bool
}

// NewWriter creates a Writer that writes to stdout/stderr.
// Color is disabled when noColor is true or the NO_COLOR env var is set.
func NewWriter(noColor bool) *Writer {
	return &Writer{
		out:     os.Stdout,
		errOut:  os.Stderr,
		noColor: noColor || os.Getenv("NO_COLOR") != "",
	}
}

// NewWriterWithOutputs creates a Writer with custom output destinations.
// Intended for testing.
func NewWriterWithOutputs(out, errOut io.Writer, noColor bool) *Writer {
	return &Writer{
		out:     out,
		errOut:  errOut,
		noColor: noColor,
	}
}

// Success prints a message with a green checkmark prefix.
func (w *Writer) Success(msg string) {
	writeLine(w.out, w.styled(colorGreen, "✓"), msg)
}

// Failure prints a message with a red cross prefix. Unlike Error, it goes to
// stdout: it is part of a report, not a diagnostic.
func (w *Writer) Failure(msg string) {
	writeLine(w.out, w.styled(colorRed, "✗"), msg)
}

// Error prints an error message to stderr with a red prefix.
func (w *Writer) Error(msg string) {
	writeLine(w.errOut, w.styled(colorRed, "error:"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Failuref prints a formatted failure message.
func (w *Writer) Failuref(format string, args ...any) {
	w.Failure(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Printf writes unstyled report text to the output stream.
func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

func (w *Writer) styled(color, text string) string {
	if w.noColor {
		return text
	}

	return color + text + colorReset
}

func writeLine(out io.Writer, prefix, msg string) {
	if _, err := fmt.Fprintf(out, "%s %s\n", prefix, msg); err != nil {
		// Best-effort output; if the stream fails there's nothing useful to do.
		return
	}
}
