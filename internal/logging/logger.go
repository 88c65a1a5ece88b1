// Package logging provides the line-oriented leveled logger shared by the
// command-line tools. Output is colorized when the destination is a
// terminal and falls back to plain "[LEVEL] message" lines otherwise.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/descoped/script-utils/internal/sanitize"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Blue
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Grey
)

// Logger writes leveled, line-oriented messages. Verbose lines are passed
// through the secret redactor before emission so traced config content
// never leaks credentials into logs.
type Logger struct {
	out     io.Writer
	color   bool
	verbose bool
}

// New builds a Logger writing to out. Color is auto-detected: enabled only
// when out is a terminal, never flag-controlled.
func New(out io.Writer, verbose bool) *Logger {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Logger{out: out, color: color, verbose: verbose}
}

// Default returns a stdout logger.
func Default(verbose bool) *Logger {
	return New(os.Stdout, verbose)
}

// Verbose reports whether per-line tracing is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) emit(level string, style lipgloss.Style, msg string) {
	if l.color {
		fmt.Fprintf(l.out, "%s %s\n", style.Render("["+level+"]"), msg)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.emit("INFO", infoStyle, fmt.Sprintf(format, args...))
}

// Warningf logs a non-fatal problem. The tool keeps going.
func (l *Logger) Warningf(format string, args ...any) {
	l.emit("WARNING", warningStyle, fmt.Sprintf(format, args...))
}

// Errorf logs an error. Reserved for invocation-level failures.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit("ERROR", errorStyle, fmt.Sprintf(format, args...))
}

// Tracef logs a per-line trace message when verbose is enabled. The
// rendered message is redacted first: echoed config lines may contain
// credential assignments.
func (l *Logger) Tracef(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.emit("VERBOSE", verboseStyle, sanitize.RedactLine(fmt.Sprintf(format, args...)))
}
