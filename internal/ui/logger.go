package ui

import (
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/lipgloss"
)

// Logger writes styled diagnostics, typically to stderr.
type Logger struct {
	logger       *log.Logger
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewLogger builds a logger writing to writer. A nil writer discards output.
func NewLogger(writer io.Writer) *Logger {
	if writer == nil {
		writer = io.Discard
	}
	return &Logger{
		logger:       log.New(writer, "", 0),
		warningStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		errorStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// Warnf logs a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Print(l.warningStyle.Render("warning:") + " " + fmt.Sprintf(format, args...))
}

// Errorf logs an error line.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Print(l.errorStyle.Render("error:") + " " + fmt.Sprintf(format, args...))
}
