package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/typua-lang/typua/internal/diagnostics"
)

// isTTY mirrors funxy/internal/evaluator/builtins_term.go's terminal
// check (IsTerminal || IsCygwinTerminal), gating colorized output so
// piped/redirected `check` runs get plain text.
var isTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B9D"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7DC6F"))
	plainStyle   = lipgloss.NewStyle()
)

// severityStyle returns the style renderDiagnostic uses to prefix a
// diagnostic line. When stdout isn't a terminal, plainStyle's Render is
// a no-op passthrough so redirected output stays plain text.
func severityStyle(sev diagnostics.Severity) lipgloss.Style {
	if !isTTY {
		return plainStyle
	}
	if sev == diagnostics.Warning {
		return warningStyle
	}
	return errorStyle
}
