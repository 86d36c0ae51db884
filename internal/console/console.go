// Package console formats human-readable CLI output. Colors are only
// emitted when the destination writer is a color-capable terminal.
package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E53935"}
	successColor = lipgloss.AdaptiveColor{Light: "#558B2F", Dark: "#8BC34A"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#2196F3"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6A737D", Dark: "#959DA5"}
)

// Printer renders styled lines for one output stream.
type Printer struct {
	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
	labelStyle   lipgloss.Style
	mutedStyle   lipgloss.Style
}

// New creates a Printer whose color profile is detected from w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		errorStyle:   r.NewStyle().Foreground(errorColor).Bold(true),
		successStyle: r.NewStyle().Foreground(successColor).Bold(true),
		infoStyle:    r.NewStyle().Foreground(infoColor),
		labelStyle:   r.NewStyle().Bold(true),
		mutedStyle:   r.NewStyle().Foreground(mutedColor),
	}
}

// Error formats a failure line.
func (p *Printer) Error(msg string) string {
	return p.errorStyle.Render("✗ " + msg)
}

// Success formats a completion line.
func (p *Printer) Success(msg string) string {
	return p.successStyle.Render("✓ " + msg)
}

// Info formats an informational line.
func (p *Printer) Info(msg string) string {
	return p.infoStyle.Render("ℹ " + msg)
}

// ListItem formats an indented bullet.
func (p *Printer) ListItem(item string) string {
	return "  " + p.mutedStyle.Render("•") + " " + item
}

// Field formats a "label: value" pair.
func (p *Printer) Field(label, value string) string {
	return p.labelStyle.Render(label+":") + " " + value
}

// Command formats a command line about to run or planned.
func (p *Printer) Command(cmd string) string {
	return p.mutedStyle.Render("$ " + cmd)
}
