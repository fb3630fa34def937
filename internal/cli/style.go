package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#b5121b", Dark: "#ff5f6d"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#4a4a4a", Dark: "#a9b1d6"}
	colorOK     = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#50fa7b"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f57c00", Dark: "#ffb86c"}
)

// styles renders terminal output for one writer
type styles struct {
	title lipgloss.Style
	id    lipgloss.Style
	name  lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(colorAccent),
		id:    r.NewStyle().Foreground(colorAccent).Width(8),
		name:  r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		ok:    r.NewStyle().Bold(true).Foreground(colorOK),
		warn:  r.NewStyle().Foreground(colorWarn),
	}
}
