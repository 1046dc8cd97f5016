package render

import "github.com/charmbracelet/lipgloss"

// Theme is the set of styles used to print lists and entries.
type Theme struct {
	title     lipgloss.Style
	muted     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	starFull  lipgloss.Style
	starHalf  lipgloss.Style
	starEmpty lipgloss.Style
	score     lipgloss.Style
	card      lipgloss.Style
	errorText lipgloss.Style
}

// NewTheme builds the styles on r. Color output depends on the terminal r
// writes to; styles degrade to plain text when it is not a TTY.
func NewTheme(r *lipgloss.Renderer) *Theme {
	return &Theme{
		title:     r.NewStyle().Bold(true),
		muted:     r.NewStyle().Faint(true),
		label:     r.NewStyle().Foreground(lipgloss.Color("244")),
		value:     r.NewStyle(),
		starFull:  r.NewStyle().Foreground(lipgloss.Color("220")),
		starHalf:  r.NewStyle().Foreground(lipgloss.Color("178")),
		starEmpty: r.NewStyle().Faint(true),
		score:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		card:      r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		errorText: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// DefaultTheme renders for stdout.
func DefaultTheme() *Theme {
	return NewTheme(lipgloss.DefaultRenderer())
}
