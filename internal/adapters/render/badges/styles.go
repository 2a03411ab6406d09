package badges

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	item      lipgloss.Style
	pending   lipgloss.Style
	available lipgloss.Style
	enabled   lipgloss.Style
	blocked   lipgloss.Style
	empty     lipgloss.Style
	footer    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		item:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Width(28),
		pending:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		available: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		enabled:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		blocked:   lipgloss.NewStyle().Faint(true),
		empty:     lipgloss.NewStyle().Faint(true),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
	}
}

func (s styles) badge(b Badge) string {
	switch b.Tone {
	case TonePending:
		return s.pending.Render(b.Text)
	case ToneAvailable:
		return s.available.Render(b.Text)
	default:
		return ""
	}
}
