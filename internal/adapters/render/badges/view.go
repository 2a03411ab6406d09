package badges

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Title     string
	UpdatedAt time.Time
}

func renderView(states []State, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Ludoteca reservations"
	}

	bound := 0
	for _, state := range states {
		if state.Bound {
			bound++
		}
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("items: %d", bound)),
	}

	if bound == 0 {
		lines = append(lines, s.empty.Render("No tracked items."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, state := range states {
		if !state.Bound {
			continue
		}
		lines = append(lines, renderState(state, s))
	}

	if !opts.UpdatedAt.IsZero() {
		lines = append(lines, s.footer.Render("updated "+opts.UpdatedAt.Format("15:04:05")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderState(state State, s styles) string {
	request := s.enabled.Render("request: open")
	if state.Disabled {
		request = s.blocked.Render("request: blocked")
	}

	// Terminal rows always show the badge even without a badge target.
	badge := s.badge(BadgeFor(state.Status))
	if badge == "" {
		badge = s.empty.Render("-")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.item.Render(state.Affordance.ItemTitle),
		" ",
		badge,
		"  ",
		request,
	)
}
