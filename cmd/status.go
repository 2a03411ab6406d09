package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"

	"github.com/bnema/ludoteca-cli/internal/adapters/render/badges"
	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/spf13/cobra"
)

type statusEntry struct {
	Title    string                   `json:"title"`
	Status   domain.ReservationStatus `json:"status"`
	Wire     string                   `json:"wire"`
	Disabled bool                     `json:"disabled"`
	Badge    string                   `json:"badge"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "status [titles...]",
		Short: "Show reservation badges for tracked items or the given titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asHTML {
				return errors.New("--json and --html are mutually exclusive")
			}

			b, err := app.Backend()
			if err != nil {
				return err
			}

			items, err := itemsForArgs(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			titles := itemTitles(items)

			affordances := badges.AffordancesFor(items)
			states, err := runTask(cmd.Context(), cmd.ErrOrStderr(), "Fetching reservation status", func(ctx context.Context) ([]badges.State, error) {
				if err := b.cache.Refresh(ctx, titles); err != nil {
					return nil, err
				}
				return badges.Bind(b.cache, affordances), nil
			})
			if err != nil {
				return fmt.Errorf("refresh reservation status: %w", err)
			}
			switch {
			case asJSON:
				return writeStatusJSON(cmd, states)
			case asHTML:
				return writeStatusHTML(cmd, states)
			default:
				rendered, err := app.renderer(states, badges.RenderOptions{UpdatedAt: app.now()})
				if err != nil {
					return fmt.Errorf("render status: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statuses as JSON")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print badge markup as HTML fragments")

	return cmd
}

// itemsForArgs returns the titles given on the command line, or the
// tracked catalog when there are none.
func itemsForArgs(ctx context.Context, app *app, args []string) ([]domain.Item, error) {
	if len(args) > 0 {
		items := make([]domain.Item, 0, len(args))
		for _, title := range args {
			items = append(items, domain.Item{Title: title})
		}
		return items, nil
	}

	items, err := app.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tracked items: %w", err)
	}
	return items, nil
}

func itemTitles(items []domain.Item) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}

func writeStatusJSON(cmd *cobra.Command, states []badges.State) error {
	entries := make([]statusEntry, 0, len(states))
	for _, state := range states {
		entries = append(entries, statusEntry{
			Title:    state.Affordance.ItemTitle,
			Status:   state.Status,
			Wire:     state.Status.Wire(),
			Disabled: state.Disabled,
			Badge:    state.Badge.Text,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeStatusHTML(cmd *cobra.Command, states []badges.State) error {
	for _, state := range states {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "<div id=%q data-title=%q>%s</div>\n",
			html.EscapeString(state.Affordance.BadgeTarget),
			html.EscapeString(state.Affordance.ItemTitle),
			state.Badge.HTML(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
