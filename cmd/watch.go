package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/ludoteca-cli/internal/adapters/render/badges"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [titles...]",
		Short: "Poll reservation status and keep the badges on screen up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = app.cfg.PollInterval
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			initial, err := itemsForArgs(ctx, app, args)
			if err != nil {
				return err
			}
			if len(initial) == 0 {
				return errors.New("no tracked items (add some with ldt items add)")
			}

			// The catalog is re-read on every tick so edits made while
			// watching are picked up.
			keys := func() []string {
				items, err := itemsForArgs(ctx, app, args)
				if err != nil {
					app.reporter.Suppressed("poll.keys", err)
					return nil
				}
				return itemTitles(items)
			}
			affordances := func() []badges.Affordance {
				items, err := itemsForArgs(ctx, app, args)
				if err != nil {
					return nil
				}
				return badges.AffordancesFor(items)
			}

			p := tea.NewProgram(
				badges.NewWatchModel(b.cache, affordances, fmt.Sprintf("Watching reservations (every %s)", interval)),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			onUpdated := func() {
				p.Send(badges.UpdatedMsg{At: app.now()})
			}

			go func() {
				if err := b.cache.Refresh(ctx, keys()); err != nil {
					app.reporter.Suppressed("poll.tick", err)
					return
				}
				onUpdated()
			}()

			b.cache.StartPolling(ctx, keys, onUpdated, interval)
			defer b.cache.StopPolling()

			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (defaults to poll.interval, 8s)")

	return cmd
}
