package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/ludoteca-cli/internal/adapters/render/badges"
	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newRequestCmd(app *app) *cobra.Command {
	var request domain.ReservationRequest

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Submit a reservation request for an item",
		Long:  "Submit a reservation request. Name and phone default to the stored profile. The item's status is refreshed before and after submitting; items already requested or reserved are refused.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			if err := request.Validate(); err != nil {
				return err
			}

			session, err := b.sessions.CurrentSession(cmd.Context())
			if err != nil {
				return fmt.Errorf("request: %w", err)
			}
			if !session.Authenticated() {
				return fmt.Errorf("request: %w (run ldt login)", domain.ErrNotAuthenticated)
			}
			if request.RequesterName == "" {
				request.RequesterName = profileName(session.Profile)
			}
			if request.RequesterPhone == "" {
				request.RequesterPhone = session.Profile.String("telefono")
			}

			titles := []string{request.ItemTitle}
			affordances := badges.AffordancesFor([]domain.Item{{Title: request.ItemTitle}})

			if err := b.cache.Refresh(cmd.Context(), titles); err != nil {
				app.log.WithError(err).Warn("could not refresh status before submitting")
			}
			if state := badges.Bind(b.cache, affordances)[0]; state.Disabled {
				return fmt.Errorf("%s is not available: %s", request.ItemTitle, state.Status)
			}

			ack, err := runTask(cmd.Context(), cmd.ErrOrStderr(), "Submitting request", func(ctx context.Context) (domain.Acknowledgement, error) {
				return b.sessions.SubmitRequest(ctx, request)
			})
			if err != nil {
				return fmt.Errorf("request: %w", err)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Request sent for %s\n", request.ItemTitle); err != nil {
				return err
			}
			if id := domain.Profile(ack).String("id"); id != "" {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "reference: %s\n", id); err != nil {
					return err
				}
			}

			if err := b.cache.Refresh(cmd.Context(), titles); err != nil {
				app.log.WithError(err).Warn("could not refresh status after submitting")
				return nil
			}

			state := badges.Bind(b.cache, affordances)[0]
			badge := state.Badge.Text
			if badge == "" {
				badge = state.Status.String()
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", badge)
			return err
		},
	}

	cmd.Flags().StringVar(&request.ItemTitle, "title", "", "Item title")
	cmd.Flags().IntVar(&request.PlayerCount, "players", 0, "Number of players")
	cmd.Flags().StringVar(&request.RequesterName, "name", "", "Requester name (defaults to the profile name)")
	cmd.Flags().StringVar(&request.RequesterPhone, "phone", "", "Requester phone (defaults to the profile phone)")
	cmd.Flags().StringVar(&request.Note, "note", "", "Note for the librarians")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
