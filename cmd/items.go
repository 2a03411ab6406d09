package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newItemsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the tracked item catalog",
	}

	cmd.AddCommand(
		newItemsAddCmd(app),
		newItemsRemoveCmd(app),
		newItemsListCmd(app),
	)

	return cmd
}

func newItemsAddCmd(app *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Track an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := domain.Item{Title: strings.TrimSpace(args[0]), Note: note}
			if err := app.items.Save(cmd.Context(), item); err != nil {
				return fmt.Errorf("add item: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s\n", item.Title)
			return err
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Free-form note")

	return cmd
}

func newItemsRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <title>",
		Short: "Stop tracking an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.items.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("remove item: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking %s\n", strings.TrimSpace(args[0]))
			return err
		},
	}
}

func newItemsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := app.items.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			if len(items) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No tracked items.")
				return err
			}
			for _, item := range items {
				line := item.Title
				if item.Note != "" {
					line += " (" + item.Note + ")"
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")

	return cmd
}
