package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long:  "Sign in to the reservation backend. The password is hashed before it is sent. Without --password it is read from the first line of stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}

			if password == "" {
				password, err = readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			profile, err := b.sessions.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(profile, username))
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required (use --password or pipe it on stdin)")
	}
	return password, nil
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}

			if err := b.sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func newMeCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Check the stored session with the backend and show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}

			profile, err := b.sessions.RefreshMe(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrNotAuthenticated) && !errors.Is(err, domain.ErrBackend) {
					return errors.New("not logged in (run ldt login)")
				}
				return fmt.Errorf("me: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile)
			}

			return writeProfile(cmd.OutOrStdout(), profile)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")

	return cmd
}

func writeProfile(out io.Writer, profile domain.Profile) error {
	if _, err := fmt.Fprintf(out, "Logged in as %s\n", displayName(profile, "")); err != nil {
		return err
	}

	keys := make([]string, 0, len(profile))
	for key := range profile {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(out, "  %s: %s\n", key, profile.String(key)); err != nil {
			return err
		}
	}
	return nil
}

func profileName(profile domain.Profile) string {
	for _, key := range []string{"nome", "name", "username", "email"} {
		if value := profile.String(key); value != "" {
			return value
		}
	}
	return ""
}

func displayName(profile domain.Profile, fallback string) string {
	if name := profileName(profile); name != "" {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return "unknown user"
}
