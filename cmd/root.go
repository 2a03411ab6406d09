package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ldt",
		Short:         "Ludoteca CLI (ldt): reserve games from the club library",
		Long:          "ldt signs you in to the ludoteca reservation backend, shows reservation badges for the games you track, submits reservation requests, and watches their status from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(os.Stderr)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newMeCmd(app),
		newRequestCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
		newItemsCmd(app),
	)

	return rootCmd
}
