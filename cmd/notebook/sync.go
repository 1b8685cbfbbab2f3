package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
)

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize a versioned notebook with its remote",
		Long: `Pull remote changes (rebase) and push local commits of a notebook
created with --versioning. The remote must be named 'origin'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Syncing...")

			opts := a.options(notebook.WithVersioning(true))
			if err := notebook.Sync(cmd.Context(), a.conf.Storage.Dir, opts...); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Tip: Ensure you have a remote configured ('git remote add origin <url>') and you are online.")
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Fprintln(out, "Sync completed successfully.")
			return nil
		},
	}
}
