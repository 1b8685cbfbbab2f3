package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aretw0/notebook/pkg/core"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			defer a.closeService(svc)

			out := cmd.OutOrStdout()
			notes, err := svc.ListNotes(cmd.Context())
			if errors.Is(err, core.ErrNotFound) && !asJSON {
				fmt.Fprintln(out, core.UserMessage(err, core.MsgNoNotes))
				return nil
			}
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(notes)
			}

			sorted := core.SortNewestFirst(notes)
			for i, note := range sorted {
				when := note.ID
				if t, err := note.CreatedAt(); err == nil {
					when = humanize.Time(t)
				}
				fmt.Fprintf(out, "#%d  %s  %s (%s)\n", i+1, note.ID, note.Title, when)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the collection in storage order as JSON")
	return cmd
}
