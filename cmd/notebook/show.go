package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			defer a.closeService(svc)

			note, err := svc.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !render {
				fmt.Fprintf(out, "%s\n%s\n\n%s\n", note.Title, note.ID, note.Content)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				return err
			}
			rendered, err := renderer.Render(fmt.Sprintf("# %s\n\n_%s_\n\n%s\n", note.Title, note.ID, note.Content))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&render, "render", "r", false, "Render the content as Markdown for the terminal")
	return cmd
}
