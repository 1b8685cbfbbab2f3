package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		title   string
		content string
		message string
		ctype   string
		scope   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Long:  `Add a note with the given title and content. The title must be at least 5 characters long.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			defer a.closeService(svc)

			var reason string
			switch {
			case ctype != "":
				subject := message
				if subject == "" {
					subject = "add " + title
				}
				reason = notebook.FormatCommitMessage(ctype, scope, subject, "")
			case message != "":
				reason = notebook.AppendFooter(message)
			}

			ctx := notebook.WithChangeReason(cmd.Context(), reason)
			note, err := svc.CreateNote(ctx, title, content)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note %s added.\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message when versioning")
	cmd.Flags().StringVarP(&ctype, "type", "t", "", "Commit type (feat, fix, docs, chore)")
	cmd.Flags().StringVarP(&scope, "scope", "s", "notes", "Commit scope")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
