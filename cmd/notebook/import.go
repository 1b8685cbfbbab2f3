package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/pkg/importer"
)

func newImportCmd(a *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import <pattern>",
		Short: "Create notes from Markdown files",
		Long: `Create one note per file matching the glob pattern (e.g. "**/*.md").
The title comes from the "title" frontmatter key, the first level-one heading
or the file name, in that order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			defer a.closeService(svc)

			ctx := notebook.WithChangeReason(cmd.Context(),
				notebook.FormatCommitMessage(notebook.CommitTypeFeat, "notes", "import "+args[0], ""))

			imp := importer.New(svc, from, importer.WithLogger(a.logger))
			results, err := imp.Import(ctx, args[0])

			out := cmd.OutOrStdout()
			imported, skipped, failed := 0, 0, 0
			for _, r := range results {
				switch {
				case r.Err == nil:
					imported++
					fmt.Fprintf(out, "imported %s as %s\n", r.File, r.Note.ID)
				case r.Skipped():
					skipped++
					fmt.Fprintf(out, "skipped  %s: %v\n", r.File, r.Err)
				default:
					failed++
					fmt.Fprintf(out, "failed   %s: %v\n", r.File, r.Err)
				}
			}
			fmt.Fprintf(out, "%d imported, %d skipped, %d failed\n", imported, skipped, failed)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", ".", "Directory the pattern is matched against")
	return cmd
}
