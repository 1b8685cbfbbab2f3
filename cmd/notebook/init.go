package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/pkg/adapters/fs"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a notebook data directory",
		Long: `Create the data directory. With --versioning the directory also becomes
a git repository (git init) that ignores the notebook system directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notebook.Init(a.conf.Storage.Dir, a.options(notebook.WithAutoInit(true))...)
			if err != nil {
				return err
			}

			if c, ok := store.(io.Closer); ok {
				defer c.Close()
			}

			where := a.conf.Storage.Dir
			if fsStore, ok := store.(*fs.Store); ok {
				where = fsStore.Path
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized notebook in", where)
			return nil
		},
	}
}
