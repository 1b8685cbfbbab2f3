package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/internal/config"
	"github.com/aretw0/notebook/pkg/core"
)

// app carries the state shared by all commands.
type app struct {
	conf   *config.Config
	logger *slog.Logger

	dataDir    string
	file       string
	adapter    string
	verbose    bool
	versioning bool
	readOnly   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "notebook",
		Short: "A minimal notes keeper backed by a single file",
		Long: `Notebook stores short notes (title + content) in one JSON or YAML file.
Every note gets its creation timestamp as ID. Notes are served over HTTP
with 'notebook serve' or managed directly from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.dataDir, "data-dir", "d", "", "Data directory (env NOTEBOOK_DATA_DIR)")
	flags.StringVarP(&a.file, "file", "f", "", "Notes file name, .json/.yaml/.yml (env NOTEBOOK_DATA_FILE)")
	flags.StringVar(&a.adapter, "adapter", "", "Storage adapter: fs, sqlite or memory (env NOTEBOOK_DATA_ADAPTER)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&a.versioning, "versioning", false, "Commit every change with git (env NOTEBOOK_DATA_VERSIONING)")
	flags.BoolVar(&a.readOnly, "read-only", false, "Open the notebook read-only (env NOTEBOOK_DATA_READ_ONLY)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newImportCmd(a),
		newInitCmd(a),
		newSyncCmd(a),
		newStateCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads the environment configuration, lets explicitly set flags win,
// and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	conf, err := config.Parse()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		conf.Storage.Dir = a.dataDir
	}
	if flags.Changed("file") {
		conf.Storage.File = a.file
	}
	if flags.Changed("adapter") {
		conf.Storage.Adapter = a.adapter
	}
	if flags.Changed("versioning") {
		conf.Storage.Versioning = a.versioning
	}
	if flags.Changed("read-only") {
		conf.Storage.ReadOnly = a.readOnly
	}
	if a.verbose {
		conf.Logger.Level = "debug"
	}
	a.conf = conf

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(conf.Logger.Level))); err != nil {
		level = slog.LevelInfo
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

// options translates the configuration into notebook options.
func (a *app) options(extra ...notebook.Option) []notebook.Option {
	opts := []notebook.Option{
		notebook.WithLogger(a.logger),
		notebook.WithAdapter(a.conf.Storage.Adapter),
		notebook.WithVersioning(a.conf.Storage.Versioning),
		notebook.WithReadOnly(a.conf.Storage.ReadOnly),
	}
	if a.conf.Storage.Adapter != "sqlite" {
		opts = append(opts, notebook.WithFile(a.conf.Storage.File))
	}
	return append(opts, extra...)
}

func (a *app) openService(extra ...notebook.Option) (*core.Service, error) {
	return notebook.New(a.conf.Storage.Dir, a.options(extra...)...)
}

func (a *app) closeService(svc *core.Service) {
	if err := svc.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
}
