package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/notebook/pkg/adapters/fs"
	"github.com/aretw0/notebook/pkg/adapters/memory"
	"github.com/aretw0/notebook/pkg/adapters/sqlite"
	"github.com/aretw0/notebook/pkg/core"
)

// Init prepares the store described by uri and opts and runs its initialization
// (directory creation, git init).
func Init(uri string, opts ...Option) (core.Store, error) {
	return initStore(context.Background(), uri, parseOptions(opts))
}

func initStore(ctx context.Context, uri string, o *options) (core.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	var store core.Store
	var err error

	if o.versioning && o.adapter != "fs" && o.adapter != "" {
		return nil, fmt.Errorf("versioning is not supported by the %s adapter", o.adapter)
	}

	switch o.adapter {
	case "fs", "":
		store, err = newFSStore(uri, o)
	case "sqlite":
		store = sqlite.NewStore(sqlite.Config{
			Path:      resolvePath(uri, o),
			File:      o.file,
			SystemDir: o.systemDir,
			ReadOnly:  o.readOnly,
			Logger:    o.logger,
		})
	case "memory":
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// newFSStore builds the file store over the resolved data directory.
func newFSStore(path string, o *options) (*fs.Store, error) {
	return fs.NewStore(fs.Config{
		Path:         resolvePath(path, o),
		File:         o.file,
		SystemDir:    o.systemDir,
		AutoInit:     o.autoInit,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		Versioned:    o.versioning,
		Logger:       o.logger,
		ErrorHandler: o.onWatchErr,
		Serializers:  o.serializers,
	})
}

// resolvePath applies the dev sandbox to the data directory.
// Read-only stores cannot damage anything, so they skip the sandbox.
func resolvePath(path string, o *options) string {
	bypassSafety := o.readOnly || !o.devSafety
	devRun := IsDevRun()
	useTemp := o.forceTemp || (devRun && !bypassSafety)
	resolvedPath := ResolveDataPath(path, useTemp)

	if o.logger != nil && devRun {
		switch {
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "original_path", path, "resolved_path", resolvedPath)
		}
	}

	return resolvedPath
}

// Sync synchronizes the data directory at uri with its git remote.
// The directory must already exist and be versioned.
func Sync(ctx context.Context, uri string, opts ...Option) error {
	o := parseOptions(opts)
	o.mustExist = true

	store, err := initStore(ctx, uri, o)
	if err != nil {
		return err
	}

	syncable, ok := store.(core.Syncable)
	if !ok {
		return fmt.Errorf("store does not support synchronization")
	}
	return syncable.Sync(ctx)
}
