package platform

import (
	"github.com/aretw0/notebook/pkg/core"
)

// New initializes the store at uri and builds the domain service on top of it.
//
//	svc, err := notebook.New("./data", notebook.WithFile("notes.yaml"))
//
// The URI is adapter-specific (the data directory for "fs", ignored by "memory").
func New(uri string, opts ...Option) (*core.Service, error) {
	store, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := parseOptions(opts)

	return core.NewService(store,
		core.WithLogger(o.logger),
		core.WithClock(o.clock),
		core.WithObserver(o.observer),
		core.WithEventBuffer(o.eventBuffer),
	), nil
}
