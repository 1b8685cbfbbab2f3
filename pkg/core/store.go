package core

import "context"

// Store defines the contract for persisting the notes collection.
// The collection is always read and written as a whole.
// Adhering to this interface keeps the core independent of the storage mechanism.
type Store interface {
	// Read loads the full collection in insertion order.
	// A store with no data yet returns an empty slice and no error.
	Read(ctx context.Context) ([]Note, error)

	// Write replaces the persisted collection with notes.
	Write(ctx context.Context, notes []Note) error

	// Initialize ensures the underlying storage is ready (e.g. create directories, git init).
	Initialize(ctx context.Context) error
}

// Locker is implemented by stores that can exclude other processes
// during a read-modify-write cycle.
type Locker interface {
	// Lock blocks until the lock is held or ctx is done.
	Lock(ctx context.Context) (unlock func(), err error)
}

// Watchable is implemented by stores that can report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Syncable is implemented by stores that can synchronize with a remote.
type Syncable interface {
	// Sync synchronizes the local state with a remote source (e.g. git pull/push).
	Sync(ctx context.Context) error
}
