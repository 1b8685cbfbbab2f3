package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EventBufferSize int    `json:"event_buffer_size"`
	StoreType       string `json:"store_type"`
	Watchable       bool   `json:"watchable"`
	Syncable        bool   `json:"syncable"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	storeType := "unknown"
	if s.store != nil {
		storeType = "store"
		if comp, ok := s.store.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}
	_, watchable := s.store.(Watchable)
	_, syncable := s.store.(Syncable)

	return ServiceState{
		EventBufferSize: s.eventBufferSize,
		StoreType:       storeType,
		Watchable:       watchable,
		Syncable:        syncable,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
