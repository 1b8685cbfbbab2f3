package web

import (
	"fmt"
	"net/http"

	"github.com/aretw0/introspection"
)

type componentState struct {
	Type  string `json:"type"`
	State any    `json:"state,omitempty"`
}

// getState reports the introspection state of the service, its store and any
// extra component, keyed by component type.
func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	candidates := append([]any{h.service, h.service.Store()}, h.components...)

	states := make(map[string]componentState, len(candidates))
	for i, c := range candidates {
		entry := componentState{Type: fmt.Sprintf("component-%d", i)}
		known := false
		if comp, ok := c.(introspection.Component); ok {
			entry.Type = comp.ComponentType()
			known = true
		}
		if intro, ok := c.(introspection.Introspectable); ok {
			entry.State = intro.State()
			known = true
		}
		if known {
			states[entry.Type] = entry
		}
	}

	writeJSON(w, http.StatusOK, states)
}
