// Package web serves the notebook over HTTP: the notes pages, their JSON
// variants, the introspection endpoint and Prometheus metrics.
package web

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"

	"github.com/aretw0/notebook/pkg/core"
)

type Handler struct {
	mux        *http.ServeMux
	handler    http.Handler
	service    *core.Service
	views      *views
	logger     *slog.Logger
	components []any
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// NewHandler builds the HTTP surface of service.
func NewHandler(service *core.Service, opts ...Option) (*Handler, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		mux:        http.NewServeMux(),
		service:    service,
		views:      v,
		logger:     o.logger,
		components: o.components,
	}

	metrics := o.metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	h.mux.HandleFunc("GET /{$}", h.getHomePage)
	h.mux.HandleFunc("GET /notes", h.getNotes)
	h.mux.HandleFunc("POST /notes", h.handleCreateNote)
	h.mux.HandleFunc("GET /notes/{id}", h.getNote)
	h.mux.HandleFunc("GET /styles.css", h.getStylesheet)
	h.mux.HandleFunc("GET /api/state", h.getState)
	h.mux.Handle("GET /metrics", metrics)
	h.mux.HandleFunc("GET /", h.notFound)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: o.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})

	var handler http.Handler = h.mux
	handler = corsHandler.Handler(handler)
	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(o.logger)(handler)
	h.handler = handler

	return h, nil
}

var _ http.Handler = &Handler{}
