package web

import (
	"log/slog"
	"net/http"
)

type options struct {
	logger         *slog.Logger
	allowedOrigins []string
	metrics        http.Handler
	components     []any
}

// Option configures a Handler.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:         slog.New(slog.DiscardHandler),
		allowedOrigins: []string{"*"},
	}
}

// WithLogger sets the logger used for access logs and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAllowedOrigins sets the origins allowed by CORS. Defaults to "*".
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowedOrigins = origins
	}
}

// WithMetricsHandler sets the handler served on /metrics.
// Defaults to the Prometheus default registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// WithComponents adds components reported by /api/state next to the service and its store.
// Values that implement neither introspection interface are ignored.
func WithComponents(components ...any) Option {
	return func(o *options) {
		o.components = append(o.components, components...)
	}
}
