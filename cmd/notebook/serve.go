package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/internal/metrics"
	"github.com/aretw0/notebook/pkg/adapters/lifecycle"
	"github.com/aretw0/notebook/pkg/core"
	"github.com/aretw0/notebook/pkg/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		address string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes pages and JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.conf.HTTP.Address = address
			}
			if cmd.Flags().Changed("watch") {
				a.conf.Storage.Watch = watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", ":3000", "Listen address (env NOTEBOOK_HTTP_ADDRESS)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Log changes made to the notes file by other processes (env NOTEBOOK_DATA_WATCH)")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svc, err := a.openService(
		notebook.WithObserver(m),
		notebook.WithWatcherErrorHandler(func(err error) {
			a.logger.Error("watcher failure", "error", err)
		}),
	)
	if err != nil {
		return err
	}
	defer a.closeService(svc)

	if a.conf.Storage.Watch {
		if err := a.watch(ctx, svc); err != nil {
			return err
		}
	}

	handler, err := web.NewHandler(svc,
		web.WithLogger(a.logger),
		web.WithAllowedOrigins(a.conf.HTTP.CORSAllowedOrigins...),
		web.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              a.conf.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errs
}

// watch logs every change of the notes file until ctx is done.
func (a *app) watch(ctx context.Context, svc *core.Service) error {
	events, err := svc.Watch(ctx)
	if err != nil {
		return err
	}

	src := lifecycle.NewSource(events)
	if err := src.Start(ctx); err != nil {
		return err
	}

	go func() {
		for e := range src.Events() {
			a.logger.Info("notes file changed", "event", e.String())
		}
	}()
	return nil
}
