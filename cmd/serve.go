package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/kitware/sensei-site/internal/handler"
	"github.com/kitware/sensei-site/internal/httpserver"
	"github.com/kitware/sensei-site/internal/metrics"
	"github.com/kitware/sensei-site/site"
)

func newServeCommand(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the exported configuration and rendered docs locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("watch") {
				a.cfg.Site.Watch = watch
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the site file when it changes")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	store, err := site.NewStore(a.cfg.Site.File, a.log)
	if err != nil {
		a.log.Error("Failed to load site", slog.Any("err", err))
		return err
	}

	collector := metrics.NewCollector(1000, a.log)
	collector.Start(ctx)

	store.OnReload(func(site.Site) {
		collector.Emit(metrics.MetricEvent{
			Type:      metrics.EventSiteReloaded,
			Timestamp: time.Now(),
		})
	})
	if a.cfg.Site.Watch {
		store.Watch(ctx)
	}

	siteHandler := handler.NewSiteHandler(a.log, store, a.cfg.Docs.Dir, collector)

	srv, err := httpserver.New(a.cfg.Server.Address, setupRouter(siteHandler, collector))
	if err != nil {
		a.log.Error("Failed to create server", slog.Any("err", err))
		return err
	}

	addr, err := srv.Listen()
	if err != nil {
		a.log.Error("Failed to listen", slog.String("address", a.cfg.Server.Address), slog.Any("err", err))
		return err
	}
	a.log.Info("Preview server listening",
		slog.String("address", addr),
		slog.String("docs", a.cfg.Docs.Dir),
		slog.Bool("watch", a.cfg.Site.Watch))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			a.log.Error("Error during shutdown", slog.Any("err", err))
			return err
		}
		return nil
	case err := <-srvErrCh:
		if err != nil {
			a.log.Error("Error running preview server", slog.Any("err", err))
		}
		return err
	}
}
