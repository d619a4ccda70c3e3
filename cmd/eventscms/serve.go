// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"eventscms/internal/cache"
	"eventscms/internal/config"
	"eventscms/internal/handlers"
	"eventscms/internal/router"
	"eventscms/internal/store"
	"eventscms/internal/widget"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the events widget fragments over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer setupTracing(cmd.Context(), cfg)()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fragments, closeCache := fragmentCache(ctx, cfg)
			defer closeCache()

			archive := widget.NewArchive(store.NewEventStore(db), fragments, cfg.ArchiveWidgetTTL)
			srv := &http.Server{
				Addr:         cfg.Addr(),
				Handler:      router.New(handlers.NewWidgets(archive, cfg.Languages)),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}
			return runServer(ctx, srv)
		},
	}
}

// fragmentCache returns the Valkey fragment cache, or an in-memory one
// when Valkey cannot be reached.
func fragmentCache(ctx context.Context, cfg *config.Config) (widget.FragmentCache, func()) {
	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, caching fragments in memory", "error", err)
		return cache.NewMemoryFragmentCache(nil), func() {}
	}
	return cache.NewFragmentCache(client), func() { client.Close() }
}

// runServer serves until ctx is done, then gives active requests up to
// 30 seconds to complete.
func runServer(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
