// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"eventscms/internal/config"
	"eventscms/internal/database"
	"eventscms/internal/telemetry"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "eventscms",
		Short: "Install and serve the events module",
		Long: `eventscms installs the events module into a CMS database: its tables,
registry entries, rights, settings, page builder extras, a default
category and page per language and the interface translations. It also
serves the module's widget fragments over HTTP.

Configuration is read from the environment (POSTGRES_*, VALKEY_*,
EVENTS_*); flags override it.`,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "eventscms version %s\n" .Version}}`)

	root.AddCommand(
		newMigrateCmd(),
		newInstallCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newFlushCacheCmd(),
	)
	return root
}

// loadConfig reads the configuration and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	setupLogger(cfg)
	slog.Info("configuration loaded", "env", cfg.Env, "languages", cfg.Languages)
	return cfg, nil
}

// setupTracing enables span export when an endpoint is configured. The
// returned function flushes pending spans.
func setupTracing(ctx context.Context, cfg *config.Config) func() {
	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, "eventscms", version)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			slog.Warn("flush traces", "error", err)
		}
	}
}

// openDatabase connects to PostgreSQL and brings the host schema up to date.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the host database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if cfg.IsDev() {
				return database.Seed(db)
			}
			return nil
		},
	}
}
