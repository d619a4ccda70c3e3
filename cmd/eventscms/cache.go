// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"eventscms/internal/cache"
	"eventscms/internal/config"
	"eventscms/internal/widget"
)

func newFlushCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush-cache",
		Short: "Drop every cached widget fragment from Valkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := cache.ConnectValkey(cmd.Context(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
			if err != nil {
				return err
			}
			defer client.Close()

			cache.NewFragmentCache(client).InvalidateAll(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "fragment cache flushed")
			return nil
		},
	}
}

// fragmentInvalidator drops a single cached fragment.
type fragmentInvalidator interface {
	Invalidate(ctx context.Context, key string)
}

// invalidateArchives drops the archive widget of every language so the
// next request renders it from the current events.
func invalidateArchives(ctx context.Context, fc fragmentInvalidator, langs []string) {
	for _, lang := range langs {
		fc.Invalidate(ctx, widget.CacheKey(lang))
	}
}

// refreshArchives invalidates the shared archive widgets after an install
// added events. Without Valkey, servers cache in their own memory and
// pick the events up once the widget ttl elapses.
func refreshArchives(ctx context.Context, cfg *config.Config, langs []string) {
	if len(langs) == 0 {
		return
	}
	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, archive widgets refresh on expiry",
			"languages", langs, "ttl", cfg.ArchiveWidgetTTL, "error", err)
		return
	}
	defer client.Close()
	invalidateArchives(ctx, cache.NewFragmentCache(client), langs)
	slog.Info("archive widgets invalidated", "languages", langs)
}
