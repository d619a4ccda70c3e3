// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point of the eventscms command. It installs
// the events module into a host database and serves the module's widget
// fragments over HTTP.
package main

import (
	"log/slog"
	"os"

	"eventscms/internal/config"
)

// version can be set during build with -ldflags.
var version = "dev"

func main() {
	root := newRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger installs the default structured logger: text with debug
// output in development, JSON at info level everywhere else.
func setupLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
