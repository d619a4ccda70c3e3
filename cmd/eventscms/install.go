// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"database/sql"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"eventscms/internal/config"
	"eventscms/internal/database"
	"eventscms/internal/installer"
	"eventscms/internal/store"
)

// installFlags are the install options that override the environment.
type installFlags struct {
	languages []string
	example   bool
}

func newInstallCmd() *cobra.Command {
	var flags installFlags

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install or repair the events module",
		Long: `Install applies the host migrations, seeds the admin group and user and
installs the events module. Running it again repairs the installation:
global settings are reset, per-language settings and translations an
editor changed are kept, and no content is duplicated. Languages that
received example events get their cached archive widget dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts, err := installOptions(cmd, cfg, flags)
			if err != nil {
				return err
			}
			defer setupTracing(cmd.Context(), cfg)()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Seed(db); err != nil {
				return err
			}

			in := installer.New(hostDeps(db), installer.WithAdminGroup(cfg.AdminGroupID))
			res, err := in.Install(cmd.Context(), opts)
			if err != nil {
				return err
			}

			store.NewInstallLogStore(db).Log(cmd.Context(), store.InstallLogEntry{
				RunID:       res.RunID,
				Module:      installer.ModuleName,
				Languages:   res.Languages,
				ExampleData: opts.InstallExample,
				Summary:     res.Summary(),
			})
			refreshArchives(cmd.Context(), cfg, res.SeededLanguages)

			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}

	bindInstallFlags(cmd, &flags)
	return cmd
}

func bindInstallFlags(cmd *cobra.Command, flags *installFlags) {
	cmd.Flags().StringSliceVar(&flags.languages, "languages", nil, "site languages to provision (default from EVENTS_LANGUAGES)")
	cmd.Flags().BoolVar(&flags.example, "example-data", false, "seed example events into languages without events")
}

// installOptions merges the configuration with the flags the operator set.
func installOptions(cmd *cobra.Command, cfg *config.Config, flags installFlags) (installer.Options, error) {
	opts := installer.Options{
		Languages:      cfg.Languages,
		InstallExample: cfg.InstallExample,
	}
	if cmd.Flags().Changed("languages") {
		langs, err := config.NormalizeLanguages(flags.languages)
		if err != nil {
			return opts, err
		}
		opts.Languages = langs
	}
	if cmd.Flags().Changed("example-data") {
		opts.InstallExample = flags.example
	}
	return opts, nil
}

// hostDeps wires the installer to the PostgreSQL host stores.
func hostDeps(db *sql.DB) installer.Deps {
	events := store.NewEventStore(db)
	return installer.Deps{
		Schema:     database.NewModuleSchema(db, installer.ModuleName, installer.SchemaFS()),
		Modules:    store.NewModuleStore(db),
		Settings:   store.NewSettingStore(db),
		Extras:     store.NewExtraStore(db),
		Locale:     store.NewLocaleStore(db),
		Pages:      store.NewPageStore(db),
		Categories: store.NewCategoryStore(db),
		Content:    events,
		Users:      store.NewUserStore(db),
	}
}

func printSummary(w io.Writer, res *installer.Result) {
	fmt.Fprintf(w, "events module installed (run %s)\n", res.RunID)
	fmt.Fprintf(w, "  languages: %v\n", res.Languages)
	summary := res.Summary()
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %d\n", name, summary[name])
	}
}
