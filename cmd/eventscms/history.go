// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventscms/internal/installer"
	"eventscms/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent installations of the events module",
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

			entries, err := store.NewInstallLogStore(db).RecentEntries(cmd.Context(), installer.ModuleName, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no installations recorded")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s  languages=%s example=%t categories=%d pages=%d locale=%d/%d\n",
					e.InstalledAt.Format("2006-01-02 15:04:05"),
					e.RunID,
					strings.Join(e.Languages, ","),
					e.ExampleData,
					e.Summary["categories_created"],
					e.Summary["pages_created"],
					e.Summary["locale_inserted"],
					e.Summary["locale_inserted"]+e.Summary["locale_skipped"],
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}
