package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"popviz/internal/metrics"
	"popviz/internal/pipeline"
	"popviz/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export loaded tables and derived metrics to a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, log, err := loadSetup(cmd)
			if err != nil {
				return err
			}

			status := cmd.OutOrStdout()
			data, err := pipeline.Load(root, cfg, log, status)
			if err != nil {
				return err
			}
			if len(data.Tables) == 0 {
				data.Report.Print(status)
				return nil
			}

			dbPath, _ := cmd.Flags().GetString("db")
			if err := store.Export(context.Background(), dbPath, data.Tables, data.Summary); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(status, "Saved: %s\n", dbPath)

			if data.Summary != nil {
				stats := metrics.Outcomes(data.Summary)
				data.Report.Outcomes = &stats
			}
			data.Report.Print(status)
			return nil
		},
	}
	cmd.Flags().String("db", "popviz.db", "SQLite database path to write")
	return cmd
}
