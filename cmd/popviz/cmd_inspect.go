package main

import (
	"github.com/spf13/cobra"

	"popviz/internal/pipeline"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Discover and load datasets without rendering anything",
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
			data.Report.Print(status)
			return nil
		},
	}
}
