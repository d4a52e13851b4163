package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"popviz/internal/config"
	"popviz/internal/logging"
	"popviz/internal/pipeline"
)

// loadSetup resolves the shared --root/--config flags into a validated
// config and a leveled logger. Every subcommand goes through it.
func loadSetup(cmd *cobra.Command) (string, *config.Config, *slog.Logger, error) {
	root, _ := cmd.Flags().GetString("root")
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load(root)
	}
	if err != nil {
		return "", nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	return root, cfg, log, nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis pipeline and render charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, log, err := loadSetup(cmd)
			if err != nil {
				return err
			}

			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = cfg.Output.Dir
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			status := cmd.OutOrStdout()
			data, err := pipeline.Load(root, cfg, log, status)
			if err != nil {
				return err
			}

			report, err := pipeline.Render(data, outDir, log, status)
			if err != nil && !errors.Is(err, pipeline.ErrNoData) {
				return err
			}
			report.Print(status)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "Chart output directory (default from config)")
	return cmd
}
