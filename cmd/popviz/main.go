package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "popviz",
		Short: "Analyze and chart population-simulation output",
		Long: `popviz ingests the CSV time series written by repeated population-simulation
runs, derives growth, phase, net-change and extinction metrics, and renders a
fixed set of comparative charts for comparing stochastic outcomes across runs.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("root", ".", "Directory containing simulation CSV output")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default <root>/popviz.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAnalyzeCmd(),
		newInspectCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "popviz version %s\n", version)
			}
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
