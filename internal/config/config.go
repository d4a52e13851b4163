// Package config provides configuration loading for popviz.
// It supports loading from a YAML file and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains all popviz settings.
type Config struct {
	// Discovery controls how simulation output files are found.
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`

	// Output contains settings for generated artifacts.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// DiscoveryConfig configures dataset discovery.
type DiscoveryConfig struct {
	// RunPattern is the glob matched against per-run file names.
	RunPattern string `json:"run_pattern" yaml:"run_pattern"`

	// SummaryPattern is the glob matched against the summary file name.
	SummaryPattern string `json:"summary_pattern" yaml:"summary_pattern"`

	// SummaryInfix excludes run candidates whose name contains it, so the
	// summary file is never mistaken for a run.
	SummaryInfix string `json:"summary_infix" yaml:"summary_infix"`
}

// OutputConfig configures where artifacts are written.
type OutputConfig struct {
	// Dir is the directory chart images are written to.
	Dir string `json:"dir" yaml:"dir"`
}

// LoggingConfig configures popviz's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults matching the simulator's
// output naming.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			RunPattern:     "simulation_*_pop*.csv",
			SummaryPattern: "simulation_summary_*.csv",
			SummaryInfix:   "summary",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration for the given data root.
// Order: defaults -> <root>/popviz.yaml -> environment variables.
func Load(root string) (*Config, error) {
	config := Default()

	configPath := filepath.Join(root, "popviz.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileConfig, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Discovery.RunPattern == "" {
		return fmt.Errorf("run_pattern must not be empty")
	}
	if c.Discovery.SummaryPattern == "" {
		return fmt.Errorf("summary_pattern must not be empty")
	}
	if strings.ContainsRune(c.Discovery.RunPattern, os.PathSeparator) {
		return fmt.Errorf("run_pattern must be a file name glob, got %q", c.Discovery.RunPattern)
	}
	if strings.ContainsRune(c.Discovery.SummaryPattern, os.PathSeparator) {
		return fmt.Errorf("summary_pattern must be a file name glob, got %q", c.Discovery.SummaryPattern)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("POPVIZ_RUN_PATTERN"); v != "" {
		config.Discovery.RunPattern = v
	}
	if v := os.Getenv("POPVIZ_SUMMARY_PATTERN"); v != "" {
		config.Discovery.SummaryPattern = v
	}
	if v := os.Getenv("POPVIZ_SUMMARY_INFIX"); v != "" {
		config.Discovery.SummaryInfix = v
	}
	if v := os.Getenv("POPVIZ_OUT_DIR"); v != "" {
		config.Output.Dir = v
	}
	if v := os.Getenv("POPVIZ_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
