package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/clevis/internal/paths"
	"github.com/mesh-intelligence/clevis/internal/sqlite"
	"github.com/mesh-intelligence/clevis/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and journal database",
		Long:  "Create the configuration directory with a default config.yaml, then create the data directory and its journal database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}
}

func runInit(cmd *cobra.Command, opts *options) error {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	configPath := filepath.Join(configDir, paths.ConfigFileName)

	// An existing config.yaml supplies data_dir when no flag is given.
	dataDir, err := paths.ResolveDataDir(opts.dataDir, loadDataDirFromConfig(configPath))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	if err := writeConfigIfMissing(configPath, dataDir); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	j, err := sqlite.Open(dataDir)
	if err != nil {
		return sysError(fmt.Errorf("initialize journal: %w", err))
	}
	if err := j.Close(); err != nil {
		return sysError(fmt.Errorf("close journal: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Clevis initialized\nconfig: %s\ndata: %s\n", configPath, dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left untouched.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := types.DefaultConfig()
	cfg.DataDir = dataDir

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// loadDataDirFromConfig reads data_dir from an existing config.yaml.
// Returns the empty string if the file does not exist or cannot be parsed.
func loadDataDirFromConfig(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return cfg.DataDir
}
