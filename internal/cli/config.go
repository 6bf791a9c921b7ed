package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mesh-intelligence/clevis/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "CLEVIS"

	cfgKeyTolerance = "tolerance"
	cfgKeyHTMLLog   = "html_log"
	cfgKeyTextLog   = "text_log"
	cfgKeyJournal   = "journal"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyJSON      = "json"
)

// Flag names bound to configuration keys.
const (
	flagHTML      = "html"
	flagTXT       = "txt"
	flagJSON      = "json"
	flagJournal   = "journal"
	flagTolerance = "tolerance"
	flagLogLevel  = "log-level"
)

// flagKeys maps configuration keys to the flags that override them.
// data_dir is resolved separately by the paths package.
var flagKeys = map[string]string{
	cfgKeyTolerance: flagTolerance,
	cfgKeyHTMLLog:   flagHTML,
	cfgKeyTextLog:   flagTXT,
	cfgKeyJournal:   flagJournal,
	cfgKeyLogLevel:  flagLogLevel,
	cfgKeyJSON:      flagJSON,
}

// loadConfig reads config.yaml from configDir and layers CLEVIS_* environment
// variables and changed flags on top. A missing config.yaml is not an error.
func loadConfig(cmd *cobra.Command, configDir string) (types.Config, error) {
	defaults := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyTolerance, defaults.Tolerance)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)

	for key, name := range flagKeys {
		if err := v.BindEnv(key); err != nil {
			return types.Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return types.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		Tolerance: v.GetFloat64(cfgKeyTolerance),
		HTMLLog:   v.GetString(cfgKeyHTMLLog),
		TextLog:   v.GetString(cfgKeyTextLog),
		Journal:   v.GetBool(cfgKeyJournal),
		DataDir:   v.GetString(cfgKeyDataDir),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		JSON:      v.GetBool(cfgKeyJSON),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns a text slog.Logger writing to w at the given level.
// An empty level means warn.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case types.LogLevelDebug:
		lvl = slog.LevelDebug
	case types.LogLevelInfo:
		lvl = slog.LevelInfo
	case types.LogLevelError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
