package types

import (
	"errors"
	"math"
)

// DefaultTolerance is the distance used by point-coverage queries when no
// other value is configured.
const DefaultTolerance = 0.05

// Config holds the settings of an editing session.
type Config struct {
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	HTMLLog   string  `json:"html_log" yaml:"html_log"`
	TextLog   string  `json:"text_log" yaml:"text_log"`
	Journal   bool    `json:"journal" yaml:"journal"`
	DataDir   string  `json:"data_dir" yaml:"data_dir"`
	LogLevel  string  `json:"log_level" yaml:"log_level"`
	JSON      bool    `json:"json" yaml:"json"`
}

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config validation errors.
var (
	ErrToleranceInvalid = errors.New("tolerance must be positive")
	ErrLogLevelUnknown  = errors.New("unknown log level")
)

// knownLogLevels lists the levels that Validate accepts.
var knownLogLevels = map[string]bool{
	LogLevelDebug: true,
	LogLevelInfo:  true,
	LogLevelWarn:  true,
	LogLevelError: true,
}

// DefaultConfig returns a Config with the default tolerance and log level.
func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		LogLevel:  LogLevelWarn,
	}
}

// Validate checks that the Config is well-formed. An empty log level is
// accepted and treated as warn.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return ErrToleranceInvalid
	}
	if c.LogLevel != "" && !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
