package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOCKETFLOW_HOURLY_RATE.
const EnvPrefix = "DOCKETFLOW"

// Config holds all application configuration.
type Config struct {
	// Dataset is a JSON or YAML dataset path. Empty selects the embedded dataset.
	Dataset    string  `mapstructure:"dataset"`
	// DB is the SQLite path for view state and scenarios; ":memory:" is allowed.
	DB         string  `mapstructure:"db"`
	HourlyRate float64 `mapstructure:"hourly_rate"`
	// Strict refuses a dataset with integrity problems instead of warning.
	Strict     bool    `mapstructure:"strict"`
	Watch      bool    `mapstructure:"watch"`
	LogLevel   string  `mapstructure:"log_level"`
	LogFormat  string  `mapstructure:"log_format"`
}

// DefaultDir is where the database and config file live unless overridden.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docketflow"
	}
	return filepath.Join(home, ".docketflow")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DB:         filepath.Join(DefaultDir(), "docketflow.db"),
		HourlyRate: 0,
		Strict:     false,
		Watch:      true,
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// Load reads configuration from file and environment. With an empty path the
// optional config.yaml in DefaultDir is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("dataset", def.Dataset)
	v.SetDefault("db", def.DB)
	v.SetDefault("hourly_rate", def.HourlyRate)
	v.SetDefault("strict", def.Strict)
	v.SetDefault("watch", def.Watch)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.HourlyRate < 0 {
		warnings = append(warnings, fmt.Sprintf("hourly_rate %.2f is negative; fees will be computed as 0", c.HourlyRate))
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		warnings = append(warnings, fmt.Sprintf("log_level %q is not one of debug, info, warn, error; using info", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		warnings = append(warnings, fmt.Sprintf("log_format %q is not text or json; using text", c.LogFormat))
	}
	if c.DB == "" {
		warnings = append(warnings, "db is empty; view state will not persist")
	}

	return warnings
}

// EffectiveRate clamps a negative configured rate to zero.
func (c *Config) EffectiveRate() float64 {
	if c.HourlyRate < 0 {
		return 0
	}
	return c.HourlyRate
}

// NewLogger builds the process logger from the log settings.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, ok := parseLevel(c.LogLevel)
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
