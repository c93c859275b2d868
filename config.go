package lux

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oarkflow/lux/utils"
)

const (
	// ConfigEnv names the environment variable holding the config path.
	ConfigEnv         = "LUX_CONFIG"
	DefaultConfigFile = ".lux.yaml"
	DefaultExtension  = ".lux"

	// MaxWorkers caps the batch runner's concurrency.
	MaxWorkers = 1024
)

// Config is the tool configuration, read from YAML.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	LogLevel           string `yaml:"log_level"`
	Workers            int    `yaml:"workers"`
	MaxCallDepth       int    `yaml:"max_call_depth"`
	Extension          string `yaml:"extension"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		HistoryFile:        ".lux_history",
		LogLevel:           "warn",
		MaxCallDepth:       DefaultMaxCallDepth,
		Extension:          DefaultExtension,
	}
}

// ConfigPath returns $LUX_CONFIG or the default file name.
func ConfigPath() string {
	return utils.Getenv(ConfigEnv, DefaultConfigFile)
}

// LoadConfig overlays the YAML file at path onto the defaults. A missing
// file is not an error. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return decodeConfig(f, cfg)
}

// ParseConfig reads YAML from r onto the defaults.
func ParseConfig(r io.Reader) (Config, error) {
	return decodeConfig(r, DefaultConfig())
}

func decodeConfig(r io.Reader, cfg Config) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var configSchema = NewSchema().
	AddRule("log_level", Enum("debug", "info", "warn", "error")).
	AddRule("workers", Range(0, MaxWorkers)).
	AddRule("max_call_depth", Min(0)).
	AddRule("extension", Pattern(`^\.[A-Za-z0-9_]+$`))

func (c Config) Validate() error {
	return configSchema.Validate(map[string]any{
		"log_level":      c.LogLevel,
		"workers":        c.Workers,
		"max_call_depth": c.MaxCallDepth,
		"extension":      c.Extension,
	})
}

// Level maps LogLevel onto slog; unknown values fall back to warn.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Logger builds a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// Options translates the configuration into interpreter options.
func (c Config) Options() []Option {
	return []Option{WithMaxCallDepth(c.MaxCallDepth)}
}
