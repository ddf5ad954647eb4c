package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix for environment variables, e.g. JSBIN_ADDR.
const Prefix = "JSBIN"

// Config holds runtime settings. Command-line flags override it.
type Config struct {
	Addr          string        `envconfig:"ADDR" default:"127.0.0.1:8787"`
	Open          bool          `envconfig:"OPEN" default:"false"`
	Auto          bool          `envconfig:"AUTO" default:"true"`
	Debounce      time.Duration `envconfig:"DEBOUNCE" default:"600ms"`
	StatusExpiry  time.Duration `envconfig:"STATUS_EXPIRY" default:"1800ms"`
	PreviewExpiry time.Duration `envconfig:"PREVIEW_EXPIRY" default:"900ms"`
	ExportDir     string        `envconfig:"EXPORT_DIR" default:"."`
	ScriptTimeout time.Duration `envconfig:"SCRIPT_TIMEOUT" default:"2s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the environment, then config.toml under Dir for the keys the
// environment left unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dir, err := Dir(); err == nil {
		if err := applyFile(&cfg, filepath.Join(dir, FileName)); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return &cfg, nil
}

// Default mirrors the struct tag defaults.
func Default() *Config {
	return &Config{
		Addr:          "127.0.0.1:8787",
		Auto:          true,
		Debounce:      600 * time.Millisecond,
		StatusExpiry:  1800 * time.Millisecond,
		PreviewExpiry: 900 * time.Millisecond,
		ExportDir:     ".",
		ScriptTimeout: 2 * time.Second,
		LogLevel:      "info",
	}
}
