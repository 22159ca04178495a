// Package config loads runtime settings from CUTOUT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Server
	Addr            string        `env:"ADDR" envDefault:":8080"`
	BaseDir         string        `env:"BASE_DIR" envDefault:"."`
	Interpreter     string        `env:"INTERPRETER"`
	Script          string        `env:"SCRIPT" envDefault:"process.py"`
	UploadDir       string        `env:"UPLOAD_DIR"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"8388608"`
	ProcessTimeout  time.Duration `env:"PROCESS_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	SweepSchedule   string        `env:"SWEEP_SCHEDULE" envDefault:"@every 10m"`
	SweepMaxAge     time.Duration `env:"SWEEP_MAX_AGE" envDefault:"30m"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	// Client
	Endpoint       string        `env:"ENDPOINT" envDefault:"http://localhost:8080/process"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"3m"`
	Resampler      string        `env:"RESAMPLER" envDefault:"bilinear"`
}

// Load parses the environment and fills derived defaults.
func Load() (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "CUTOUT_"})
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(os.TempDir(), "cutout")
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("CUTOUT_MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return &cfg, nil
}

// ScriptPath returns the removal script path, resolved against BaseDir when relative.
func (c *Config) ScriptPath() string {
	if filepath.IsAbs(c.Script) {
		return c.Script
	}
	return filepath.Join(c.BaseDir, c.Script)
}
