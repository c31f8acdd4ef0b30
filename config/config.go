// Package config loads process-wide pool sizing from a YAML file with
// environment overrides and applies it to a vexpool registry. It also
// provides a file watcher that re-applies sizes live when the file
// changes.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/vexpool"
	"github.com/Aman-CERP/vexpool/logging"
)

// Environment variables take priority over the file:
//
//	VEXPOOL_BUILD_THREADS
//	VEXPOOL_SEARCH_THREADS
//	VEXPOOL_LOG_LEVEL
const (
	envBuildThreads  = "VEXPOOL_BUILD_THREADS"
	envSearchThreads = "VEXPOOL_SEARCH_THREADS"
	envLogLevel      = "VEXPOOL_LOG_LEVEL"
)

// Config controls the sizes of the global build and search pools. A zero
// thread count means "not configured": Apply leaves that pool alone so it
// keeps its current size, or its lazy hardware-width default on first use.
type Config struct {
	BuildThreads  int    `yaml:"build_threads"`
	SearchThreads int    `yaml:"search_threads"`
	LogLevel      string `yaml:"log_level"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads the configuration file at path, applies environment
// overrides, and validates the result. A missing file is not an error;
// defaults plus environment overrides are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(envBuildThreads); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BuildThreads = n
		}
	}
	if v := os.Getenv(envSearchThreads); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SearchThreads = n
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// Validate rejects negative thread counts. Zero is allowed and means "not
// configured".
func (c Config) Validate() error {
	if c.BuildThreads < 0 {
		return fmt.Errorf("build_threads must not be negative: %d", c.BuildThreads)
	}
	if c.SearchThreads < 0 {
		return fmt.Errorf("search_threads must not be negative: %d", c.SearchThreads)
	}
	return nil
}

// Apply pushes the configured sizes into the registry, creating pools on
// first configuration and resizing existing ones in place.
func (c Config) Apply(r *vexpool.Registry) {
	if c.BuildThreads > 0 {
		r.SetSize(vexpool.RoleBuild, c.BuildThreads)
	}
	if c.SearchThreads > 0 {
		r.SetSize(vexpool.RoleSearch, c.SearchThreads)
	}
}

// LoggingConfig maps the configured log level onto the logging package's
// defaults.
func (c Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	if c.LogLevel != "" {
		lc.Level = c.LogLevel
	}
	return lc
}

// ApplyGlobal applies the configuration to the process at large: when a
// log level is configured it installs a logger at that level as slog's
// default, then pushes the pool sizes into the process-wide registry.
// The returned cleanup function flushes and closes the log output.
func (c Config) ApplyGlobal() (func(), error) {
	cleanup := func() {}
	if c.LogLevel != "" {
		var err error
		cleanup, err = logging.SetupDefault(c.LoggingConfig())
		if err != nil {
			return nil, err
		}
	}
	c.Apply(vexpool.DefaultRegistry())
	return cleanup, nil
}
