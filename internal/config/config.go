// Package config loads the CLI defaults from the environment.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/utkarsh5026/poolmap/pool"
)

// Prefix is the environment variable prefix, e.g. POOLMAP_POOL_SIZE.
const Prefix = "POOLMAP"

// Config holds the settings a batch runs with. Every field can be set from
// the environment and overridden by command-line flags.
type Config struct {
	// PoolSize is the number of workers; 0 means runtime.GOMAXPROCS(0),
	// the same default the pool uses.
	PoolSize int    `envconfig:"POOL_SIZE" default:"0"`
	Dispatch string `envconfig:"DISPATCH" default:"round-robin"`

	Deadline        time.Duration `envconfig:"DEADLINE" default:"0s"`
	TeardownTimeout time.Duration `envconfig:"TEARDOWN_TIMEOUT" default:"5s"`

	RateLimit float64 `envconfig:"RATE_LIMIT" default:"0"`
	RateBurst int     `envconfig:"RATE_BURST" default:"1"`

	FailFast    bool `envconfig:"FAIL_FAST" default:"false"`
	CPUAffinity bool `envconfig:"CPU_AFFINITY" default:"false"`
	Progress    bool `envconfig:"PROGRESS" default:"false"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// New parses the environment and validates the result.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults fills derived values and rejects settings no batch could
// run with. It is safe to call again after flags changed the config.
func (c *Config) ResolveDefaults() error {
	if c.PoolSize == 0 {
		c.PoolSize = runtime.GOMAXPROCS(0)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("invalid pool size %d: %w", c.PoolSize, pool.ErrInvalidPoolSize)
	}

	if _, err := c.DispatchMode(); err != nil {
		return err
	}

	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate limit %g needs a burst of at least 1, got %d", c.RateLimit, c.RateBurst)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.LogFormat)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unsupported log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// DispatchMode maps the Dispatch setting onto a pool dispatch mode.
func (c *Config) DispatchMode() (pool.DispatchMode, error) {
	switch strings.ToLower(c.Dispatch) {
	case "round-robin", "roundrobin", "rr", "":
		return pool.DispatchRoundRobin, nil
	case "first-available", "firstavailable", "shared":
		return pool.DispatchFirstAvailable, nil
	default:
		return 0, fmt.Errorf("unsupported dispatch mode: %s", c.Dispatch)
	}
}

// Options translates the config into pool options. It expects a config
// that passed ResolveDefaults.
func (c *Config) Options() []pool.Option {
	mode, _ := c.DispatchMode()

	opts := []pool.Option{
		pool.WithPoolSize(c.PoolSize),
		pool.WithDispatch(mode),
		pool.WithDeadline(c.Deadline),
		pool.WithTeardownTimeout(c.TeardownTimeout),
		pool.WithRateLimit(c.RateLimit, c.RateBurst),
	}
	if c.FailFast {
		opts = append(opts, pool.WithFailFast())
	}
	if c.CPUAffinity {
		opts = append(opts, pool.WithCPUAffinity(false))
	}
	return opts
}
