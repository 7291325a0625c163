package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/poolmap/pool"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.PoolSize)
	assert.Equal(t, "round-robin", cfg.Dispatch)
	assert.Equal(t, time.Duration(0), cfg.Deadline)
	assert.Equal(t, 5*time.Second, cfg.TeardownTimeout)
	assert.False(t, cfg.FailFast)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("POOLMAP_POOL_SIZE", "3")
	t.Setenv("POOLMAP_DISPATCH", "first-available")
	t.Setenv("POOLMAP_DEADLINE", "250ms")
	t.Setenv("POOLMAP_FAIL_FAST", "true")
	t.Setenv("POOLMAP_LOG_FORMAT", "json")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.PoolSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Deadline)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, "json", cfg.LogFormat)

	mode, err := cfg.DispatchMode()
	require.NoError(t, err)
	assert.Equal(t, pool.DispatchFirstAvailable, mode)
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"negative pool size", "POOLMAP_POOL_SIZE", "-1"},
		{"unknown dispatch", "POOLMAP_DISPATCH", "priority"},
		{"unknown log format", "POOLMAP_LOG_FORMAT", "xml"},
		{"unknown log level", "POOLMAP_LOG_LEVEL", "loud"},
		{"malformed duration", "POOLMAP_DEADLINE", "soon"},
		{"rate without burst", "POOLMAP_RATE_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POOLMAP_RATE_LIMIT", "5")
			t.Setenv(tt.key, tt.value)
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestConfig_NegativePoolSizeWrapsPoolError(t *testing.T) {
	cfg := &Config{PoolSize: -2, LogFormat: "json", LogLevel: "info"}
	assert.ErrorIs(t, cfg.ResolveDefaults(), pool.ErrInvalidPoolSize)
}

func TestConfig_RateBurstOnlyMattersWithRate(t *testing.T) {
	cfg := &Config{RateLimit: 0, RateBurst: 0, LogFormat: "json", LogLevel: "info"}
	assert.NoError(t, cfg.ResolveDefaults())

	cfg.RateLimit = 5
	assert.Error(t, cfg.ResolveDefaults())
}

func TestConfig_DefaultPoolSizeMatchesPool(t *testing.T) {
	cfg := &Config{LogFormat: "json", LogLevel: "info"}
	require.NoError(t, cfg.ResolveDefaults())

	assert.Equal(t, pool.NewPooledMapper[int, int]().PoolSize(), cfg.PoolSize)
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{
		PoolSize:  2,
		Dispatch:  "rr",
		FailFast:  true,
		LogFormat: "console",
		LogLevel:  "debug",
	}
	require.NoError(t, cfg.ResolveDefaults())

	opts := cfg.Options()
	assert.Len(t, opts, 6)

	mapper := pool.NewPooledMapper[int, int](opts...)
	assert.Equal(t, 2, mapper.PoolSize())
}
