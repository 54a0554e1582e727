package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadForTest(t *testing.T, overrides ...map[string]any) *Config {
	t.Helper()

	v, err := NewViper("")
	require.NoError(t, err)

	cfg, err := Load(context.Background(), v, overrides...)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}

func TestLoad(t *testing.T) {
	// Test basic config loading with defaults
	t.Run("LoadDefaults", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())

		cfg := loadForTest(t)

		// Verify server defaults
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)

		// Verify store defaults
		assert.Equal(t, "libsql", cfg.Store.Driver)
		expectedStorePath := filepath.Join(gfconfig.GetAppDataDir("renolab"), "renolab.db")
		assert.Equal(t, expectedStorePath, cfg.Store.Path)
		assert.Equal(t, "", cfg.Store.URL)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.True(t, cfg.Health.Enabled)

		// Verify estimator constants
		assert.Equal(t, 2.0, cfg.Estimate.DoorAllowance)
		assert.Equal(t, 4.5, cfg.Estimate.AdhesiveKgPerM2)

		// Verify rate limit policies
		estimate, ok := cfg.RateLimit(PolicyEstimate)
		require.True(t, ok)
		assert.Equal(t, 60, estimate.MaxRequests)
		assert.Equal(t, time.Minute, estimate.Window)
		assert.Equal(t, PolicyEstimate, estimate.IdentifierSuffix)

		subscribe, ok := cfg.RateLimit(PolicySubscribe)
		require.True(t, ok)
		assert.Equal(t, 5, subscribe.MaxRequests)
		assert.Equal(t, 10*time.Minute, subscribe.Window)

		_, ok = cfg.RateLimit("missing")
		assert.False(t, ok)
	})

	// Test runtime overrides
	t.Run("RuntimeOverrides", func(t *testing.T) {
		cfg := loadForTest(t, map[string]any{
			"server": map[string]any{
				"port": 9000,
				"host": "0.0.0.0",
			},
			"logging": map[string]any{
				"level": "debug",
			},
		})

		// Verify overrides were applied
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)

		// Verify non-overridden values remain default
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 9090, cfg.Metrics.Port)
	})

	// Test environment variable overrides
	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("RENOLAB_SERVER_PORT", "3000")
		t.Setenv("RENOLAB_LOGGING_LEVEL", "warn")
		t.Setenv("RENOLAB_METRICS_ENABLED", "false")
		t.Setenv("RENOLAB_RATE_LIMITS_ESTIMATE_MAX_REQUESTS", "10")
		t.Setenv("RENOLAB_ESTIMATE_ADHESIVE_KG_PER_M2", "5")

		cfg := loadForTest(t)

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, 10, cfg.RateLimits[PolicyEstimate].MaxRequests)
		assert.Equal(t, 5.0, cfg.Estimate.AdhesiveKgPerM2)
	})

	// Test config precedence: runtime > env > defaults
	t.Run("ConfigPrecedence", func(t *testing.T) {
		t.Setenv("RENOLAB_SERVER_PORT", "4000")

		cfg := loadForTest(t, map[string]any{
			"server": map[string]any{
				"port": 5000,
			},
		})

		assert.Equal(t, 5000, cfg.Server.Port)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
rate_limits:
  subscribe:
    max_requests: 2
    window: 30s
    message: "Hold on."
`), 0o600))

		v, err := NewViper(path)
		require.NoError(t, err)
		cfg, err := Load(context.Background(), v)
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
		subscribe, ok := cfg.RateLimit(PolicySubscribe)
		require.True(t, ok)
		assert.Equal(t, 2, subscribe.MaxRequests)
		assert.Equal(t, 30*time.Second, subscribe.Window)
		assert.Equal(t, "Hold on.", subscribe.Message)
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := NewViper(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("InvalidPolicy", func(t *testing.T) {
		v, err := NewViper("")
		require.NoError(t, err)

		_, err = Load(context.Background(), v, map[string]any{
			"rate_limits": map[string]any{
				"estimate": map[string]any{"max_requests": 0},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate_limits.estimate")
	})
}

func TestLoadFillsEstimateDefaults(t *testing.T) {
	cfg := loadForTest(t, map[string]any{
		"estimate": map[string]any{"min_effective_tile_ratio": 3},
	})
	assert.Equal(t, 0.95, cfg.Estimate.MinEffectiveTileRatio)
}

func TestGetConfig(t *testing.T) {
	cfg := loadForTest(t)

	retrieved := GetConfig()
	require.NotNil(t, retrieved)
	assert.Equal(t, cfg.Server.Port, retrieved.Server.Port)
	assert.Equal(t, cfg.Logging.Level, retrieved.Logging.Level)
}

func TestConfigReload(t *testing.T) {
	cfg1 := loadForTest(t)
	initialPort := cfg1.Server.Port

	cfg2 := loadForTest(t, map[string]any{
		"server": map[string]any{
			"port": initialPort + 1000,
		},
	})
	assert.Equal(t, initialPort+1000, cfg2.Server.Port)
	assert.Equal(t, cfg2.Server.Port, GetConfig().Server.Port)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := DefaultConfigPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Contains(t, path, "renolab")
}
