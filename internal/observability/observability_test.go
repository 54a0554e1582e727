package observability

import (
	"testing"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "TRACE",
		"debug":   "DEBUG",
		"info":    "INFO",
		"warning": "WARN",
		" WARN ":  "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"bogus":   "INFO",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestServerLoggerConfig(t *testing.T) {
	t.Run("structured by default", func(t *testing.T) {
		cfg := serverLoggerConfig("renolab", "debug", "structured")
		assert.Equal(t, logging.ProfileStructured, cfg.Profile)
		assert.Equal(t, "DEBUG", cfg.DefaultLevel)
		require.Len(t, cfg.Sinks, 1)
		assert.Equal(t, "json", cfg.Sinks[0].Format)
		require.Len(t, cfg.Middleware, 1)
		assert.Equal(t, "correlation", cfg.Middleware[0].Name)
	})

	t.Run("simple uses console format", func(t *testing.T) {
		cfg := serverLoggerConfig("renolab", "info", "SIMPLE")
		assert.Equal(t, logging.ProfileSimple, cfg.Profile)
		require.Len(t, cfg.Sinks, 1)
		assert.Equal(t, "console", cfg.Sinks[0].Format)
	})
}

func TestInitLoggers(t *testing.T) {
	InitCLILogger("renolab-test", true)
	require.NotNil(t, CLILogger)
	CLILogger.Debug("cli logger ready", zap.String("test", t.Name()))

	InitServerLogger("renolab-test", "info", "structured")
	require.NotNil(t, ServerLogger)
	ServerLogger.Info("server logger ready", zap.Int("port", 8080))

	InitServerLogger("renolab-test", "warn", "simple")
	require.NotNil(t, ServerLogger)
}

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("127.0.0.1:9464")
	require.NoError(t, err)
	assert.Equal(t, 9464, port)

	_, err = resolvePort("no-port")
	assert.Error(t, err)
}
