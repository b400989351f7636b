package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/articles-api/internal/config"
	"github.com/deppfellow/articles-api/internal/logger"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	svc, err := logger.NewLoggerService(cfg)
	require.NoError(t, err)
	require.Nil(t, svc.GetApplication())

	var buf bytes.Buffer
	log := logger.NewLoggerWithWriter(cfg, svc, &buf)
	log.Debug().Msg("dropped")
	log.Info().Str("k", "v").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "articles-api", entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.Equal(t, "v", entry["k"])
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	cases := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}
	for in, want := range cases {
		assert.Equal(t, want, logger.GetPgxTraceLogLevel(in), in.String())
	}
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := logger.WithTraceContext(base, nil)
	log.Info().Msg("x")

	assert.NotContains(t, buf.String(), "trace.id")
}
