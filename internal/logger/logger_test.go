package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"lightbnb/internal/config"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	log.Warn().Str("op", "GetAllProperties").Msg("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "GetAllProperties", entry["op"])
	require.Equal(t, "kept", entry["message"])
}

func TestNewWithWriterFallbacks(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "nonsense"}, &buf)
	require.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Info().Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.NotContains(t, buf.String(), `"message"`)
}

func TestPgxTraceLevel(t *testing.T) {
	require.Equal(t, tracelog.LogLevelTrace, PgxTraceLevel(zerolog.TraceLevel))
	require.Equal(t, tracelog.LogLevelDebug, PgxTraceLevel(zerolog.DebugLevel))
	require.Equal(t, tracelog.LogLevelInfo, PgxTraceLevel(zerolog.InfoLevel))
	require.Equal(t, tracelog.LogLevelWarn, PgxTraceLevel(zerolog.WarnLevel))
	require.Equal(t, tracelog.LogLevelError, PgxTraceLevel(zerolog.ErrorLevel))
	require.Equal(t, tracelog.LogLevelNone, PgxTraceLevel(zerolog.Disabled))
}
