package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleField verifies that every entry carries the role label.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "posts-api", "info")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "posts-api", entry["role"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role", "debug")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "explicit warn", level: "warn", want: zerolog.WarnLevel},
		{name: "explicit info", level: "info", want: zerolog.InfoLevel},
		{name: "empty falls back to debug", level: "", want: zerolog.DebugLevel},
		{name: "garbage falls back to debug", level: "loud", want: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, "lvl", tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "inherited-role", "debug")

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Info().Msg("child message")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "inherited-role", entry["role"])
}

func TestFromContext_NeverNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "req-value", entry["req-key"])
}

func TestFromContextOr(t *testing.T) {
	var fallbackBuf, ctxBuf bytes.Buffer
	fallback := newLogger(&fallbackBuf, "fallback", "debug")
	attached := newLogger(&ctxBuf, "attached", "debug")

	FromContextOr(context.Background(), fallback).Info().Msg("to fallback")
	assert.Equal(t, "fallback", decodeEntry(t, &fallbackBuf)["role"])

	ctx := attached.WithContext(context.Background())
	FromContextOr(ctx, fallback).Info().Msg("to attached")
	assert.Equal(t, "attached", decodeEntry(t, &ctxBuf)["role"])
}
