package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestJSONLoggerWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "nyaya-api", Writer: &buf})
	t.Cleanup(func() { Init(Options{Level: "info", Format: "console"}) })

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))

	C(ctx).Info().Msg("hello")
	Named("search").Debug().Msg("scored")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "nyaya-api", first["service"])
	assert.Equal(t, "hello", first["message"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "search", second["component"])
	assert.Equal(t, "debug", second["level"])
}

func TestC_WithoutRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Same(t, Get(), C(context.Background()))
	assert.Same(t, Get(), Named(""))
	assert.Equal(t, context.Background(), WithRequestID(context.Background(), ""))
}
