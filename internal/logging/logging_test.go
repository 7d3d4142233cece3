package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "bondflows", "warn", "json")
	logger.Info("dropped")
	logger.Warn("kept", "isin", "XS0000000001")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "bondflows", rec["service"])
	assert.Equal(t, "XS0000000001", rec["isin"])
	assert.NotSame(t, logger, slog.Default())
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "bondflows", "debug", "text").Debug("built", "periods", 4)
	assert.Contains(t, buf.String(), "msg=built")
	assert.Contains(t, buf.String(), "periods=4")
	assert.Contains(t, buf.String(), "service=bondflows")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	l := Discard()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	l := Discard()
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

// Init replaces the slog default, so it does not run in parallel.
func TestInit_InstallsDefault(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	logger := Init("fixbond", "info", "text")
	assert.Same(t, logger, slog.Default())
}
