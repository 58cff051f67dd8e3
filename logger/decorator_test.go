package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tooinfinity/lingua-go/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("injects locale from context", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(logger.NewLogHandlerDecorator(
			slog.NewJSONHandler(&buf, nil),
			logger.LocaleExtractor,
		))

		ctx := logger.WithLocale(context.Background(), "fr")
		log.InfoContext(ctx, "translations ready")

		entry := logLine(t, &buf)
		require.Equal(t, "translations ready", entry["msg"])
		require.Equal(t, "fr", entry["locale"])
	})

	t.Run("omits locale when context has none", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(logger.NewLogHandlerDecorator(
			slog.NewJSONHandler(&buf, nil),
			logger.LocaleExtractor,
		))

		log.InfoContext(context.Background(), "no locale")

		entry := logLine(t, &buf)
		require.NotContains(t, entry, "locale")
	})

	t.Run("filters nil extractors", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(logger.NewLogHandlerDecorator(
			slog.NewJSONHandler(&buf, nil),
			nil,
			logger.LocaleExtractor,
		))

		ctx := logger.WithLocale(context.Background(), "de")
		require.NotPanics(t, func() { log.InfoContext(ctx, "ok") })
		require.Equal(t, "de", logLine(t, &buf)["locale"])
	})

	t.Run("preserves extractors across WithAttrs and WithGroup", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(logger.NewLogHandlerDecorator(
			slog.NewJSONHandler(&buf, nil),
			logger.LocaleExtractor,
		)).With(slog.String("component", "store")).WithGroup("fetch")

		ctx := logger.WithLocale(context.Background(), "ar")
		log.InfoContext(ctx, "grouped")

		entry := logLine(t, &buf)
		require.Equal(t, "store", entry["component"])
		require.Contains(t, entry, "fetch")
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() {
		logger.NewNope().Info("discarded", slog.String("k", "v"))
	})
}
