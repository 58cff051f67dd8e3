// Package logger provides structured logging for lingua-go consumers, built
// on log/slog with context extraction and optional Sentry integration.
//
// The store logs fetch and invalidation events through whatever *slog.Logger
// it is given; this package supplies ready-made loggers for that slot.
//
// # Basic Usage
//
//	log := logger.New(logger.LocaleExtractor)
//
//	store, err := lingua.New(snapshot, fetcher, lingua.WithLogger(log))
//
// Requests handled under a context prepared with WithLocale automatically
// carry a "locale" attribute on every log entry:
//
//	ctx = logger.WithLocale(ctx, store.Locale())
//	log.InfoContext(ctx, "translations ready")
//	// {"level":"INFO","msg":"translations ready","locale":"en"}
//
// # Sentry Integration
//
// NewWithSentry routes warnings and errors to Sentry in addition to stdout,
// so translation fetch failures surface as Issues:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:      os.Getenv("SENTRY_DSN"),
//		MinLevel: slog.LevelWarn,
//	}, logger.LocaleExtractor)
//
// If the DSN is empty or Sentry initialization fails, the logger degrades to
// stdout-only logging, so the same code path works in development.
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context per log call:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// LocaleExtractor is provided here; applications typically add their own for
// request IDs or user IDs. NewLogHandlerDecorator wraps any slog.Handler
// with extractor behavior, so custom handlers keep working.
package logger
