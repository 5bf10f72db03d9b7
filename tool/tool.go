package tool

import (
	"context"
	"log/slog"

	"github.com/jonwraymond/marketdev-mcp/schema"
)

// Handler executes one invocation. Handlers must be safe for concurrent use
// and must report every failure through the returned Result.
type Handler func(ctx context.Context, args map[string]any) Result

// Example is a sample invocation shown in tool documentation.
type Example struct {
	Title string
	Args  map[string]any
}

// Definition declares an invocable tool.
type Definition struct {
	// Name is unique within a registry.
	Name string

	// Title is a short display name.
	Title string

	// Description tells the agent when and how to use the tool.
	Description string

	// Schema declares the accepted parameters.
	Schema *schema.Schema

	// Tags are discovery keywords.
	Tags []string

	// Summary and Notes feed tool documentation.
	Summary string
	Notes   string

	Examples []Example
}

type loggerKey struct{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// HasLogger reports whether ctx carries a logger set by WithLogger.
func HasLogger(ctx context.Context) bool {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	return ok && l != nil
}

// LoggerFrom returns the context's logger, or a logger that discards
// everything.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
