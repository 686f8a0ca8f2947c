// Package logger builds the slog logger used by the CLI
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type ctxKey string

const runIDKey ctxKey = "run_id"

// Log attribute keys
const (
	AttrKeyService = "service"
	AttrKeyVersion = "version"
	AttrKeyRunID   = "run_id"
)

// Config represents logger configuration
type Config struct {
	Level       string `yaml:"level" env:"LEVEL"`   // "debug", "info", "warn", "error"
	Format      string `yaml:"format" env:"FORMAT"` // "json", "text"
	ServiceName string `yaml:"-"`
	Version     string `yaml:"-"`
}

// DefaultConfig returns defaults used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "osrs-items",
		Version:     "dev",
	}
}

// LogLevel converts the configured level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == "json"
}

// New creates a logger writing to w
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		AttrKeyService, cfg.ServiceName,
		AttrKeyVersion, cfg.Version,
	)
}

// NewRunID returns a fresh identifier for one CLI invocation
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a context carrying runID
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run ID from the context, if present
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// FromContext returns the default logger with the run ID attached when present
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := RunIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyRunID, id)
	}
	return slog.Default()
}
