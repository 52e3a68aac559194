package optigo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with optigo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithState adds a state field to the logger.
func (l *Logger) WithState(state State) *Logger {
	return &Logger{
		Logger: l.Logger.With("state", state.String()),
	}
}

// WithMode adds a mode field to the logger.
func (l *Logger) WithMode(mode Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode.String()),
	}
}

// LogTransition logs a state machine transition.
func (l *Logger) LogTransition(op string, from, to State) {
	l.Debug("state transition",
		"op", op,
		"from", from.String(),
		"to", to.String(),
	)
}

// LogFallback logs an automatic detach triggered by a solver rejection.
func (l *Logger) LogFallback(op string, err error) {
	l.Info("solver rejected operation, detaching",
		"op", op,
		"error", err,
	)
}

// LogAttach logs a completed bulk-copy attachment.
func (l *Logger) LogAttach(variables, constraints int, err error) {
	if err != nil {
		l.Error("attach failed",
			"error", err,
		)
	} else {
		l.Debug("attach completed",
			"variables", variables,
			"constraints", constraints,
		)
	}
}

// LogOptimize logs a solve delegation.
func (l *Logger) LogOptimize(err error) {
	if err != nil {
		l.Error("optimize failed",
			"error", err,
		)
	} else {
		l.Debug("optimize completed")
	}
}
