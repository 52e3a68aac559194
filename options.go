package optigo

import "log/slog"

type options struct {
	mode             Mode
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures CachingOptimizer constructor behavior.
type Option func(*options)

// WithMode configures the state-transition policy.
//
// In Automatic mode (the default) the optimizer attaches lazily before a
// solve and detaches itself when the solver rejects an incremental
// operation. In Manual mode every transition is an explicit call and
// solver rejections propagate to the caller.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &optigo.BasicMetricsCollector{}
//	opt := optigo.New(cache.New(), optigo.WithMetricsCollector(metrics))
//	// ... use opt ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adds: %d, Fallbacks: %d\n", stats.AddCount, stats.FallbackCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for state transitions and
// solves. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := optigo.NewJSONLogger(slog.LevelInfo)
//	opt := optigo.New(cache.New(), optigo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		mode:             Automatic,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
