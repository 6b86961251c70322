package distmat

type options struct {
	labels      []string
	parallelism int
	logger      *Logger
	metrics     MetricsCollector
	check       CapabilityCheck
}

func newOptions(optFns []Option) options {
	opts := options{
		parallelism: 1,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Option configures Build behavior.
type Option func(*options)

// WithLabels attaches item labels to the built matrix.
// The slice length must equal the row count.
func WithLabels(labels []string) Option {
	return func(o *options) {
		o.labels = labels
	}
}

// WithParallelism computes pairwise distances across n workers.
// The pairwise evaluations are independent; the assembled result keeps
// canonical triangular order regardless of completion order.
// Values <= 1 keep the default serial computation.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLogger configures structured logging for build operations.
// Pass nil to disable logging (default).
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetrics configures a metrics collector for build operations.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithCapabilityCheck installs the environment/availability check invoked by
// BuildFromTable before any pivot operation.
func WithCapabilityCheck(check CapabilityCheck) Option {
	return func(o *options) {
		o.check = check
	}
}
