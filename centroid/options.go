package centroid

import (
	"io"
	"log/slog"
)

// WarningMessage is the diagnostic emitted when a derived squared centroid
// distance is negative, i.e. the dissimilarities are not Euclidean-embeddable.
const WarningMessage = "distances cannot be represented in a Euclidean coordinate system"

// EmbeddingWarning describes the non-Euclidean entries of one engine call.
// It is a recoverable diagnostic, not an error: affected entries are NaN and
// the remaining entries of the batch are still valid.
type EmbeddingWarning struct {
	// Negatives is the number of entries whose raw squared distance was
	// negative before the square root.
	Negatives int
}

func (w EmbeddingWarning) String() string { return WarningMessage }

// Option configures a centroid engine call.
type Option func(*options)

type options struct {
	squared bool
	logger  *slog.Logger
	onWarn  func(EmbeddingWarning)
}

func newOptions(optFns []Option) options {
	opts := options{
		logger: slog.Default(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Squared returns raw signed squared distances instead of taking the square
// root. Negative values are returned as-is and never warn.
func Squared() Option {
	return func(o *options) {
		o.squared = true
	}
}

// WithLogger sets the logger for the warning side channel.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = logger
	}
}

// WithWarningHandler installs a callback invoked at most once per call when
// non-Euclidean entries occur, in addition to the log record.
func WithWarningHandler(fn func(EmbeddingWarning)) Option {
	return func(o *options) {
		o.onWarn = fn
	}
}

// emitter tracks negative entries of one call and reports once.
type emitter struct {
	negatives int
}

func (e *emitter) hit() { e.negatives++ }

func (e *emitter) flush(opts *options) {
	if e.negatives == 0 {
		return
	}
	w := EmbeddingWarning{Negatives: e.negatives}
	opts.logger.Warn(WarningMessage, "negatives", w.Negatives)
	if opts.onWarn != nil {
		opts.onWarn(w)
	}
}
