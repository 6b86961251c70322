package snapshot

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/hupe1980/distmat/blobstore"
	"github.com/hupe1980/distmat/condensed"
)

// Manager saves and loads named matrix snapshots through a blobstore.Store.
type Manager struct {
	store       blobstore.Store
	compression Compression
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCompression sets the payload compression for saved snapshots.
// Defaults to CompressionLZ4.
func WithCompression(c Compression) ManagerOption {
	return func(m *Manager) {
		m.compression = c
	}
}

// WithRateLimit throttles snapshot IO to bytesPerSec.
// Zero or negative disables throttling (default).
func WithRateLimit(bytesPerSec int) ManagerOption {
	return func(m *Manager) {
		if bytesPerSec > 0 {
			m.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
		}
	}
}

// WithLogger sets the logger for save/load diagnostics.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store blobstore.Store, optFns ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		compression: CompressionLZ4,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

// Save serializes the matrix and writes it under the given name.
func (m *Manager) Save(ctx context.Context, name string, matrix *condensed.Matrix) error {
	var buf bytes.Buffer
	if err := Write(&buf, matrix, m.compression); err != nil {
		m.logger.ErrorContext(ctx, "snapshot save failed", "name", name, "error", err)
		return err
	}

	if err := m.acquireIO(ctx, buf.Len()); err != nil {
		return err
	}
	if err := m.store.Put(ctx, name, &buf); err != nil {
		m.logger.ErrorContext(ctx, "snapshot save failed", "name", name, "error", err)
		return err
	}

	m.logger.InfoContext(ctx, "snapshot saved",
		"name", name,
		"size", matrix.Size(),
		"compression", m.compression.String(),
	)
	return nil
}

// Load reads and deserializes the named snapshot.
func (m *Manager) Load(ctx context.Context, name string) (*condensed.Matrix, error) {
	blob, err := m.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	if err := m.acquireIO(ctx, int(blob.Size())); err != nil {
		return nil, err
	}

	matrix, err := Read(blob)
	if err != nil {
		m.logger.ErrorContext(ctx, "snapshot load failed", "name", name, "error", err)
		return nil, err
	}

	m.logger.DebugContext(ctx, "snapshot loaded", "name", name, "size", matrix.Size())
	return matrix, nil
}

// Delete removes the named snapshot.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.store.Delete(ctx, name)
}

// List returns the snapshot names matching the prefix.
func (m *Manager) List(ctx context.Context, prefix string) ([]string, error) {
	return m.store.List(ctx, prefix)
}

// acquireIO blocks until the limiter grants n bytes of IO budget.
// Requests beyond the burst are split, mirroring chunked transfers.
func (m *Manager) acquireIO(ctx context.Context, n int) error {
	if m.limiter == nil {
		return nil
	}
	burst := m.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := m.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
