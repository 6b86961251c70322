package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/distmat/blobstore"
	"github.com/hupe1980/distmat/condensed"
)

func TestManagerSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := NewManager(store, WithCompression(CompressionZSTD))

	m, err := condensed.New(4, []float64{1, 2, 3, 4, 5, 6},
		condensed.WithLabels([]string{"a", "b", "c", "d"}))
	require.NoError(t, err)

	require.NoError(t, mgr.Save(ctx, "run1/matrix.dmt", m))

	got, err := mgr.Load(ctx, "run1/matrix.dmt")
	require.NoError(t, err)
	assert.Equal(t, m.Values(), got.Values())
	assert.Equal(t, m.Labels(), got.Labels())
}

func TestManagerLoadMissing(t *testing.T) {
	mgr := NewManager(blobstore.NewMemoryStore())

	_, err := mgr.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestManagerListAndDelete(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(blobstore.NewMemoryStore())

	m, err := condensed.New(3, []float64{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, mgr.Save(ctx, "runs/a.dmt", m))
	require.NoError(t, mgr.Save(ctx, "runs/b.dmt", m))
	require.NoError(t, mgr.Save(ctx, "other/c.dmt", m))

	names, err := mgr.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/a.dmt", "runs/b.dmt"}, names)

	require.NoError(t, mgr.Delete(ctx, "runs/a.dmt"))

	names, err = mgr.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/b.dmt"}, names)
}

func TestManagerRateLimit(t *testing.T) {
	ctx := context.Background()
	// High enough that the test never actually waits, low enough that
	// snapshots exceed the burst and exercise the chunked path.
	mgr := NewManager(blobstore.NewMemoryStore(),
		WithCompression(CompressionNone),
		WithRateLimit(1<<20),
	)

	m, err := condensed.New(5, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	require.NoError(t, err)

	require.NoError(t, mgr.Save(ctx, "limited.dmt", m))

	got, err := mgr.Load(ctx, "limited.dmt")
	require.NoError(t, err)
	assert.Equal(t, m.Values(), got.Values())
}

func TestManagerRateLimitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := NewManager(blobstore.NewMemoryStore(), WithRateLimit(1))

	m, err := condensed.New(3, []float64{1, 2, 3})
	require.NoError(t, err)

	assert.Error(t, mgr.Save(ctx, "x.dmt", m))
}
