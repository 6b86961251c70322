package distmat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/distmat/centroid"
	"github.com/hupe1980/distmat/condensed"
	"github.com/hupe1980/distmat/pairwise"
)

var squareRows = [][]float64{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	m, err := Build(ctx, squareRows, Metric(pairwise.Euclidean))
	require.NoError(t, err)

	require.Equal(t, 4, m.Size())
	d12, err := m.At(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d12, 1e-12)
	d13, err := m.At(1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135623730951, d13, 1e-12)
}

func TestBuildWithLabels(t *testing.T) {
	ctx := context.Background()

	m, err := Build(ctx, squareRows, Metric(pairwise.Euclidean),
		WithLabels([]string{"p", "q", "r", "s"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q", "r", "s"}, m.Labels())

	d, err := condensed.Get(m, condensed.ByLabels("p"), condensed.ByLabels("r"))
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135623730951, d[0], 1e-12)
}

func TestBuildParallelMatchesSerial(t *testing.T) {
	ctx := context.Background()
	rows := make([][]float64, 30)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(i * i % 7)}
	}

	serial, err := Build(ctx, rows, Metric(pairwise.Euclidean))
	require.NoError(t, err)

	parallel, err := Build(ctx, rows, Metric(pairwise.Euclidean), WithParallelism(4))
	require.NoError(t, err)

	assert.Equal(t, serial.Values(), parallel.Values())
}

func TestBuildDistanceFuncErrorPropagates(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("bad row")

	fn := func(a, b []float64) (float64, error) {
		if a[0] == 1 && b[0] == 1 {
			return 0, sentinel
		}
		return pairwise.Euclidean(a, b), nil
	}

	_, err := Build(ctx, squareRows, fn)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var de *ErrDistance
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Row1)
	assert.Equal(t, 3, de.Row2)
}

func TestBuildValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("NilDistanceFunc", func(t *testing.T) {
		_, err := Build(ctx, squareRows, nil)
		assert.ErrorIs(t, err, ErrNilDistanceFunc)
	})

	t.Run("NoRows", func(t *testing.T) {
		_, err := Build(ctx, nil, Metric(pairwise.Euclidean))
		assert.ErrorIs(t, err, ErrNoRows)
	})

	t.Run("RaggedRows", func(t *testing.T) {
		_, err := Build(ctx, [][]float64{{1, 2}, {1}}, Metric(pairwise.Euclidean))

		var rlm *ErrRowLengthMismatch
		require.ErrorAs(t, err, &rlm)
		assert.Equal(t, 2, rlm.Row)
	})

	t.Run("LabelCountMismatch", func(t *testing.T) {
		_, err := Build(ctx, squareRows, Metric(pairwise.Euclidean),
			WithLabels([]string{"only", "three", "labels"}))

		var shape *condensed.ErrShapeMismatch
		require.ErrorAs(t, err, &shape)
	})
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, squareRows, Metric(pairwise.Euclidean))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}

	_, err := Build(ctx, squareRows, Metric(pairwise.Euclidean), WithMetrics(mc))
	require.NoError(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(6), stats.BuildPairs)
	assert.Equal(t, int64(0), stats.BuildErrors)
}

func TestBuildFromTable(t *testing.T) {
	ctx := context.Background()

	type record struct {
		item, feature string
		value         float64
	}
	table := []record{
		{"a", "x", 0}, {"a", "y", 0},
		{"b", "x", 3}, {"b", "y", 4},
	}

	pivot := func(in any, rowKey, colKey, valueKey string, fill float64) ([][]float64, []string, error) {
		records := in.([]record)
		assert.Equal(t, "item", rowKey)
		assert.Equal(t, "feature", colKey)
		assert.Equal(t, "value", valueKey)

		rows := map[string][]float64{}
		var labels []string
		for _, r := range records {
			if _, ok := rows[r.item]; !ok {
				labels = append(labels, r.item)
			}
			rows[r.item] = append(rows[r.item], r.value)
		}
		out := make([][]float64, 0, len(labels))
		for _, l := range labels {
			out = append(out, rows[l])
		}
		return out, labels, nil
	}

	var checked []string
	check := func(capabilities ...string) error {
		checked = append(checked, capabilities...)
		return nil
	}

	m, err := BuildFromTable(ctx, pivot, table, "item", "feature", "value", 0,
		Metric(pairwise.Euclidean), WithCapabilityCheck(check))
	require.NoError(t, err)

	assert.Equal(t, []string{CapabilityPivot}, checked)
	assert.Equal(t, []string{"a", "b"}, m.Labels())
	d, err := m.At(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)
}

func TestBuildFromTableCapabilityCheckFails(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("pivot support unavailable")

	pivot := func(any, string, string, string, float64) ([][]float64, []string, error) {
		t.Fatal("pivot must not run when the capability check fails")
		return nil, nil, nil
	}

	_, err := BuildFromTable(ctx, pivot, nil, "r", "c", "v", 0,
		Metric(pairwise.Euclidean),
		WithCapabilityCheck(func(...string) error { return sentinel }))
	assert.ErrorIs(t, err, sentinel)
}

func TestBuildFromTablePivotErrorPropagates(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("malformed table")

	pivot := func(any, string, string, string, float64) ([][]float64, []string, error) {
		return nil, nil, sentinel
	}

	_, err := BuildFromTable(ctx, pivot, nil, "r", "c", "v", 0, Metric(pairwise.Euclidean))
	assert.ErrorIs(t, err, sentinel)
}

func TestBuildFromTableNilPivot(t *testing.T) {
	_, err := BuildFromTable(context.Background(), nil, nil, "r", "c", "v", 0,
		Metric(pairwise.Euclidean))
	assert.ErrorIs(t, err, ErrNilPivotFunc)
}

func TestWarningHandlerAdaptsMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}

	handler := WarningHandler(mc)
	handler(centroid.EmbeddingWarning{Negatives: 3})

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.EmbeddingWarnings)
	assert.Equal(t, int64(3), stats.NegativeEntries)
}
