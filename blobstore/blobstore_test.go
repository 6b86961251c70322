package blobstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) Store {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"Memory": func(t *testing.T) Store { return NewMemoryStore() },
		"Local":  newLocal,
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("PutOpenRoundTrip", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Put(ctx, "runs/a.dmt", strings.NewReader("hello blobs")))

				blob, err := store.Open(ctx, "runs/a.dmt")
				require.NoError(t, err)
				defer blob.Close()

				assert.Equal(t, int64(11), blob.Size())
				data, err := io.ReadAll(blob)
				require.NoError(t, err)
				assert.Equal(t, "hello blobs", string(data))
			})

			t.Run("OpenMissing", func(t *testing.T) {
				store := newStore(t)
				_, err := store.Open(ctx, "missing")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("PutOverwrites", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Put(ctx, "x", strings.NewReader("one")))
				require.NoError(t, store.Put(ctx, "x", strings.NewReader("two")))

				blob, err := store.Open(ctx, "x")
				require.NoError(t, err)
				defer blob.Close()

				data, err := io.ReadAll(blob)
				require.NoError(t, err)
				assert.Equal(t, "two", string(data))
			})

			t.Run("DeleteIdempotent", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Put(ctx, "x", strings.NewReader("one")))
				require.NoError(t, store.Delete(ctx, "x"))
				require.NoError(t, store.Delete(ctx, "x"))

				_, err := store.Open(ctx, "x")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("ListPrefixSorted", func(t *testing.T) {
				store := newStore(t)
				for _, name := range []string{"runs/b", "runs/a", "other/c"} {
					require.NoError(t, store.Put(ctx, name, strings.NewReader(name)))
				}

				names, err := store.List(ctx, "runs/")
				require.NoError(t, err)
				assert.Equal(t, []string{"runs/a", "runs/b"}, names)

				all, err := store.List(ctx, "")
				require.NoError(t, err)
				assert.Equal(t, []string{"other/c", "runs/a", "runs/b"}, all)
			})
		})
	}
}
