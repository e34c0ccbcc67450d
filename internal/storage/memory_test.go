package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "meetings", "m1", []byte(`{"id":"m1"}`)))

		data, err := store.Get(ctx, "meetings", "m1")
		assert.NoError(t, err)
		assert.JSONEq(t, `{"id":"m1"}`, string(data))
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := store.Get(ctx, "meetings", "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("writers on different ids merge", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "slots", "a", []byte(`1`)))
		require.NoError(t, store.Put(ctx, "slots", "b", []byte(`2`)))

		all, err := store.List(ctx, "slots")
		assert.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "slots", "a"))
		assert.NoError(t, store.Delete(ctx, "slots", "a"))

		all, err := store.List(ctx, "slots")
		assert.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("returned bytes are copies", func(t *testing.T) {
		data, err := store.Get(ctx, "meetings", "m1")
		require.NoError(t, err)
		data[0] = 'X'

		again, err := store.Get(ctx, "meetings", "m1")
		require.NoError(t, err)
		assert.Equal(t, byte('{'), again[0])
	})
}
