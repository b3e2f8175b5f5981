package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store implementation must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[{"id":"a"}]`)))
	got, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`[]`)))
	got, err = store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, store.Set(ctx, KeyOrderType, []byte("delivery")))
	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	// other keys untouched
	got, err = store.Get(ctx, KeyOrderType)
	require.NoError(t, err)
	assert.Equal(t, "delivery", string(got))

	// deleting a missing key is fine
	require.NoError(t, store.Delete(ctx, KeyCurrentOrder))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	exerciseStore(t, store)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("pickup")
	require.NoError(t, store.Set(ctx, KeyOrderType, value))
	value[0] = 'X'

	got, err := store.Get(ctx, KeyOrderType)
	require.NoError(t, err)
	got[1] = 'Y'

	again, err := store.Get(ctx, KeyOrderType)
	require.NoError(t, err)
	assert.Equal(t, "pickup", string(again))
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	exerciseStore(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyOrderType, []byte("delivery")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, KeyOrderType)
	require.NoError(t, err)
	assert.Equal(t, "delivery", string(got))
}
