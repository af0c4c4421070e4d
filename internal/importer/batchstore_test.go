package importer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventorypulse/inventory-service/internal/model"
)

func TestMemoryBatchStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBatchStore(15 * time.Minute)

	batch := &model.ImportBatch{FileHash: "abc", FileName: "catalog.csv"}
	id, err := store.Put(ctx, batch)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, batch.BatchID)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.FileHash)
	assert.Equal(t, "catalog.csv", got.FileName)
	assert.False(t, got.ExpiresAt.IsZero())
}

func TestMemoryBatchStoreUniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBatchStore(time.Minute)

	a, err := store.Put(ctx, &model.ImportBatch{FileHash: "same"})
	require.NoError(t, err)
	b, err := store.Put(ctx, &model.ImportBatch{FileHash: "same"})
	require.NoError(t, err)

	// Two previews of identical content must not collide.
	assert.NotEqual(t, a, b)
}

func TestMemoryBatchStoreGetUnknown(t *testing.T) {
	store := NewMemoryBatchStore(time.Minute)

	_, err := store.Get(context.Background(), "no-such-batch")
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestMemoryBatchStoreLazyExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBatchStore(15 * time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	id, err := store.Put(ctx, &model.ImportBatch{FileHash: "abc"})
	require.NoError(t, err)

	current = current.Add(14 * time.Minute)
	_, err = store.Get(ctx, id)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrBatchNotFound)

	// Still gone once the clock is back under the deadline: expiry evicted it.
	current = current.Add(-10 * time.Minute)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestMemoryBatchStoreDiscard(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBatchStore(time.Minute)

	id, err := store.Put(ctx, &model.ImportBatch{FileHash: "abc"})
	require.NoError(t, err)

	require.NoError(t, store.Discard(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrBatchNotFound)

	// Discarding again, or discarding something unknown, is not an error.
	assert.NoError(t, store.Discard(ctx, id))
	assert.NoError(t, store.Discard(ctx, "never-existed"))
}

func TestMemoryBatchStoreCopiesOnGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBatchStore(time.Minute)

	id, err := store.Put(ctx, &model.ImportBatch{FileHash: "abc"})
	require.NoError(t, err)

	first, err := store.Get(ctx, id)
	require.NoError(t, err)
	first.FileHash = "mutated"

	second, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "abc", second.FileHash)
}
