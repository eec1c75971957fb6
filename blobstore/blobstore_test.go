package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlobStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	// 1. Put and read back.
	require.NoError(t, store.Put(ctx, "plans/plan.json", []byte("hello")))
	data, err := ReadAll(ctx, store, "plans/plan.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	// 2. Overwrite.
	require.NoError(t, store.Put(ctx, "plans/plan.json", []byte("world!")))
	data, err = ReadAll(ctx, store, "plans/plan.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("world!"), data)

	// 3. Open reports size and supports random access.
	blob, err := store.Open(ctx, "plans/plan.json")
	require.NoError(t, err)
	assert.Equal(t, int64(6), blob.Size())
	buf := make([]byte, 5)
	_, err = blob.ReadAt(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("orld!"), buf)
	require.NoError(t, blob.Close())

	// 4. Missing blobs.
	_, err = store.Open(ctx, "plans/missing.json")
	require.ErrorIs(t, err, ErrNotFound)

	// 5. List by prefix.
	require.NoError(t, store.Put(ctx, "results/run-1.json", []byte("{}")))
	names, err := store.List(ctx, "plans/")
	require.NoError(t, err)
	assert.Equal(t, []string{"plans/plan.json"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"plans/plan.json", "results/run-1.json"}, names)

	// 6. Delete is idempotent.
	require.NoError(t, store.Delete(ctx, "plans/plan.json"))
	require.NoError(t, store.Delete(ctx, "plans/plan.json"))
	_, err = store.Open(ctx, "plans/plan.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testBlobStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testBlobStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStoreListMissingRoot(t *testing.T) {
	store := NewLocalStore(t.TempDir() + "/does-not-exist")
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := ReadAll(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}
