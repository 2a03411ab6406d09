package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string, origin string) *Store {
	t.Helper()

	store, err := Open(path, origin)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTripAndOverwrite(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, filepath.Join(t.TempDir(), "storage.db"), "https_example.com")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "AB_TOKEN", "first"))
	require.NoError(t, store.Put(ctx, "AB_TOKEN", "second"))

	value, err := store.Get(ctx, "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestStoreMissingKeyAndIdempotentDelete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, filepath.Join(t.TempDir(), "storage.db"), "https_example.com")
	ctx := context.Background()

	_, err := store.Get(ctx, "AB_PROFILE")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, "AB_PROFILE", `{"nome":"Mario"}`))
	require.NoError(t, store.Delete(ctx, "AB_PROFILE"))
	require.NoError(t, store.Delete(ctx, "AB_PROFILE"))

	_, err = store.Get(ctx, "AB_PROFILE")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStorePartitionsByOrigin(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.db")
	first := openTestStore(t, path, "https_one.example")
	second := openTestStore(t, path, "https_two.example")
	ctx := context.Background()

	require.NoError(t, first.Put(ctx, "AB_TOKEN", "one"))
	require.NoError(t, second.Put(ctx, "AB_TOKEN", "two"))

	value, err := first.Get(ctx, "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	require.NoError(t, second.Delete(ctx, "AB_TOKEN"))
	value, err = first.Get(ctx, "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "one", value)
}

func TestStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.db")
	store, err := Open(path, "https_example.com")
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "AB_TOKEN", "persisted"))
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path, "https_example.com")
	value, err := reopened.Get(context.Background(), "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "persisted", value)
}

func TestOpenRequiresOrigin(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "storage.db"), " ")
	require.Error(t, err)
}
