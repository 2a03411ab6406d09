package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*ItemRepository, string) {
	t.Helper()

	itemsPath := filepath.Join(t.TempDir(), "nested", "items.toml")
	config := viper.New()
	config.Set(ItemsPathKey, itemsPath)

	repo, err := NewItemRepository(config)
	require.NoError(t, err)
	return repo, itemsPath
}

func TestItemRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, itemsPath := newTestRepository(t)

	require.NoError(t, repo.Save(context.Background(), domain.Item{Title: " Catan ", Note: "base game"}))
	require.NoError(t, repo.Save(context.Background(), domain.Item{Title: "Azul"}))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{Title: "Catan", Note: "base game"}, {Title: "Azul"}}, items)

	info, err := os.Stat(itemsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(itemsFileMode), info.Mode().Perm())

	data, err := os.ReadFile(itemsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[[items]]")
}

func TestItemRepositoryListWithoutFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemRepositorySaveUpsertsByNormalizedTitle(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(context.Background(), domain.Item{Title: "Catan"}))
	require.NoError(t, repo.Save(context.Background(), domain.Item{Title: "CATAN", Note: "5-6 expansion"}))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{Title: "CATAN", Note: "5-6 expansion"}}, items)
}

func TestItemRepositorySaveRejectsInvalidTitles(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	for _, title := range []string{"", "   ", "Catan|Azul"} {
		err := repo.Save(context.Background(), domain.Item{Title: title})
		require.ErrorIs(t, err, domain.ErrInvalidItemTitle, title)
	}
}

func TestItemRepositoryRemove(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(context.Background(), domain.Item{Title: "Catan"}))
	require.NoError(t, repo.Save(context.Background(), domain.Item{Title: "Azul"}))

	require.NoError(t, repo.Remove(context.Background(), " catan"))
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{Title: "Azul"}}, items)

	err = repo.Remove(context.Background(), "Catan")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemRepositoryRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	repo, itemsPath := newTestRepository(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(itemsPath), 0o700))
	require.NoError(t, os.WriteFile(itemsPath, []byte("version = 2\n"), 0o600))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported items schema version 2")
}

func TestItemRepositoryHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Save(ctx, domain.Item{Title: "Catan"}), context.Canceled)
	_, err := repo.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestItemRepositoryConcurrentSaves(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Save(context.Background(), domain.Item{Title: "Game " + strconv.Itoa(i)}))
		}(i)
	}
	wg.Wait()

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

func TestItemRepositoryExpandsHomePath(t *testing.T) {
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)

	config := viper.New()
	config.Set(ItemsPathKey, "~/catalog/items.toml")

	repo, err := NewItemRepository(config)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "catalog", "items.toml"), repo.Path())
}
