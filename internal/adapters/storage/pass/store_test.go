package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https_script.google.com"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		origin: testOrigin,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", "ludoteca/https_script.google.com/AB_TOKEN"}, args)
			assert.Equal(t, "tok-123\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "AB_TOKEN", "tok-123")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		origin: testOrigin,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "ludoteca/https_script.google.com/AB_TOKEN"}, args)
			assert.Empty(t, input)
			return "tok-123\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", value)
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		origin: testOrigin,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: ludoteca/https_script.google.com/AB_TOKEN is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "AB_TOKEN")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		origin: testOrigin,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "ludoteca/https_script.google.com/AB_PROFILE"}, args)
			return "", "Error: ludoteca/https_script.google.com/AB_PROFILE is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), "AB_PROFILE"))
}

func TestStoreIncludesStderrInErrors(t *testing.T) {
	t.Parallel()

	store := &Store{
		origin: testOrigin,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), "AB_TOKEN")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "gpg: decryption failed")
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
}
