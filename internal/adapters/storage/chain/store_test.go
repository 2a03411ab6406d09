package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/ludoteca-cli/internal/domain"
	portmocks "github.com/bnema/ludoteca-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "AB_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsNotFoundWhenNeitherBackendHasKey(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("", fmt.Errorf("pass: %w", domain.ErrKeyNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("", fmt.Errorf("file: %w", domain.ErrKeyNotFound)).Once()

	_, err := store.Get(context.Background(), "AB_TOKEN")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
	assert.NotContains(t, err.Error(), "primary backend")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "AB_TOKEN").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "AB_TOKEN")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutSkipsFallbackOnContextCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "AB_TOKEN", "tok").Return(context.Canceled).Once()

	err := store.Put(context.Background(), "AB_TOKEN", "tok")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "AB_TOKEN", "tok").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Put(mock.Anything, "AB_TOKEN", "tok").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "AB_TOKEN", "tok"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "AB_TOKEN").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, "AB_TOKEN").Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), "AB_TOKEN"))
}

func TestStoreDeleteToleratesUnavailablePrimary(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockLocalStorage(t)
	fallback := portmocks.NewMockLocalStorage(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "AB_TOKEN").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Delete(mock.Anything, "AB_TOKEN").Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), "AB_TOKEN"))
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockLocalStorage(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockLocalStorage(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
