package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/ludoteca-cli/internal/adapters/storage/file"
	"github.com/bnema/ludoteca-cli/internal/adapters/storage/pass"
	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
)

// Store tries primary first and falls back on failure. A missing key in
// the primary still consults the fallback, so values written while the
// primary was unavailable stay readable.
type Store struct {
	primary  ports.LocalStorage
	fallback ports.LocalStorage
}

var _ ports.LocalStorage = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary local storage is nil")
	errNilFallbackStore = errors.New("fallback local storage is nil")
)

func NewStore(primary ports.LocalStorage, fallback ports.LocalStorage) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.LocalStorage, fallback ports.LocalStorage) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string, origin string) (*Store, error) {
	return NewStoreChecked(pass.NewStore(origin), file.NewStore(fileRoot, origin))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrKeyNotFound) && errors.Is(fallbackErr, domain.ErrKeyNotFound) {
		return "", fallbackErr
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete clears both backends so a stale fallback copy cannot resurface.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err == nil && fallbackErr == nil {
		return nil
	}
	if err == nil {
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	}
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
