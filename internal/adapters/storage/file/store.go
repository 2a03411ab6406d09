// Package file keeps origin-scoped local storage as plain files, one per
// key, under <root>/<origin>.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
)

const (
	originDirMode = 0o700
	valueFileMode = 0o600
	tempPrefix    = ".pending-"
)

type Store struct {
	origin string
	dir    string

	mu sync.RWMutex
}

var _ ports.LocalStorage = (*Store)(nil)

func NewStore(root string, origin string) *Store {
	return &Store{
		origin: origin,
		dir:    filepath.Join(filepath.Clean(root), origin),
	}
}

// Dir is the directory holding this origin's keys.
func (s *Store) Dir() string {
	return s.dir
}

// Put replaces the value of key. Readers see either the old or the new
// value, never a partial write.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	path, err := s.keyPath(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, originDirMode); err != nil {
		return fmt.Errorf("create storage directory for %s: %w", s.origin, err)
	}
	if err := replaceFile(path, []byte(value)); err != nil {
		return fmt.Errorf("store %s/%s: %w", s.origin, key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.keyPath(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("%s/%s: %w", s.origin, key, domain.ErrKeyNotFound)
	case err != nil:
		return "", fmt.Errorf("read %s/%s: %w", s.origin, key, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.keyPath(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s/%s: %w", s.origin, key, err)
	}

	return nil
}

// keyPath maps a storage key to its file. Keys are flat names; anything
// that would leave the origin directory or collide with a pending write
// is refused.
func (s *Store) keyPath(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := strings.TrimSpace(key)
	if name == "" {
		return "", errors.New("storage key is empty")
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." || strings.HasPrefix(name, tempPrefix) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	return filepath.Join(s.dir, name), nil
}

func replaceFile(path string, data []byte) error {
	temp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := temp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := temp.Chmod(valueFileMode); err != nil {
		_ = temp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	committed = true
	return nil
}
