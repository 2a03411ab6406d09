package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/gofrs/flock"
	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ItemsPathKey    = "items.path"
	itemsFileMode   = 0o600
	itemsDirMode    = 0o700
	itemsConfigDir  = ".ludoteca"
	itemsConfigFile = "items.toml"
	tempFilePattern = ".items-*.toml.tmp"
	lockFileSuffix  = ".lock"
	lockRetryDelay  = 25 * time.Millisecond
)

// ItemRepository keeps the tracked item catalog in a TOML file.
type ItemRepository struct {
	itemsPath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ItemRepository = (*ItemRepository)(nil)

func NewItemRepository(cfg *viper.Viper) (*ItemRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(ItemsPathKey, filepath.Join(homeDir, itemsConfigDir, itemsConfigFile))

	itemsPath := cfg.GetString(ItemsPathKey)
	if itemsPath == "" {
		return nil, errors.New("items path is empty")
	}
	itemsPath, err = homedir.Expand(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("expand items path: %w", err)
	}
	itemsPath, err = normalizeItemsPath(itemsPath)
	if err != nil {
		return nil, err
	}

	return &ItemRepository{itemsPath: itemsPath, mu: lockForPath(itemsPath)}, nil
}

func (r *ItemRepository) Path() string {
	return r.itemsPath
}

// Save adds the item or replaces the entry with the same normalized title.
func (r *ItemRepository) Save(ctx context.Context, item domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidItemTitle)
	}
	if strings.Contains(item.Title, domain.TitleDelimiter) {
		return fmt.Errorf("%w: %q contains %q", domain.ErrInvalidItemTitle, item.Title, domain.TitleDelimiter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.lockFile(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(item)
	updated := false
	for i := range file.Items {
		if domain.NormalizeItemKey(file.Items[i].Title) == item.Key() {
			file.Items[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Items = append(file.Items, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *ItemRepository) Remove(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.lockFile(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	key := domain.NormalizeItemKey(title)
	kept := file.Items[:0]
	removed := false
	for _, entry := range file.Items {
		if domain.NormalizeItemKey(entry.Title) == key {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return fmt.Errorf("%w: %q", domain.ErrItemNotFound, strings.TrimSpace(title))
	}
	file.Items = kept

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(file.Items))
	for _, entry := range file.Items {
		items = append(items, fromSchema(entry))
	}

	return items, nil
}

func (r *ItemRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.itemsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read items file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode items file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

// lockFile takes the cross-process lock guarding read-modify-write of
// the items file.
func (r *ItemRepository) lockFile(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(r.itemsPath), itemsDirMode); err != nil {
		return nil, fmt.Errorf("create items directory: %w", err)
	}

	fileLock := flock.New(r.itemsPath + lockFileSuffix)
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock items file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("lock items file: %s is held by another process", fileLock.Path())
	}

	return func() { _ = fileLock.Unlock() }, nil
}

func normalizeItemsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve items path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *ItemRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.itemsPath), itemsDirMode); err != nil {
		return fmt.Errorf("create items directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode items file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.itemsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp items file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp items file: %w", err)
	}

	if err := tempFile.Chmod(itemsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp items file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp items file: %w", err)
	}

	if err := os.Rename(tempName, r.itemsPath); err != nil {
		return fmt.Errorf("replace items file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(item domain.Item) itemSchema {
	return itemSchema{
		Title: strings.TrimSpace(item.Title),
		Note:  item.Note,
	}
}

func fromSchema(entry itemSchema) domain.Item {
	return domain.Item{
		Title: entry.Title,
		Note:  entry.Note,
	}
}
