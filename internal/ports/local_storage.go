package ports

import "context"

// LocalStorage is durable string storage scoped to one backend origin.
// Get returns domain.ErrKeyNotFound when the key is absent. Delete of a
// missing key is not an error.
type LocalStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
