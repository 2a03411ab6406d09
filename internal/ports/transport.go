package ports

import (
	"context"
	"encoding/json"
)

// Transport performs one remote action and returns the single JSON value
// the backend answered with.
type Transport interface {
	Call(ctx context.Context, action string, params map[string]string) (json.RawMessage, error)
}

type PasswordHasher interface {
	Digest(plaintext string) string
}
