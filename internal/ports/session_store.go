package ports

import (
	"context"

	"github.com/bnema/ludoteca-cli/internal/domain"
)

type SessionStore interface {
	// Token returns "" when no session is stored.
	Token(ctx context.Context) (string, error)
	SetSession(ctx context.Context, session domain.Session) error
	SetProfile(ctx context.Context, profile domain.Profile) error
	Clear(ctx context.Context) error
	// Profile never fails: absent or unreadable data yields an empty profile.
	Profile(ctx context.Context) domain.Profile
}
