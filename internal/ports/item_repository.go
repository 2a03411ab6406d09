package ports

import (
	"context"

	"github.com/bnema/ludoteca-cli/internal/domain"
)

type ItemRepository interface {
	List(ctx context.Context) ([]domain.Item, error)
	Save(ctx context.Context, item domain.Item) error
	Remove(ctx context.Context, title string) error
}
