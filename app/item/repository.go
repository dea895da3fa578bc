package item

import (
	"context"
	"sampleapi/domain"
)

// Repository is the item store. Lookups by id return domain.ErrItemNotFound
// when nothing matches.
type Repository interface {
	Close() error
	GetItems(ctx context.Context, limit, offset int) ([]domain.Item, error)
	GetItem(ctx context.Context, id int) (domain.Item, error)
	DeleteItem(ctx context.Context, id int) error
	Create(ctx context.Context, req *CreateItemRequest) (domain.Item, error)
	Update(ctx context.Context, id int, req *CreateItemRequest) (domain.Item, error)
}
