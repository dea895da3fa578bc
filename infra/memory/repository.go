package memory

import (
	"context"
	"sampleapi/app/item"
	"sampleapi/domain"
	"sync"
	"time"
)

// MemRepository keeps items in insertion order. Ids start at 1 and are never
// reused, deleted ones included. A single lock guards the slice and the
// counter.
type MemRepository struct {
	mu     sync.RWMutex
	items  []domain.Item
	nextID int
	now    func() time.Time
}

type Option func(*MemRepository)

// WithClock replaces the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *MemRepository) {
		r.now = now
	}
}

func NewMemRepository(opts ...Option) *MemRepository {
	r := &MemRepository{
		items:  make([]domain.Item, 0),
		nextID: 1,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *MemRepository) Close() error {
	return nil
}

func (r *MemRepository) Create(ctx context.Context, req *item.CreateItemRequest) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := domain.Item{
		ID:        r.nextID,
		CreatedAt: r.now(),
	}
	apply(&i, req)

	r.nextID++
	r.items = append(r.items, i)

	return clone(i), nil
}

func (r *MemRepository) GetItems(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Item, 0)
	if limit <= 0 || offset >= len(r.items) {
		return items, nil
	}
	if offset < 0 {
		offset = 0
	}

	if limit > len(r.items)-offset {
		limit = len(r.items) - offset
	}
	for _, i := range r.items[offset : offset+limit] {
		items = append(items, clone(i))
	}

	return items, nil
}

func (r *MemRepository) GetItem(ctx context.Context, id int) (domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}

	return clone(r.items[idx]), nil
}

// Update replaces the client-owned fields in place. ID, CreatedAt and the
// position in the listing are left untouched.
func (r *MemRepository) Update(ctx context.Context, id int, req *item.CreateItemRequest) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}

	apply(&r.items[idx], req)

	return clone(r.items[idx]), nil
}

func (r *MemRepository) DeleteItem(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrItemNotFound
	}

	r.items = append(r.items[:idx], r.items[idx+1:]...)

	return nil
}

func (r *MemRepository) indexOf(id int) int {
	for idx := range r.items {
		if r.items[idx].ID == id {
			return idx
		}
	}
	return -1
}

func apply(i *domain.Item, req *item.CreateItemRequest) {
	i.Name = ""
	if req.Name != nil {
		i.Name = *req.Name
	}
	i.Description = copyPtr(req.Description)
	i.Price = 0
	if req.Price != nil {
		i.Price = *req.Price
	}
	i.Tax = copyPtr(req.Tax)
}

func clone(i domain.Item) domain.Item {
	i.Description = copyPtr(i.Description)
	i.Tax = copyPtr(i.Tax)
	return i
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
