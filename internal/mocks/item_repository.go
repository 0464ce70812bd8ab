package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/service/review"
	"github.com/dpshade/remindful/internal/store"
)

// MemoryItemRepository implements review.ItemRepository with an in-memory
// map. Error fields, when set, override the corresponding operation.
type MemoryItemRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.ReviewItem

	PutErr    error
	GetErr    error
	DeleteErr error
}

// NewMemoryItemRepository creates an empty in-memory item repository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items: make(map[uuid.UUID]*domain.ReviewItem),
	}
}

// Seed stores an item directly, bypassing error injection.
func (r *MemoryItemRepository) Seed(item *domain.ReviewItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item.Clone()
}

// Len reports the number of stored items.
func (r *MemoryItemRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *MemoryItemRepository) Put(ctx context.Context, item *domain.ReviewItem) error {
	if r.PutErr != nil {
		return r.PutErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *MemoryItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return item.Clone(), nil
}

func (r *MemoryItemRepository) GetAll(ctx context.Context) ([]*domain.ReviewItem, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.ReviewItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *MemoryItemRepository) GetDue(ctx context.Context, now time.Time) ([]*domain.ReviewItem, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.ReviewItem, 0)
	for _, item := range r.items {
		if item.IsDue(now) {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextReviewDate.Before(out[j].NextReviewDate)
	})
	return out, nil
}

func (r *MemoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *MemoryItemRepository) WithTx(tx *sql.Tx) review.ItemRepository {
	return r
}

// DB returns nil: services detect this and run transactional functions
// directly against the repository.
func (r *MemoryItemRepository) DB() *sql.DB {
	return nil
}
