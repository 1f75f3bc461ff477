package knowledge

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// Repository defines data access for knowledge items.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps knowledge items in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewMemoryRepository returns a repository seeded with the given items.
func NewMemoryRepository(seed []Item) *MemoryRepository {
	m := &MemoryRepository{items: make(map[string]Item, len(seed))}
	for _, item := range seed {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		m.items[item.ID] = item
	}
	return m
}

// List returns all items ordered by severity descending, then title.
func (m *MemoryRepository) List(ctx context.Context) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank(); ri != rj {
			return ri > rj
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// Get fetches one item.
func (m *MemoryRepository) Get(ctx context.Context, id string) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	return item, nil
}

// Create stores a new item.
func (m *MemoryRepository) Create(ctx context.Context, item Item) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	m.items[item.ID] = item
	return item, nil
}

// Update replaces an existing item.
func (m *MemoryRepository) Update(ctx context.Context, item Item) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return Item{}, shared.ErrNotFound
	}
	item.UpdatedAt = time.Now()
	m.items[item.ID] = item
	return item, nil
}

// Delete removes an item.
func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}
