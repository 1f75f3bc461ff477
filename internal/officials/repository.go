package officials

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// Repository defines data access for the officials list.
type Repository interface {
	List(ctx context.Context) ([]Official, error)
	Get(ctx context.Context, id string) (Official, error)
	Create(ctx context.Context, o Official) (Official, error)
	Update(ctx context.Context, o Official) (Official, error)
	Delete(ctx context.Context, id string) error
	// Upsert matches on name+department, used by the sync job.
	Upsert(ctx context.Context, o Official) (created bool, err error)
}

// MemoryRepository keeps officials in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	officials map[string]Official
}

// NewMemoryRepository returns a repository seeded with the given officials.
func NewMemoryRepository(seed []Official) *MemoryRepository {
	m := &MemoryRepository{officials: make(map[string]Official, len(seed))}
	for _, o := range seed {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		m.officials[o.ID] = o
	}
	return m
}

// List returns all officials ordered by level then name.
func (m *MemoryRepository) List(ctx context.Context) ([]Official, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Official, 0, len(m.officials))
	for _, o := range m.officials {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get fetches one official.
func (m *MemoryRepository) Get(ctx context.Context, id string) (Official, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.officials[id]
	if !ok {
		return Official{}, shared.ErrNotFound
	}
	return o, nil
}

// Create stores a new official.
func (m *MemoryRepository) Create(ctx context.Context, o Official) (Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	m.officials[o.ID] = o
	return o, nil
}

// Update replaces an existing official.
func (m *MemoryRepository) Update(ctx context.Context, o Official) (Official, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.officials[o.ID]; !ok {
		return Official{}, shared.ErrNotFound
	}
	o.UpdatedAt = time.Now()
	m.officials[o.ID] = o
	return o, nil
}

// Delete removes an official.
func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.officials[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.officials, id)
	return nil
}

// Upsert inserts or refreshes an official keyed by name+department.
func (m *MemoryRepository) Upsert(ctx context.Context, o Official) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, existing := range m.officials {
		if existing.Name == o.Name && existing.Department == o.Department {
			o.ID = id
			o.CreatedAt = existing.CreatedAt
			o.UpdatedAt = now
			o.LastSyncAt = &now
			m.officials[id] = o
			return false, nil
		}
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	o.LastSyncAt = &now
	m.officials[o.ID] = o
	return true, nil
}
