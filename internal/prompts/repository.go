package prompts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// Repository defines data access for prompt templates and their version
// history.
type Repository interface {
	List(ctx context.Context) ([]Prompt, error)
	Get(ctx context.Context, id string) (Prompt, error)
	Create(ctx context.Context, p Prompt) (Prompt, error)
	Update(ctx context.Context, p Prompt) (Prompt, error)
	Delete(ctx context.Context, id string) error

	Versions(ctx context.Context, promptID string) ([]Version, error)
	AddVersion(ctx context.Context, v Version) (Version, error)
}

// MemoryRepository keeps prompts in process memory, seeded at start. The
// admin tool's data layer is a mock store behind this interface.
type MemoryRepository struct {
	mu       sync.RWMutex
	prompts  map[string]Prompt
	versions map[string][]Version
}

// NewMemoryRepository returns a repository seeded with the given prompts.
func NewMemoryRepository(seed []Prompt) *MemoryRepository {
	m := &MemoryRepository{
		prompts:  make(map[string]Prompt, len(seed)),
		versions: make(map[string][]Version),
	}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		m.prompts[p.ID] = p
	}
	return m
}

// List returns all prompts ordered by last update, newest first.
func (m *MemoryRepository) List(ctx context.Context) ([]Prompt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Prompt, 0, len(m.prompts))
	for _, p := range m.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Get fetches one prompt.
func (m *MemoryRepository) Get(ctx context.Context, id string) (Prompt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prompts[id]
	if !ok {
		return Prompt{}, shared.ErrNotFound
	}
	return p, nil
}

// Create stores a new prompt.
func (m *MemoryRepository) Create(ctx context.Context, p Prompt) (Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.prompts[p.ID] = p
	return p, nil
}

// Update replaces an existing prompt.
func (m *MemoryRepository) Update(ctx context.Context, p Prompt) (Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prompts[p.ID]; !ok {
		return Prompt{}, shared.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	m.prompts[p.ID] = p
	return p, nil
}

// Delete removes a prompt together with its version history.
func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prompts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.prompts, id)
	delete(m.versions, id)
	return nil
}

// Versions returns a prompt's version records, newest first.
func (m *MemoryRepository) Versions(ctx context.Context, promptID string) ([]Version, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.prompts[promptID]; !ok {
		return nil, shared.ErrNotFound
	}
	records := m.versions[promptID]
	out := make([]Version, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

// AddVersion appends a version record.
func (m *MemoryRepository) AddVersion(ctx context.Context, v Version) (Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	m.versions[v.PromptID] = append(m.versions[v.PromptID], v)
	return v, nil
}
