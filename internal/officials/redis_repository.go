package officials

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rag-admin/rag-admin/internal/shared"
)

const rosterKey = "rag_admin:officials:roster"

// RedisRepository stores officials in a Redis hash keyed by ID so the HTTP
// server and the sync worker see the same roster.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository returns a Redis-backed repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Seed loads the roster only when the store is empty.
func (r *RedisRepository) Seed(ctx context.Context, roster []Official) error {
	count, err := r.client.HLen(ctx, rosterKey).Result()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	for _, o := range roster {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if o.Source == "" {
			o.Source = "manual"
		}
		o.CreatedAt = now
		o.UpdatedAt = now
		if err := r.set(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

// List returns all officials ordered by level then name.
func (r *RedisRepository) List(ctx context.Context) ([]Official, error) {
	raw, err := r.client.HGetAll(ctx, rosterKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Official, 0, len(raw))
	for _, blob := range raw {
		var o Official
		if err := json.Unmarshal([]byte(blob), &o); err != nil {
			// Skip the corrupt entry rather than failing the whole listing.
			continue
		}
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
func (r *RedisRepository) Get(ctx context.Context, id string) (Official, error) {
	raw, err := r.client.HGet(ctx, rosterKey, id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Official{}, shared.ErrNotFound
		}
		return Official{}, err
	}
	var o Official
	if err := json.Unmarshal(raw, &o); err != nil {
		return Official{}, shared.ErrNotFound
	}
	return o, nil
}

// Create stores a new official.
func (r *RedisRepository) Create(ctx context.Context, o Official) (Official, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if err := r.set(ctx, o); err != nil {
		return Official{}, err
	}
	return o, nil
}

// Update replaces an existing official.
func (r *RedisRepository) Update(ctx context.Context, o Official) (Official, error) {
	if _, err := r.Get(ctx, o.ID); err != nil {
		return Official{}, err
	}
	o.UpdatedAt = time.Now()
	if err := r.set(ctx, o); err != nil {
		return Official{}, err
	}
	return o, nil
}

// Delete removes an official.
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.HDel(ctx, rosterKey, id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Upsert inserts or refreshes an official keyed by name+department.
func (r *RedisRepository) Upsert(ctx context.Context, o Official) (bool, error) {
	all, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	now := time.Now()
	for _, existing := range all {
		if existing.Name == o.Name && existing.Department == o.Department {
			o.ID = existing.ID
			o.CreatedAt = existing.CreatedAt
			o.UpdatedAt = now
			o.LastSyncAt = &now
			return false, r.set(ctx, o)
		}
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	o.LastSyncAt = &now
	return true, r.set(ctx, o)
}

func (r *RedisRepository) set(ctx context.Context, o Official) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, rosterKey, o.ID, raw).Err()
}
