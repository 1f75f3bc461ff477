package officials

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const statusKey = "rag_admin:officials:sync_status"

// StatusStore tracks the sync status record shared between the HTTP server
// and the worker.
type StatusStore struct {
	client *redis.Client
}

// NewStatusStore returns a Redis-backed status store.
func NewStatusStore(client *redis.Client) *StatusStore {
	return &StatusStore{client: client}
}

// Load reads the current status; an absent record reads as idle.
func (s *StatusStore) Load(ctx context.Context) (SyncStatus, error) {
	raw, err := s.client.Get(ctx, statusKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SyncStatus{State: SyncIdle}, nil
		}
		return SyncStatus{}, err
	}
	var status SyncStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return SyncStatus{State: SyncIdle}, nil
	}
	return status, nil
}

// Save writes the status record.
func (s *StatusStore) Save(ctx context.Context, status SyncStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statusKey, raw, 0).Err()
}
