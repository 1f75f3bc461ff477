package officials

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rag-admin/rag-admin/internal/shared"
	_ "github.com/rag-admin/rag-admin/testing"
)

type stubScheduler struct {
	requests []SyncRequest
	err      error
}

func (s *stubScheduler) EnqueueSync(_ context.Context, req SyncRequest) error {
	if s.err != nil {
		return s.err
	}
	s.requests = append(s.requests, req)
	return nil
}

type stubClaimer struct {
	claimErr error
	claimed  bool
	released bool
}

func (s *stubClaimer) Claim(_ context.Context, _, _ string) error {
	if s.claimErr != nil {
		return s.claimErr
	}
	s.claimed = true
	return nil
}

func (s *stubClaimer) Release(_ context.Context, _ string) error {
	s.released = true
	return nil
}

func newStatusStore(t *testing.T) *StatusStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatusStore(client)
}

func TestListFilters(t *testing.T) {
	svc := NewService(NewMemoryRepository(DefaultRoster()), nil, nil, nil, nil, nil)
	ctx := context.Background()

	result, err := svc.List(ctx, ListFilter{Department: "立法会"})
	require.NoError(t, err)
	require.Len(t, result.Items, 4)
	for _, o := range result.Items {
		assert.Equal(t, "立法会", o.Department)
	}

	result, err = svc.List(ctx, ListFilter{Search: "司长"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	for _, o := range result.Items {
		assert.Contains(t, o.Position, "司长")
	}

	result, err = svc.List(ctx, ListFilter{Level: 1})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "李家超", result.Items[0].Name)
}

func TestRequestSyncHappyPath(t *testing.T) {
	scheduler := &stubScheduler{}
	claimer := &stubClaimer{}
	status := newStatusStore(t)
	svc := NewService(NewMemoryRepository(nil), nil, scheduler, claimer, status, nil)
	ctx := context.Background()

	require.NoError(t, svc.RequestSync(ctx, "admin"))
	require.Len(t, scheduler.requests, 1)
	assert.Equal(t, "admin", scheduler.requests[0].RequestedBy)
	assert.True(t, claimer.claimed)
	assert.False(t, claimer.released)

	got, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncRunning, got.State)
}

func TestRequestSyncConflict(t *testing.T) {
	scheduler := &stubScheduler{}
	claimer := &stubClaimer{claimErr: shared.ErrIdempotencyConflict}
	svc := NewService(NewMemoryRepository(nil), nil, scheduler, claimer, nil, nil)

	err := svc.RequestSync(context.Background(), "admin")
	assert.True(t, errors.Is(err, shared.ErrSyncInProgress))
	assert.Empty(t, scheduler.requests)
}

func TestRequestSyncReleasesClaimOnEnqueueFailure(t *testing.T) {
	scheduler := &stubScheduler{err: errors.New("queue down")}
	claimer := &stubClaimer{}
	svc := NewService(NewMemoryRepository(nil), nil, scheduler, claimer, nil, nil)

	err := svc.RequestSync(context.Background(), "admin")
	require.Error(t, err)
	assert.True(t, claimer.released)
}

func TestStatusDefaultsToIdle(t *testing.T) {
	status := newStatusStore(t)
	svc := NewService(NewMemoryRepository(nil), nil, &stubScheduler{}, nil, status, nil)

	got, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncIdle, got.State)
}

func TestUpdatePreservesSyncProvenance(t *testing.T) {
	repo := NewMemoryRepository(nil)
	svc := NewService(repo, nil, nil, nil, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin", Official{Name: "n", Position: "p", Department: "d", Level: 3})
	require.NoError(t, err)
	assert.Equal(t, "manual", created.Source)

	synced, err := repo.Upsert(ctx, Official{Name: "n", Department: "d", Position: "p2", Level: 3, Source: "sync"})
	require.NoError(t, err)
	assert.False(t, synced)

	updated, err := svc.Update(ctx, "admin", Official{ID: created.ID, Name: "n", Position: "p3", Department: "d", Level: 3})
	require.NoError(t, err)
	assert.Equal(t, "sync", updated.Source)
	assert.NotNil(t, updated.LastSyncAt)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}
