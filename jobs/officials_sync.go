package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rag-admin/rag-admin/internal/officials"
)

// OfficialsSource yields the upstream roster a sync run imports from.
type OfficialsSource interface {
	Fetch(ctx context.Context) ([]officials.Official, error)
}

// StaticSource serves a fixed roster. The upstream registry has no API yet,
// so runs import this curated snapshot.
type StaticSource struct {
	Roster []officials.Official
}

// Fetch returns the configured roster.
func (s StaticSource) Fetch(ctx context.Context) ([]officials.Official, error) {
	return s.Roster, nil
}

// OfficialsSyncJob imports the roster into the repository and maintains the
// shared sync status record.
type OfficialsSyncJob struct {
	source      OfficialsSource
	repo        officials.Repository
	status      *officials.StatusStore
	idempotency officials.IdempotencyClaimer
	logger      *slog.Logger
}

// NewOfficialsSyncJob constructs the job with its collaborators.
func NewOfficialsSyncJob(source OfficialsSource, repo officials.Repository, status *officials.StatusStore, idempotency officials.IdempotencyClaimer, logger *slog.Logger) *OfficialsSyncJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &OfficialsSyncJob{source: source, repo: repo, status: status, idempotency: idempotency, logger: logger}
}

// Handle processes one TaskOfficialsSync task. The in-flight claim taken at
// enqueue time is released whether the run succeeds or fails.
func (j *OfficialsSyncJob) Handle(ctx context.Context, t *asynq.Task) error {
	var req officials.SyncRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		j.releaseClaim(ctx)
		return asynq.SkipRetry
	}

	added, updated, err := j.run(ctx)
	j.releaseClaim(ctx)
	if err != nil {
		j.logger.Error("officials sync failed",
			slog.String("requested_by", req.RequestedBy),
			slog.Any("error", err))
		j.saveStatus(ctx, officials.SyncStatus{State: officials.SyncFailed})
		return err
	}

	now := time.Now()
	j.saveStatus(ctx, officials.SyncStatus{
		State:      officials.SyncOK,
		LastSyncAt: &now,
		Added:      added,
		Updated:    updated,
	})
	j.logger.Info("officials sync done",
		slog.String("requested_by", req.RequestedBy),
		slog.Int("added", added),
		slog.Int("updated", updated))
	return nil
}

func (j *OfficialsSyncJob) run(ctx context.Context) (added, updated int, err error) {
	roster, err := j.source.Fetch(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, o := range roster {
		o.Source = "sync"
		created, err := j.repo.Upsert(ctx, o)
		if err != nil {
			return added, updated, err
		}
		if created {
			added++
		} else {
			updated++
		}
	}
	return added, updated, nil
}

func (j *OfficialsSyncJob) releaseClaim(ctx context.Context) {
	if j.idempotency == nil {
		return
	}
	if err := j.idempotency.Release(ctx, officials.SyncClaimKey); err != nil {
		j.logger.Warn("release sync claim", slog.Any("error", err))
	}
}

func (j *OfficialsSyncJob) saveStatus(ctx context.Context, status officials.SyncStatus) {
	if j.status == nil {
		return
	}
	if err := j.status.Save(ctx, status); err != nil {
		j.logger.Warn("save sync status", slog.Any("error", err))
	}
}
