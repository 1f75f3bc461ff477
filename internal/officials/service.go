package officials

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// SyncScheduler queues an officials sync run.
type SyncScheduler interface {
	EnqueueSync(ctx context.Context, req SyncRequest) error
}

// IdempotencyClaimer guards against overlapping sync runs.
type IdempotencyClaimer interface {
	Claim(ctx context.Context, key, module string) error
	Release(ctx context.Context, key string) error
}

// SyncClaimKey is the idempotency key held while a sync run is in flight.
const SyncClaimKey = "officials:sync"

// Service handles officials business logic.
type Service struct {
	repo        Repository
	audit       shared.AuditRecorder
	scheduler   SyncScheduler
	idempotency IdempotencyClaimer
	status      *StatusStore
	logger      *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, audit shared.AuditRecorder, scheduler SyncScheduler, idempotency IdempotencyClaimer, status *StatusStore, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, scheduler: scheduler, idempotency: idempotency, status: status, logger: logger}
}

// ListResult bundles an officials page with its pagination metadata.
type ListResult struct {
	Items      []Official        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

var foldCaser = cases.Fold()

// List returns officials matching the filter, paginated.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, err
	}

	search := foldCaser.String(filter.Search)
	filtered := make([]Official, 0, len(all))
	for _, o := range all {
		if filter.Department != "" && o.Department != filter.Department {
			continue
		}
		if filter.Level != 0 && o.Level != filter.Level {
			continue
		}
		if search != "" &&
			!strings.Contains(foldCaser.String(o.Name), search) &&
			!strings.Contains(foldCaser.String(o.Position), search) {
			continue
		}
		filtered = append(filtered, o)
	}

	pagination := shared.NewPagination(filter.Page, filter.PerPage, len(filtered))
	start, end := pagination.Window(len(filtered))
	return ListResult{Items: filtered[start:end], Pagination: pagination}, nil
}

// Get returns one official.
func (s *Service) Get(ctx context.Context, id string) (Official, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new manually entered official.
func (s *Service) Create(ctx context.Context, actor string, o Official) (Official, error) {
	if o.Source == "" {
		o.Source = "manual"
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Official{}, err
	}
	s.record(ctx, actor, "create", created.ID, nil)
	return created, nil
}

// Update replaces an existing official.
func (s *Service) Update(ctx context.Context, actor string, o Official) (Official, error) {
	current, err := s.repo.Get(ctx, o.ID)
	if err != nil {
		return Official{}, err
	}
	o.CreatedAt = current.CreatedAt
	o.LastSyncAt = current.LastSyncAt
	o.Source = current.Source
	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return Official{}, err
	}
	s.record(ctx, actor, "update", updated.ID, nil)
	return updated, nil
}

// Delete removes an official.
func (s *Service) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "delete", id, nil)
	return nil
}

// RequestSync queues a sync run. Only one run may be in flight: the claim is
// released by the worker when the run resolves.
func (s *Service) RequestSync(ctx context.Context, actor string) error {
	if s.scheduler == nil {
		return errors.New("officials: sync scheduler not configured")
	}
	if s.idempotency != nil {
		if err := s.idempotency.Claim(ctx, SyncClaimKey, "officials"); err != nil {
			if errors.Is(err, shared.ErrIdempotencyConflict) {
				return shared.ErrSyncInProgress
			}
			return err
		}
	}
	if err := s.scheduler.EnqueueSync(ctx, SyncRequest{RequestedBy: actor}); err != nil {
		if s.idempotency != nil {
			if relErr := s.idempotency.Release(ctx, SyncClaimKey); relErr != nil && s.logger != nil {
				s.logger.Warn("release sync claim", slog.Any("error", relErr))
			}
		}
		return err
	}
	if s.status != nil {
		if err := s.status.Save(ctx, SyncStatus{State: SyncRunning}); err != nil && s.logger != nil {
			s.logger.Warn("save sync status", slog.Any("error", err))
		}
	}
	s.record(ctx, actor, "sync", "officials", nil)
	return nil
}

// Status reports the last known sync status.
func (s *Service) Status(ctx context.Context) (SyncStatus, error) {
	if s.status == nil {
		return SyncStatus{State: SyncIdle}, nil
	}
	return s.status.Load(ctx)
}

func (s *Service) record(ctx context.Context, actor, action, id string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	entry := shared.AuditEntry{Actor: actor, Action: action, Entity: "official", EntityID: id, Meta: meta}
	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit official "+action, slog.Any("error", err))
	}
}
