package prompts

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// Service handles prompt template business logic.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// ListResult bundles a prompt page with its pagination metadata.
type ListResult struct {
	Items      []Prompt          `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

var foldCaser = cases.Fold()

// List returns prompts matching the filter, paginated.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, err
	}

	search := foldCaser.String(filter.Search)
	filtered := make([]Prompt, 0, len(all))
	for _, p := range all {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(foldCaser.String(p.Title), search) &&
			!strings.Contains(foldCaser.String(p.Content), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	pagination := shared.NewPagination(filter.Page, filter.PerPage, len(filtered))
	start, end := pagination.Window(len(filtered))
	return ListResult{Items: filtered[start:end], Pagination: pagination}, nil
}

// Get returns one prompt.
func (s *Service) Get(ctx context.Context, id string) (Prompt, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new draft prompt and cuts its first version record.
func (s *Service) Create(ctx context.Context, actor string, p Prompt) (Prompt, error) {
	p.Version = 1
	if p.Status == "" {
		p.Status = StatusDraft
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Prompt{}, err
	}
	s.snapshot(ctx, Version{
		PromptID: created.ID,
		Version:  created.Version,
		Changes:  []Change{{Field: "prompt", NewValue: created.Title, ChangeType: "create"}},
		Snapshot: created,
	})
	s.record(ctx, actor, "create", created.ID, nil)
	return created, nil
}

// Update replaces mutable fields of an existing prompt.
func (s *Service) Update(ctx context.Context, actor string, p Prompt) (Prompt, error) {
	current, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return Prompt{}, err
	}
	p.Version = current.Version
	p.CreatedAt = current.CreatedAt
	p.AuthorID = current.AuthorID
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return Prompt{}, err
	}
	s.record(ctx, actor, "update", updated.ID, nil)
	return updated, nil
}

// Publish transitions a prompt to published, bumps its version and cuts a
// version record carrying the field changes since the previous snapshot.
func (s *Service) Publish(ctx context.Context, actor, id string) (Prompt, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Prompt{}, err
	}
	previous := s.latestSnapshot(ctx, id)
	p.Status = StatusPublished
	p.Version++
	published, err := s.repo.Update(ctx, p)
	if err != nil {
		return Prompt{}, err
	}
	now := time.Now()
	s.snapshot(ctx, Version{
		PromptID:    id,
		Version:     published.Version,
		Changes:     diffPrompts(previous, published),
		Snapshot:    published,
		PublishedAt: &now,
		PublishedBy: actor,
	})
	s.record(ctx, actor, "publish", id, map[string]any{"version": published.Version})
	return published, nil
}

// History returns a prompt's version records, newest first.
func (s *Service) History(ctx context.Context, id string) ([]Version, error) {
	return s.repo.Versions(ctx, id)
}

// Rollback restores a prompt's content from an earlier version snapshot. The
// restored state gets a fresh version number so history stays append-only.
func (s *Service) Rollback(ctx context.Context, actor, id string, toVersion int) (Prompt, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Prompt{}, err
	}
	records, err := s.repo.Versions(ctx, id)
	if err != nil {
		return Prompt{}, err
	}
	var target *Version
	for i := range records {
		if records[i].Version == toVersion {
			target = &records[i]
			break
		}
	}
	if target == nil {
		return Prompt{}, shared.ErrNotFound
	}

	restored := current
	restored.Title = target.Snapshot.Title
	restored.Content = target.Snapshot.Content
	restored.Variables = target.Snapshot.Variables
	restored.Category = target.Snapshot.Category
	restored.Tags = target.Snapshot.Tags
	restored.Version = current.Version + 1
	updated, err := s.repo.Update(ctx, restored)
	if err != nil {
		return Prompt{}, err
	}
	s.snapshot(ctx, Version{
		PromptID:     id,
		Version:      updated.Version,
		Changes:      diffPrompts(current, updated),
		Snapshot:     updated,
		RollbackFrom: toVersion,
	})
	s.record(ctx, actor, "rollback", id, map[string]any{"from": current.Version, "to": toVersion})
	return updated, nil
}

func (s *Service) latestSnapshot(ctx context.Context, id string) Prompt {
	records, err := s.repo.Versions(ctx, id)
	if err != nil || len(records) == 0 {
		return Prompt{}
	}
	return records[0].Snapshot
}

func (s *Service) snapshot(ctx context.Context, v Version) {
	if _, err := s.repo.AddVersion(ctx, v); err != nil && s.logger != nil {
		s.logger.Warn("record prompt version", slog.Any("error", err))
	}
}

// Delete removes a prompt.
func (s *Service) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor, action, id string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	entry := shared.AuditEntry{Actor: actor, Action: action, Entity: "prompt", EntityID: id, Meta: meta}
	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit prompt "+action, slog.Any("error", err))
	}
}
