package knowledge

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rag-admin/rag-admin/internal/shared"
)

// Service handles knowledge base business logic.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// ListResult bundles a knowledge page with its pagination metadata.
type ListResult struct {
	Items      []Item            `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

var foldCaser = cases.Fold()

// List returns items matching the filter, paginated.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, err
	}

	search := foldCaser.String(filter.Search)
	filtered := make([]Item, 0, len(all))
	for _, item := range all {
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Active != nil && item.IsActive != *filter.Active {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		filtered = append(filtered, item)
	}

	pagination := shared.NewPagination(filter.Page, filter.PerPage, len(filtered))
	start, end := pagination.Window(len(filtered))
	return ListResult{Items: filtered[start:end], Pagination: pagination}, nil
}

func matchesSearch(item Item, search string) bool {
	if strings.Contains(foldCaser.String(item.Title), search) ||
		strings.Contains(foldCaser.String(item.Content), search) {
		return true
	}
	for _, kw := range item.Keywords {
		if strings.Contains(foldCaser.String(kw), search) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories in use, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range all {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	sort.Strings(out)
	return out, nil
}

// Get returns one item.
func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new knowledge item.
func (s *Service) Create(ctx context.Context, actor string, item Item) (Item, error) {
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Item{}, err
	}
	s.record(ctx, actor, "create", created.ID, nil)
	return created, nil
}

// Update replaces mutable fields of an existing item.
func (s *Service) Update(ctx context.Context, actor string, item Item) (Item, error) {
	current, err := s.repo.Get(ctx, item.ID)
	if err != nil {
		return Item{}, err
	}
	item.CreatedAt = current.CreatedAt
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return Item{}, err
	}
	s.record(ctx, actor, "update", updated.ID, nil)
	return updated, nil
}

// Delete removes an item.
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
	entry := shared.AuditEntry{Actor: actor, Action: action, Entity: "knowledge_item", EntityID: id, Meta: meta}
	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit knowledge "+action, slog.Any("error", err))
	}
}
