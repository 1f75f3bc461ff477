package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rag-admin/rag-admin/internal/shared"
	_ "github.com/rag-admin/rag-admin/testing"
)

type recordingAudit struct {
	entries []shared.AuditEntry
}

func (r *recordingAudit) Record(_ context.Context, entry shared.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func newTestService() (*Service, *recordingAudit) {
	audit := &recordingAudit{}
	return NewService(NewMemoryRepository(DefaultSeeds()), audit, nil), audit
}

func TestListFilterByType(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	result, err := svc.List(ctx, ListFilter{Type: TypeSensitive})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "敏感词汇处理规范", result.Items[0].Title)
}

func TestListFilterByActive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin", Item{
		Title: "retired", Content: "c", Type: TypeFAQ, Category: "misc", Severity: SeverityLow,
	})
	require.NoError(t, err)

	inactive := false
	result, err := svc.List(ctx, ListFilter{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, created.ID, result.Items[0].ID)
}

func TestListSearchMatchesKeywords(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	result, err := svc.List(ctx, ListFilter{Search: "流程"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "常见错误问题汇总", result.Items[0].Title)
}

func TestListOrdersBySeverity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	result, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.True(t, len(result.Items) >= 3)
	for i := 1; i < len(result.Items); i++ {
		assert.LessOrEqual(t, result.Items[i].Severity.Rank(), result.Items[i-1].Severity.Rank())
	}
}

func TestCategoriesSortedUnique(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "admin", Item{
		Title: "dup", Content: "c", Type: TypeFAQ, Category: "内容审核", Severity: SeverityLow,
	})
	require.NoError(t, err)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"内容审核", "政策解读", "问题解答"}, cats)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	svc, audit := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "editor1", Item{
		Title: "t", Content: "c", Type: TypeGuideline, Category: "x", Severity: SeverityMedium,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "editor1", Item{
		ID: created.ID, Title: "t2", Content: "c2", Type: TypeGuideline, Category: "x", Severity: SeverityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, SeverityHigh, updated.Severity)

	last := audit.entries[len(audit.entries)-1]
	assert.Equal(t, "update", last.Action)
	assert.Equal(t, "knowledge_item", last.Entity)
}
