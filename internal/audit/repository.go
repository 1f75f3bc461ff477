package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides read access to the audit log store.
type Repository interface {
	Window(ctx context.Context, filters TimelineFilters, offset, limit int) ([]TimelineRow, error)
}

// PgRepository reads audit rows from Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository returns a new PgRepository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Window returns a page of audit rows, newest first. Empty filter fields
// match everything.
func (r *PgRepository) Window(ctx context.Context, filters TimelineFilters, offset, limit int) ([]TimelineRow, error) {
	const query = `
SELECT occurred_at, actor, action, entity, entity_id, meta
FROM audit_logs
WHERE ($1::timestamptz IS NULL OR occurred_at >= $1)
  AND ($2::timestamptz IS NULL OR occurred_at <= $2)
  AND ($3::text IS NULL OR actor = $3)
  AND ($4::text IS NULL OR entity = $4)
  AND ($5::text IS NULL OR action = $5)
ORDER BY occurred_at DESC
OFFSET $6 LIMIT $7`

	rows, err := r.pool.Query(ctx, query,
		toPgTime(filters.From),
		toPgTime(filters.To),
		optionalText(filters.Actor),
		optionalText(filters.Entity),
		optionalText(filters.Action),
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TimelineRow, 0, limit)
	for rows.Next() {
		var (
			at       pgtype.Timestamptz
			row      TimelineRow
			entityID pgtype.Text
			metaJSON []byte
		)
		if err := rows.Scan(&at, &row.Actor, &row.Action, &row.Entity, &entityID, &metaJSON); err != nil {
			return nil, err
		}
		if at.Valid {
			row.At = at.Time
		}
		if entityID.Valid {
			row.EntityID = entityID.String
		}
		if len(metaJSON) > 0 {
			// A malformed meta blob should not break the whole page.
			_ = json.Unmarshal(metaJSON, &row.Meta)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func toPgTime(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func optionalText(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
