package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goodsru/user-panel/internal/core/domain"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

type auditRow struct {
	ID       int64     `db:"id"`
	Actor    string    `db:"actor"`
	Action   string    `db:"action"`
	TargetID int64     `db:"target_id"`
	At       time.Time `db:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, rec *domain.AuditRecord) error {
	const query = `
		INSERT INTO audit_events (actor, action, target_id, at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, rec.Actor, string(rec.Action), rec.TargetID, rec.At).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	const query = `SELECT id, actor, action, target_id, at FROM audit_events ORDER BY at DESC LIMIT $1`
	var rows []auditRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("select audit events: %w", err)
	}
	records := make([]domain.AuditRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.AuditRecord{
			ID:       row.ID,
			Actor:    row.Actor,
			Action:   domain.AuditAction(row.Action),
			TargetID: row.TargetID,
			At:       row.At,
		})
	}
	return records, nil
}
