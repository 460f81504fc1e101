package ports

import (
	"context"
	"time"

	"github.com/goodsru/user-panel/internal/core/domain"
)

// AuditEntryInput is the DTO handed to the audit pipeline.
type AuditEntryInput struct {
	Actor    string
	Action   domain.AuditAction
	TargetID int64
	At       time.Time
}

// AuditRepository persists audit records.
type AuditRepository interface {
	Insert(ctx context.Context, rec *domain.AuditRecord) error
	FindRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}

// AuditService processes audit entries and serves the trail back out.
type AuditService interface {
	Process(ctx context.Context, in AuditEntryInput) error
	Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}
