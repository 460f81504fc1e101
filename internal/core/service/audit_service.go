package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

const defaultTrailLimit = 100

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation that persists
// entries to the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit entry.
func (s *auditService) Process(ctx context.Context, in ports.AuditEntryInput) error {
	at := in.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	rec := &domain.AuditRecord{
		Actor:    in.Actor,
		Action:   in.Action,
		TargetID: in.TargetID,
		At:       at,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return fmt.Errorf("audit: insert record: %w", err)
	}

	s.log.Debug().Str("actor", in.Actor).Str("action", string(in.Action)).Msg("audit record stored")
	return nil
}

// Recent returns the newest records, capped at defaultTrailLimit when the
// caller passes no positive limit.
func (s *auditService) Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = defaultTrailLimit
	}
	return s.repo.FindRecent(ctx, limit)
}
