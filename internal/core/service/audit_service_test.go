package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

type stubAuditRepo struct {
	records   []domain.AuditRecord
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, rec *domain.AuditRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubAuditRepo) FindRecent(_ context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit > len(r.records) {
		limit = len(r.records)
	}
	return r.records[:limit], nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	err := svc.Process(context.Background(), ports.AuditEntryInput{
		Actor:    "admin@goods.ru",
		Action:   domain.AuditProfileUpdate,
		TargetID: 42,
		At:       at,
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one record, got %d", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Actor != "admin@goods.ru" || rec.Action != domain.AuditProfileUpdate || rec.TargetID != 42 || !rec.At.Equal(at) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestAuditService_Process_DefaultsTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	before := time.Now().UTC()
	if err := svc.Process(context.Background(), ports.AuditEntryInput{
		Actor:  "alice@goods.ru",
		Action: domain.AuditLogin,
	}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if at := repo.records[0].At; at.Before(before) || at.After(time.Now().UTC()) {
		t.Fatalf("zero timestamp must be filled with the current time, got %v", at)
	}
}

func TestAuditService_Recent_DefaultLimit(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if err := svc.Process(context.Background(), ports.AuditEntryInput{
			Actor:  "alice@goods.ru",
			Action: domain.AuditLogin,
		}); err != nil {
			t.Fatalf("Process returned error: %v", err)
		}
	}

	records, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestAuditService_Process_InsertFailure(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("connection reset")}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), ports.AuditEntryInput{
		Actor:  "alice@goods.ru",
		Action: domain.AuditLogin,
	})
	if err == nil {
		t.Fatalf("expected the repository error to surface")
	}
}
