package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/port"
)

// BatchService manages manually entered transaction batches.
type BatchService interface {
	Create(ctx context.Context, ownerID string) (*pipeline.BatchView, error)
	Get(ctx context.Context, ownerID string, batchID uuid.UUID) (*pipeline.BatchView, error)
	AddRow(ctx context.Context, ownerID string, batchID uuid.UUID, row domain.TransactionDraft) (*RowEdit, error)
	EditRow(ctx context.Context, ownerID string, batchID uuid.UUID, rowID string, field domain.Field, value string) (*RowEdit, error)
	RemoveRow(ctx context.Context, ownerID string, batchID uuid.UUID, rowID string) error
	Submit(ctx context.Context, principal domain.Principal, batchID uuid.UUID) (*pipeline.BatchOutcome, error)
	Discard(ctx context.Context, ownerID string, batchID uuid.UUID) error
	Sweep() int
}

type batchService struct {
	api       port.PortfolioAPI
	auditRepo port.ImportAuditRepository
	batches   *sessionStore[*pipeline.Batch]
	ttl       time.Duration
	now       func() time.Time
}

// NewBatchService creates a new BatchService implementation. auditRepo may be nil.
func NewBatchService(api port.PortfolioAPI, auditRepo port.ImportAuditRepository, ttl time.Duration, maxBatches int, now func() time.Time) BatchService {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &batchService{
		api:       api,
		auditRepo: auditRepo,
		batches:   newSessionStore[*pipeline.Batch](maxBatches, domain.ErrBatchNotFound, now),
		ttl:       ttl,
		now:       now,
	}
}

func (s *batchService) Create(_ context.Context, ownerID string) (*pipeline.BatchView, error) {
	b := pipeline.NewBatch(uuid.New(), s.now)
	s.batches.put(b.ID(), ownerID, b)
	view := b.View()
	return &view, nil
}

func (s *batchService) Get(_ context.Context, ownerID string, batchID uuid.UUID) (*pipeline.BatchView, error) {
	b, err := s.batches.get(batchID, ownerID)
	if err != nil {
		return nil, err
	}
	view := b.View()
	return &view, nil
}

func (s *batchService) AddRow(_ context.Context, ownerID string, batchID uuid.UUID, row domain.TransactionDraft) (*RowEdit, error) {
	b, err := s.batches.get(batchID, ownerID)
	if err != nil {
		return nil, err
	}
	added, errs := b.AddRow(row)
	return &RowEdit{Row: added, ValidationErrors: errs}, nil
}

func (s *batchService) EditRow(_ context.Context, ownerID string, batchID uuid.UUID, rowID string, field domain.Field, value string) (*RowEdit, error) {
	b, err := s.batches.get(batchID, ownerID)
	if err != nil {
		return nil, err
	}
	row, errs, err := b.EditField(rowID, field, value)
	if err != nil {
		return nil, err
	}
	return &RowEdit{Row: *row, ValidationErrors: errs}, nil
}

func (s *batchService) RemoveRow(_ context.Context, ownerID string, batchID uuid.UUID, rowID string) error {
	b, err := s.batches.get(batchID, ownerID)
	if err != nil {
		return err
	}
	return b.RemoveRow(rowID)
}

func (s *batchService) Submit(ctx context.Context, principal domain.Principal, batchID uuid.UUID) (*pipeline.BatchOutcome, error) {
	b, err := s.batches.get(batchID, principal.Subject)
	if err != nil {
		return nil, err
	}
	var submitted int
	outcome, err := b.Submit(ctx, func(ctx context.Context, rows []domain.TransactionDraft) (*port.CreateOutput, error) {
		submitted = len(rows)
		return s.api.CreateTransactions(ctx, principal.Token, rows)
	})
	if err != nil {
		if errors.Is(err, domain.ErrImportFailed) {
			s.audit(ctx, principal.Subject, batchID, submitted, domain.ImportStatusFailed, err.Error())
		}
		return nil, err
	}
	log.Printf("batchService.Submit: batch %s submitted %d rows, %d remaining", batchID, outcome.Submitted, outcome.Remaining)
	s.audit(ctx, principal.Subject, batchID, outcome.Submitted, domain.ImportStatusSucceeded, "")
	if outcome.Remaining == 0 {
		_, _ = s.batches.remove(batchID, principal.Subject)
	}
	return outcome, nil
}

func (s *batchService) Discard(_ context.Context, ownerID string, batchID uuid.UUID) error {
	_, err := s.batches.remove(batchID, ownerID)
	return err
}

// Sweep drops batches idle for longer than the TTL.
func (s *batchService) Sweep() int {
	n := len(s.batches.sweep(s.ttl))
	if n > 0 {
		log.Printf("batchService.Sweep: expired %d batches", n)
	}
	return n
}

func (s *batchService) audit(ctx context.Context, ownerID string, batchID uuid.UUID, count int, status domain.ImportStatus, errMsg string) {
	if s.auditRepo == nil {
		return
	}
	rec := &domain.ImportRecord{
		ID:               uuid.New(),
		SessionID:        batchID,
		OwnerID:          ownerID,
		Source:           ImportSourceBatch,
		FileName:         "",
		TransactionCount: count,
		Status:           status,
		Error:            errMsg,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.auditRepo.Create(ctx, rec); err != nil {
		log.Printf("batchService.audit: failed to record batch %s: %v", batchID, err)
	}
}
