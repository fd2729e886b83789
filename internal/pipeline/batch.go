package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"foliogate/internal/domain"
)

// BatchFileIndex is the file index used in validation keys of batch rows.
const BatchFileIndex = -1

// Batch is a locally held group of manually entered transactions pending
// a single submit.
type Batch struct {
	mu         sync.Mutex
	id         uuid.UUID
	rows       []domain.TransactionDraft
	errs       ErrorMap
	createdAt  time.Time
	now        func() time.Time
	submitting bool
}

// NewBatch creates an empty batch.
func NewBatch(id uuid.UUID, now func() time.Time) *Batch {
	if now == nil {
		now = time.Now
	}
	return &Batch{id: id, errs: make(ErrorMap), createdAt: now(), now: now}
}

// ID returns the batch identifier.
func (b *Batch) ID() uuid.UUID { return b.id }

// CreatedAt returns when the batch was opened.
func (b *Batch) CreatedAt() time.Time { return b.createdAt }

// BatchView is a point-in-time copy of a Batch.
type BatchView struct {
	ID               uuid.UUID                 `json:"id"`
	Rows             []domain.TransactionDraft `json:"rows"`
	ValidationErrors []domain.ValidationError  `json:"validation_errors"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// View copies the batch.
func (b *Batch) View() BatchView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BatchView{
		ID:               b.id,
		Rows:             append([]domain.TransactionDraft{}, b.rows...),
		ValidationErrors: b.errs.List(),
		CreatedAt:        b.createdAt,
	}
}

// AddRow appends a row with a fresh UUID, computes its amount and validates it.
func (b *Batch) AddRow(row domain.TransactionDraft) (domain.TransactionDraft, []domain.ValidationError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row.ID = uuid.NewString()
	if row.TradeType == "" {
		row.TradeType = domain.TradeTypeBuy
	}
	recomputeAmount(&row)
	ValidateDraft(&row, BatchFileIndex, b.errs, b.now())
	b.rows = append(b.rows, row)
	return row, rowErrors(b.errs, BatchFileIndex, row.ID)
}

// EditField edits one field of one row.
func (b *Batch) EditField(rowID string, field domain.Field, raw string) (*domain.TransactionDraft, []domain.ValidationError, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.rows {
		if b.rows[i].ID != rowID {
			continue
		}
		if err := ApplyEdit(&b.rows[i], BatchFileIndex, field, raw, b.errs, b.now()); err != nil {
			return nil, nil, err
		}
		row := b.rows[i]
		return &row, rowErrors(b.errs, BatchFileIndex, rowID), nil
	}
	return nil, nil, domain.ErrRowNotFound
}

// RemoveRow deletes a row and its errors.
func (b *Batch) RemoveRow(rowID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.rows {
		if b.rows[i].ID == rowID {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			b.errs.ClearRow(BatchFileIndex, rowID)
			return nil
		}
	}
	return domain.ErrRowNotFound
}

// BatchOutcome reports a batch submit.
type BatchOutcome struct {
	Submitted int    `json:"submitted"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// Submit sends every valid row. Submitted rows leave the batch; invalid
// rows stay for correction. On failure nothing changes. The batch stays
// readable and editable while the request is in flight.
func (b *Batch) Submit(ctx context.Context, submit SubmitFunc) (*BatchOutcome, error) {
	b.mu.Lock()
	if b.submitting {
		b.mu.Unlock()
		return nil, domain.ErrImportInProgress
	}
	var valid []domain.TransactionDraft
	for _, r := range b.rows {
		if !b.errs.RowHasErrors(BatchFileIndex, r.ID) {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		b.mu.Unlock()
		return nil, domain.ErrNothingToImport
	}
	b.submitting = true
	b.mu.Unlock()

	out, err := submit(ctx, valid)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitting = false
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImportFailed, err)
	}

	sent := make(map[string]bool, len(valid))
	for _, r := range valid {
		sent[r.ID] = true
	}
	kept := b.rows[:0]
	for _, r := range b.rows {
		if sent[r.ID] {
			b.errs.ClearRow(BatchFileIndex, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	b.rows = kept

	outcome := &BatchOutcome{Submitted: len(valid), Remaining: len(b.rows)}
	if out != nil {
		outcome.Message = out.Message
	}
	return outcome, nil
}
