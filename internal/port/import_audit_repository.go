package port

import (
	"context"

	"foliogate/internal/domain"
)

// ImportAuditRepository persists the outcome of every import submission.
type ImportAuditRepository interface {
	Create(ctx context.Context, record *domain.ImportRecord) error
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.ImportRecord, int, error)
}
