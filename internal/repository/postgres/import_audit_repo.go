package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"foliogate/internal/domain"
	"foliogate/internal/port"
)

type importAuditRepo struct {
	db *sqlx.DB
}

// NewImportAuditRepo creates a new PostgreSQL-backed ImportAuditRepository.
func NewImportAuditRepo(db *sqlx.DB) port.ImportAuditRepository {
	return &importAuditRepo{db: db}
}

func (r *importAuditRepo) Create(ctx context.Context, record *domain.ImportRecord) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO import_audit_log (id, session_id, owner_id, source, file_name, transaction_count, status, error, created_at)
		 VALUES (:id, :session_id, :owner_id, :source, :file_name, :transaction_count, :status, :error, :created_at)`,
		record)
	if err != nil {
		return fmt.Errorf("importAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *importAuditRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.ImportRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM import_audit_log WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("importAuditRepo.ListByOwner count: %w", err)
	}

	records := []domain.ImportRecord{}
	err = r.db.SelectContext(ctx, &records,
		`SELECT id, session_id, owner_id, source, file_name, transaction_count, status, error, created_at
		 FROM import_audit_log
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("importAuditRepo.ListByOwner: %w", err)
	}
	return records, total, nil
}
