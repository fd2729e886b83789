package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"foliogate/internal/domain"
)

// MockImportAuditRepo is a mock implementation of port.ImportAuditRepository.
type MockImportAuditRepo struct {
	mock.Mock
}

func (m *MockImportAuditRepo) Create(ctx context.Context, record *domain.ImportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockImportAuditRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.ImportRecord, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImportRecord), args.Int(1), args.Error(2)
}
