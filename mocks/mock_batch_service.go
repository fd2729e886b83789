package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/service"
)

// MockBatchService is a mock implementation of service.BatchService.
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Create(ctx context.Context, ownerID string) (*pipeline.BatchView, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.BatchView), args.Error(1)
}

func (m *MockBatchService) Get(ctx context.Context, ownerID string, batchID uuid.UUID) (*pipeline.BatchView, error) {
	args := m.Called(ctx, ownerID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.BatchView), args.Error(1)
}

func (m *MockBatchService) AddRow(ctx context.Context, ownerID string, batchID uuid.UUID, row domain.TransactionDraft) (*service.RowEdit, error) {
	args := m.Called(ctx, ownerID, batchID, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RowEdit), args.Error(1)
}

func (m *MockBatchService) EditRow(ctx context.Context, ownerID string, batchID uuid.UUID, rowID string, field domain.Field, value string) (*service.RowEdit, error) {
	args := m.Called(ctx, ownerID, batchID, rowID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RowEdit), args.Error(1)
}

func (m *MockBatchService) RemoveRow(ctx context.Context, ownerID string, batchID uuid.UUID, rowID string) error {
	args := m.Called(ctx, ownerID, batchID, rowID)
	return args.Error(0)
}

func (m *MockBatchService) Submit(ctx context.Context, principal domain.Principal, batchID uuid.UUID) (*pipeline.BatchOutcome, error) {
	args := m.Called(ctx, principal, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.BatchOutcome), args.Error(1)
}

func (m *MockBatchService) Discard(ctx context.Context, ownerID string, batchID uuid.UUID) error {
	args := m.Called(ctx, ownerID, batchID)
	return args.Error(0)
}

func (m *MockBatchService) Sweep() int {
	args := m.Called()
	return args.Int(0)
}
