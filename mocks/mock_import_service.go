package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Start(ctx context.Context, input service.StartImportInput) (*pipeline.Snapshot, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Snapshot), args.Error(1)
}

func (m *MockImportService) Get(ctx context.Context, ownerID string, sessionID uuid.UUID) (*pipeline.Snapshot, error) {
	args := m.Called(ctx, ownerID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Snapshot), args.Error(1)
}

func (m *MockImportService) Review(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int) (*pipeline.ReviewView, error) {
	args := m.Called(ctx, ownerID, sessionID, fileIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.ReviewView), args.Error(1)
}

func (m *MockImportService) EditRow(ctx context.Context, input service.EditRowInput) (*service.RowEdit, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RowEdit), args.Error(1)
}

func (m *MockImportService) ExcludeRow(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int, rowID string) error {
	args := m.Called(ctx, ownerID, sessionID, fileIndex, rowID)
	return args.Error(0)
}

func (m *MockImportService) ImportFile(ctx context.Context, principal domain.Principal, sessionID uuid.UUID, fileIndex int) (*pipeline.ImportOutcome, error) {
	args := m.Called(ctx, principal, sessionID, fileIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.ImportOutcome), args.Error(1)
}

func (m *MockImportService) DiscardFile(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int) error {
	args := m.Called(ctx, ownerID, sessionID, fileIndex)
	return args.Error(0)
}

func (m *MockImportService) Clear(ctx context.Context, ownerID string, sessionID uuid.UUID) error {
	args := m.Called(ctx, ownerID, sessionID)
	return args.Error(0)
}

func (m *MockImportService) Subscribe(ctx context.Context, ownerID string, sessionID uuid.UUID) (<-chan domain.Event, func(), error) {
	args := m.Called(ctx, ownerID, sessionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan domain.Event), args.Get(1).(func()), args.Error(2)
}

func (m *MockImportService) History(ctx context.Context, ownerID string, offset, limit int) ([]domain.ImportRecord, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImportRecord), args.Int(1), args.Error(2)
}

func (m *MockImportService) Sweep() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockImportService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
