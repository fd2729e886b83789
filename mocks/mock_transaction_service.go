package mocks

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/stretchr/testify/mock"

	"foliogate/internal/export"
)

// MockTransactionService is a mock implementation of service.TransactionService.
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) List(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	args := m.Called(ctx, token, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, token, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, token, id string) ([]string, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionService) DeleteMany(ctx context.Context, token string, ids []string) ([]string, error) {
	args := m.Called(ctx, token, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Export records the call; use Run to write content to the writer argument.
func (m *MockTransactionService) Export(ctx context.Context, token string, format export.Format, query url.Values, w io.Writer) (int, error) {
	args := m.Called(ctx, token, format, query, w)
	return args.Int(0), args.Error(1)
}
