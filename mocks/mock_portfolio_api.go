package mocks

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"

	"foliogate/internal/domain"
	"foliogate/internal/port"
)

// MockPortfolioAPI is a mock implementation of port.PortfolioAPI.
type MockPortfolioAPI struct {
	mock.Mock
}

func (m *MockPortfolioAPI) ExtractTransactions(ctx context.Context, token string, input port.ExtractInput) (*domain.ExtractResult, error) {
	args := m.Called(ctx, token, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractResult), args.Error(1)
}

func (m *MockPortfolioAPI) CreateTransactions(ctx context.Context, token string, drafts []domain.TransactionDraft) (*port.CreateOutput, error) {
	args := m.Called(ctx, token, drafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CreateOutput), args.Error(1)
}

func (m *MockPortfolioAPI) UpdateTransaction(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, token, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockPortfolioAPI) DeleteTransaction(ctx context.Context, token, id string) ([]string, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPortfolioAPI) DeleteTransactions(ctx context.Context, token string, ids []string) ([]string, error) {
	args := m.Called(ctx, token, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPortfolioAPI) ListTransactions(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioAPI) PortfolioSummary(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioAPI) Holdings(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioAPI) HistoricalChart(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioAPI) raw(args mock.Arguments) (json.RawMessage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
