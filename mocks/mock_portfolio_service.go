package mocks

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockPortfolioService is a mock implementation of service.PortfolioService.
type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) Summary(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioService) Holdings(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioService) HistoricalChart(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, token, query))
}

func (m *MockPortfolioService) raw(args mock.Arguments) (json.RawMessage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
