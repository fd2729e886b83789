package mocks

import (
	"github.com/stretchr/testify/mock"

	"foliogate/internal/search"
)

// MockSearchService is a mock implementation of service.SearchService.
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Symbols(query string) []search.Result[search.Symbol] {
	args := m.Called(query)
	return args.Get(0).([]search.Result[search.Symbol])
}

func (m *MockSearchService) Brokers(query string) []search.Result[search.Broker] {
	args := m.Called(query)
	return args.Get(0).([]search.Result[search.Broker])
}
