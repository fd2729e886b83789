package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"foliogate/internal/port"
)

// MockImportNotifier is a mock implementation of port.ImportNotifier.
type MockImportNotifier struct {
	mock.Mock
}

func (m *MockImportNotifier) SendImportConfirmation(ctx context.Context, toEmail, toName string, summary port.ImportSummary) error {
	args := m.Called(ctx, toEmail, toName, summary)
	return args.Error(0)
}
