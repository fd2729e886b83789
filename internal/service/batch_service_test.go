package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/port"
	"foliogate/internal/service"
	"foliogate/mocks"
)

func manualDraft(symbol, qty, price string) domain.TransactionDraft {
	return domain.TransactionDraft{
		Symbol:    symbol,
		TradeType: domain.TradeTypeBuy,
		Quantity:  decimal.RequireFromString(qty),
		Price:     decimal.RequireFromString(price),
		Date:      "2025-01-15",
		Currency:  "EUR",
	}
}

func TestBatchService_Lifecycle(t *testing.T) {
	api := new(mocks.MockPortfolioAPI)
	audit := new(mocks.MockImportAuditRepo)
	clock := newClock()
	svc := service.NewBatchService(api, audit, time.Hour, 0, clock.Now)
	ctx := context.Background()

	view, err := svc.Create(ctx, "user-1")
	require.NoError(t, err)

	good, err := svc.AddRow(ctx, "user-1", view.ID, manualDraft("ASML", "2", "700"))
	require.NoError(t, err)
	assert.True(t, good.Row.Amount.Equal(decimal.NewFromInt(1400)))

	bad, err := svc.AddRow(ctx, "user-1", view.ID, manualDraft("SAP", "0", "120"))
	require.NoError(t, err)
	require.Len(t, bad.ValidationErrors, 1)

	api.On("CreateTransactions", mock.Anything, "tok", mock.MatchedBy(func(rows []domain.TransactionDraft) bool {
		return len(rows) == 1 && rows[0].Symbol == "ASML"
	})).Return(&port.CreateOutput{Message: "ok", Count: 1}, nil).Once()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ImportRecord) bool {
		return r.Source == service.ImportSourceBatch && r.SessionID == view.ID && r.TransactionCount == 1 &&
			r.Status == domain.ImportStatusSucceeded
	})).Return(nil).Once()

	out, err := svc.Submit(ctx, testPrincipal, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Submitted)
	assert.Equal(t, 1, out.Remaining)

	fixed, err := svc.EditRow(ctx, "user-1", view.ID, bad.Row.ID, domain.FieldQuantity, "4")
	require.NoError(t, err)
	assert.Empty(t, fixed.ValidationErrors)

	api.On("CreateTransactions", mock.Anything, "tok", mock.Anything).Return(&port.CreateOutput{Count: 1}, nil).Once()
	audit.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	out, err = svc.Submit(ctx, testPrincipal, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Remaining)

	_, err = svc.Get(ctx, "user-1", view.ID)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound, "an emptied batch is closed")
	api.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestBatchService_NotFoundAndOwnership(t *testing.T) {
	svc := service.NewBatchService(new(mocks.MockPortfolioAPI), nil, time.Hour, 0, nil)
	ctx := context.Background()
	view, err := svc.Create(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-2", view.ID)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	_, err = svc.AddRow(ctx, "user-1", uuid.New(), manualDraft("AAPL", "1", "1"))
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	assert.ErrorIs(t, svc.RemoveRow(ctx, "user-1", view.ID, "nope"), domain.ErrRowNotFound)

	_, err = svc.Submit(ctx, testPrincipal, view.ID)
	assert.ErrorIs(t, err, domain.ErrNothingToImport)

	require.NoError(t, svc.Discard(ctx, "user-1", view.ID))
	assert.ErrorIs(t, svc.Discard(ctx, "user-1", view.ID), domain.ErrBatchNotFound)
}

func TestBatchService_SubmitFailureAudited(t *testing.T) {
	api := new(mocks.MockPortfolioAPI)
	audit := new(mocks.MockImportAuditRepo)
	svc := service.NewBatchService(api, audit, time.Hour, 0, newClock().Now)
	ctx := context.Background()
	view, _ := svc.Create(ctx, "user-1")
	_, _ = svc.AddRow(ctx, "user-1", view.ID, manualDraft("AAPL", "1", "1"))

	api.On("CreateTransactions", mock.Anything, "tok", mock.Anything).Return(nil, domain.ErrUpstreamUnauthorized)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ImportRecord) bool {
		return r.Status == domain.ImportStatusFailed && r.TransactionCount == 1
	})).Return(nil)

	_, err := svc.Submit(ctx, testPrincipal, view.ID)

	assert.ErrorIs(t, err, domain.ErrImportFailed)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnauthorized)
	got, err := svc.Get(ctx, "user-1", view.ID)
	require.NoError(t, err)
	assert.Len(t, got.Rows, 1)
	audit.AssertExpectations(t)
}

func TestBatchService_Sweep(t *testing.T) {
	clock := newClock()
	svc := service.NewBatchService(new(mocks.MockPortfolioAPI), nil, time.Hour, 0, clock.Now)
	_, _ = svc.Create(context.Background(), "user-1")

	assert.Equal(t, 0, svc.Sweep())
	clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, svc.Sweep())
}
