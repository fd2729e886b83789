package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/port"
)

func okSubmit(calls *[][]domain.TransactionDraft) pipeline.SubmitFunc {
	return func(_ context.Context, rows []domain.TransactionDraft) (*port.CreateOutput, error) {
		*calls = append(*calls, rows)
		return &port.CreateOutput{Message: "Transactions created", Count: len(rows)}, nil
	}
}

func TestImport_FailureLeavesStateUntouched(t *testing.T) {
	s := newRegistered(t, 2)
	complete(t, s, 0, result(buyTx("AAPL", 1, 100, "2024-01-02")))
	before := s.Snapshot()

	_, err := s.Import(context.Background(), 0, func(context.Context, []domain.TransactionDraft) (*port.CreateOutput, error) {
		return nil, errors.New("connection reset")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrImportFailed)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, before, s.Snapshot())

	var calls [][]domain.TransactionDraft
	out, err := s.Import(context.Background(), 0, okSubmit(&calls))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
}

func TestImport_AdvancesToNextCompletedFile(t *testing.T) {
	s := newRegistered(t, 4)
	complete(t, s, 0, result(buyTx("AAPL", 1, 100, "2024-01-02")))
	fail(t, s, 1, "blurry")
	complete(t, s, 2, result(buyTx("MSFT", 1, 100, "2024-01-02")))
	complete(t, s, 3, result(buyTx("NVDA", 1, 100, "2024-01-02")))

	var calls [][]domain.TransactionDraft
	out, err := s.Import(context.Background(), 2, okSubmit(&calls))
	require.NoError(t, err)
	assert.Equal(t, 3, out.NextFileIndex)
	assert.False(t, out.Done)
	assert.Equal(t, "Transactions created", out.Message)

	out, err = s.Import(context.Background(), 3, okSubmit(&calls))
	require.NoError(t, err)
	assert.Equal(t, 0, out.NextFileIndex, "wraps to earlier slots")

	out, err = s.Import(context.Background(), 0, okSubmit(&calls))
	require.NoError(t, err)
	assert.Equal(t, -1, out.NextFileIndex)
	assert.True(t, out.Done)
	assert.Len(t, calls, 3)

	f, _ := s.File(2)
	assert.True(t, f.Cleared)
	assert.Empty(t, f.Drafts)
}

func TestImport_NotDoneWhileOthersStillExtracting(t *testing.T) {
	s := newRegistered(t, 2)
	complete(t, s, 0, result(buyTx("AAPL", 1, 100, "2024-01-02")))

	var calls [][]domain.TransactionDraft
	out, err := s.Import(context.Background(), 0, okSubmit(&calls))

	require.NoError(t, err)
	assert.Equal(t, -1, out.NextFileIndex)
	assert.False(t, out.Done)
}

func TestImport_SkipsExcludedAndInvalidRows(t *testing.T) {
	s := newRegistered(t, 1)
	complete(t, s, 0, result(
		buyTx("AAPL", 1, 100, "2024-01-02"),
		buyTx("MSFT", 0, 100, "2024-01-02"),
		buyTx("NVDA", 1, 100, "2024-01-02"),
	))
	require.NoError(t, s.ExcludeRow(0, "0-2"))

	var calls [][]domain.TransactionDraft
	out, err := s.Import(context.Background(), 0, okSubmit(&calls))

	require.NoError(t, err)
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 1)
	assert.Equal(t, "AAPL", calls[0][0].Symbol)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 2, out.Skipped)
	assert.True(t, out.Done)
}

func TestImport_Preconditions(t *testing.T) {
	s := newRegistered(t, 3)
	complete(t, s, 0, result())
	fail(t, s, 1, "bad")
	var calls [][]domain.TransactionDraft

	_, err := s.Import(context.Background(), 0, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrNothingToImport)

	_, err = s.Import(context.Background(), 1, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrFileNotCompleted)

	_, err = s.Import(context.Background(), 2, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrFileNotCompleted)

	_, err = s.Import(context.Background(), 3, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrFileIndexOutOfRange)

	require.NoError(t, s.DiscardFile(0))
	_, err = s.Import(context.Background(), 0, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrFileCleared)
	assert.Empty(t, calls)
}

func TestImport_RejectsConcurrentSubmitOfSameFile(t *testing.T) {
	s := newRegistered(t, 1)
	complete(t, s, 0, result(buyTx("AAPL", 1, 100, "2024-01-02")))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := s.Import(context.Background(), 0, func(context.Context, []domain.TransactionDraft) (*port.CreateOutput, error) {
			close(entered)
			<-release
			return &port.CreateOutput{}, nil
		})
		done <- err
	}()
	<-entered

	var calls [][]domain.TransactionDraft
	_, err := s.Import(context.Background(), 0, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrImportInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestImport_ClearDuringSubmitReportsDone(t *testing.T) {
	s := newRegistered(t, 2)
	complete(t, s, 0, result(buyTx("AAPL", 1, 100, "2024-01-02")))
	complete(t, s, 1, result(buyTx("MSFT", 1, 100, "2024-01-02")))

	out, err := s.Import(context.Background(), 0, func(context.Context, []domain.TransactionDraft) (*port.CreateOutput, error) {
		s.Clear()
		return &port.CreateOutput{}, nil
	})

	require.NoError(t, err)
	assert.True(t, out.Done)
	assert.Equal(t, -1, out.NextFileIndex)
	assert.Empty(t, s.Snapshot().Files)
}

func TestImport_RejectedQuantitySurvivesTradeTypeChange(t *testing.T) {
	s := newRegistered(t, 1)
	complete(t, s, 0, result(buyTx("AAPL", 2, 3, "2024-01-02")))

	_, errs, err := s.EditField(0, "0-0", domain.FieldQuantity, "two")
	require.NoError(t, err)
	require.Len(t, errs, 1)

	_, errs, err = s.EditField(0, "0-0", domain.FieldTradeType, "Sell")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, domain.FieldQuantity, errs[0].Field)

	var calls [][]domain.TransactionDraft
	_, err = s.Import(context.Background(), 0, okSubmit(&calls))
	assert.ErrorIs(t, err, domain.ErrNothingToImport)
	assert.Empty(t, calls)
}
