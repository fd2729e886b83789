package pipeline_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
)

func TestUpdateStatus_OutOfOrderLastWriteWins(t *testing.T) {
	s := newRegistered(t, 3)
	gen := s.Generation()

	updates := []struct {
		index int
		u     pipeline.StatusUpdate
	}{
		{2, pipeline.StatusUpdate{Status: domain.FileStatusCompleted, Result: result(buyTx("AAPL", 1, 100, "2024-01-02"))}},
		{0, pipeline.StatusUpdate{Status: domain.FileStatusError, Error: "timeout"}},
		{1, pipeline.StatusUpdate{Status: domain.FileStatusCompleted, Result: result()}},
		{0, pipeline.StatusUpdate{Status: domain.FileStatusCompleted, Result: result(buyTx("MSFT", 2, 50, "2024-01-03"))}},
		{2, pipeline.StatusUpdate{Status: domain.FileStatusError, Error: "late failure"}},
	}
	for _, up := range updates {
		require.NoError(t, s.UpdateStatus(gen, up.index, up.u))
	}

	snap := s.Snapshot()
	assert.Equal(t, domain.FileStatusCompleted, snap.Files[0].Status)
	assert.Empty(t, snap.Files[0].Error)
	assert.Len(t, snap.Files[0].Drafts, 1)
	assert.Equal(t, domain.FileStatusCompleted, snap.Files[1].Status)
	assert.Equal(t, domain.FileStatusError, snap.Files[2].Status)
	assert.Equal(t, "late failure", snap.Files[2].Error)
	assert.Nil(t, snap.Files[2].Result)
	for _, f := range snap.Files {
		assert.Equal(t, 100, f.Progress)
	}
}

func TestUpdateStatus_ProgressRules(t *testing.T) {
	s := newRegistered(t, 1)
	gen := s.Generation()

	p := 40
	require.NoError(t, s.UpdateStatus(gen, 0, pipeline.StatusUpdate{Status: domain.FileStatusProcessing, Progress: &p}))
	f, _ := s.File(0)
	assert.Equal(t, 40, f.Progress)

	require.NoError(t, s.UpdateStatus(gen, 0, pipeline.StatusUpdate{Status: domain.FileStatusProcessing}))
	f, _ = s.File(0)
	assert.Equal(t, 40, f.Progress)

	low := 5
	require.NoError(t, s.UpdateStatus(gen, 0, pipeline.StatusUpdate{Status: domain.FileStatusError, Error: "boom", Progress: &low}))
	f, _ = s.File(0)
	assert.Equal(t, 100, f.Progress)
}

func TestUpdateStatus_RejectsLeavingTerminal(t *testing.T) {
	s := newRegistered(t, 1)
	complete(t, s, 0, result())

	err := s.UpdateStatus(s.Generation(), 0, pipeline.StatusUpdate{Status: domain.FileStatusProcessing})

	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
	f, _ := s.File(0)
	assert.Equal(t, domain.FileStatusCompleted, f.Status)
}

func TestUpdateStatus_IndexAndStatusChecks(t *testing.T) {
	s := newRegistered(t, 2)
	gen := s.Generation()

	assert.ErrorIs(t, s.UpdateStatus(gen, 2, pipeline.StatusUpdate{Status: domain.FileStatusCompleted}), domain.ErrFileIndexOutOfRange)
	assert.ErrorIs(t, s.UpdateStatus(gen, -1, pipeline.StatusUpdate{Status: domain.FileStatusCompleted}), domain.ErrFileIndexOutOfRange)
	assert.ErrorIs(t, s.UpdateStatus(gen, 0, pipeline.StatusUpdate{Status: "done"}), domain.ErrInvalidStatus)
}

func TestUpdateStatus_StaleGenerationIsNoop(t *testing.T) {
	s := newRegistered(t, 2)
	gen := s.Generation()
	events, cancel := s.Subscribe()
	defer cancel()

	s.Clear()
	err := s.UpdateStatus(gen, 0, pipeline.StatusUpdate{Status: domain.FileStatusCompleted, Result: result()})

	assert.NoError(t, err)
	assert.Empty(t, s.Snapshot().Files)
	got := drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, domain.EventPipelineCleared, got[0].Type)
}

func TestUpdateStatus_ClearedSlotIsNoop(t *testing.T) {
	s := newRegistered(t, 2)
	require.NoError(t, s.DiscardFile(1))

	require.NoError(t, s.UpdateStatus(s.Generation(), 1, pipeline.StatusUpdate{Status: domain.FileStatusCompleted, Result: result()}))

	f, _ := s.File(1)
	assert.True(t, f.Cleared)
	assert.Equal(t, domain.FileStatusPending, f.Status)
}

func TestUpdateStatus_CompletionValidatesExtractedRows(t *testing.T) {
	s := newRegistered(t, 1)
	future := buyTx("AAPL", 1, 10, "2026-12-01")

	complete(t, s, 0, result(future, buyTx("MSFT", 1, 10, "2026-01-05")))

	errs := s.FileErrors(0)
	require.Len(t, errs, 1)
	assert.Equal(t, domain.ValidationKey{FileIndex: 0, RowID: "0-0", Field: domain.FieldDate}, errs[0].ValidationKey)
	assert.Equal(t, "Date cannot be in the future", errs[0].Message)
}

func TestNavigation_FiresOnceUnderConcurrentCompletions(t *testing.T) {
	s := newRegistered(t, 8)
	gen := s.Generation()
	events, cancel := s.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.UpdateStatus(gen, i, pipeline.StatusUpdate{Status: domain.FileStatusCompleted, Result: result()})
		}(i)
	}
	wg.Wait()

	got := drain(events)
	assert.Equal(t, 1, countEvents(got, domain.EventReviewReady))
	assert.Equal(t, 8, countEvents(got, domain.EventFileStatus))
	assert.True(t, s.Snapshot().Navigated)
}

func TestNavigation_FirstCompletionBeforeOthersFinish(t *testing.T) {
	s := newRegistered(t, 3)
	events, cancel := s.Subscribe()
	defer cancel()

	complete(t, s, 1, result(buyTx("AAPL", 1, 1, "2024-01-01")))
	assert.Equal(t, 1, countEvents(drain(events), domain.EventReviewReady))

	complete(t, s, 0, result())
	fail(t, s, 2, "bad image")
	assert.Equal(t, 0, countEvents(drain(events), domain.EventReviewReady))
}

func TestAllFilesError_StillReadyWithEmptyReview(t *testing.T) {
	s := newRegistered(t, 2)
	events, cancel := s.Subscribe()
	defer cancel()

	fail(t, s, 0, "unreadable screenshot")
	assert.Equal(t, 0, countEvents(drain(events), domain.EventReviewReady))
	fail(t, s, 1, "service timeout")

	assert.Equal(t, 1, countEvents(drain(events), domain.EventReviewReady))
	snap := s.Snapshot()
	assert.True(t, snap.ReadyForReview)

	view, err := s.Review(0)
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.NotNil(t, view.Rows)
	assert.Equal(t, "unreadable screenshot", view.Error)
	assert.Equal(t, 0, view.AcceptedCount)
}

func TestSubscribe_CancelAndClose(t *testing.T) {
	s := newRegistered(t, 1)
	events, cancel := s.Subscribe()
	cancel()
	cancel()
	_, ok := <-events
	assert.False(t, ok)

	events2, _ := s.Subscribe()
	s.Close()
	_, ok = <-events2
	assert.False(t, ok)

	events3, _ := s.Subscribe()
	_, ok = <-events3
	assert.False(t, ok)
}

func TestSubscribe_SlowSubscriberStillGetsReviewReady(t *testing.T) {
	s := newRegistered(t, 2)
	events, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		p := i % 99
		require.NoError(t, s.UpdateStatus(s.Generation(), 0, pipeline.StatusUpdate{
			Status:   domain.FileStatusProcessing,
			Progress: &p,
		}))
	}
	complete(t, s, 1, result(buyTx("AAPL", 1, 100, "2024-01-02")))

	got := drain(events)
	assert.Equal(t, 1, countEvents(got, domain.EventReviewReady))
	assert.Less(t, countEvents(got, domain.EventFileStatus), 102)
}
