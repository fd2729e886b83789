package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foliogate/internal/domain"
	"foliogate/internal/pipeline"
	"foliogate/internal/port"
	"foliogate/internal/service"
	"foliogate/mocks"
)

var testPrincipal = domain.Principal{
	Subject: "user-1",
	Email:   "ada@example.com",
	Name:    "Ada",
	Token:   "tok",
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *testClock {
	return &testClock{now: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)}
}

func pngFile(name string) pipeline.RawFile {
	content := "\x89PNG\r\n\x1a\n" + name
	return pipeline.RawFile{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func extracted(symbol string, qty, price int64, currency string) *domain.ExtractResult {
	q, p := decimal.NewFromInt(qty), decimal.NewFromInt(price)
	return &domain.ExtractResult{
		TransactionCount: 1,
		Transactions: []domain.ExtractedTransaction{{
			Symbol:    symbol,
			TradeType: domain.TradeTypeBuy,
			Quantity:  q,
			Price:     p,
			Amount:    q.Mul(p),
			Date:      "2025-06-02",
			Currency:  currency,
		}},
	}
}

func forFile(name string) interface{} {
	return mock.MatchedBy(func(in port.ExtractInput) bool { return in.FileName == name })
}

type importFixture struct {
	api      *mocks.MockPortfolioAPI
	audit    *mocks.MockImportAuditRepo
	storage  *mocks.MockObjectStorage
	notifier *mocks.MockImportNotifier
	clock    *testClock
	svc      service.ImportService
}

func newImportFixture(cfg service.ImportConfig) *importFixture {
	f := &importFixture{
		api:      new(mocks.MockPortfolioAPI),
		audit:    new(mocks.MockImportAuditRepo),
		storage:  new(mocks.MockObjectStorage),
		notifier: new(mocks.MockImportNotifier),
		clock:    newClock(),
	}
	f.svc = service.NewImportServiceWithClock(f.api, f.audit, f.storage, f.notifier, cfg, f.clock.Now)
	return f
}

func (f *importFixture) waitSettled(t *testing.T, id uuid.UUID) *pipeline.Snapshot {
	t.Helper()
	var snap *pipeline.Snapshot
	require.Eventually(t, func() bool {
		s, err := f.svc.Get(context.Background(), testPrincipal.Subject, id)
		if err != nil {
			return false
		}
		snap = s
		return !pipeline.InFlight(s.Files)
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestImportService_StartExtractsInParallel(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", forFile("a.png")).Return(extracted("AAPL", 2, 150, "USD"), nil)
	f.api.On("ExtractTransactions", mock.Anything, "tok", forFile("b.png")).Return(nil, errors.New("No transactions found"))

	snap, err := f.svc.Start(context.Background(), service.StartImportInput{
		Principal: testPrincipal,
		Files:     []pipeline.RawFile{pngFile("a.png"), pngFile("b.png")},
	})
	require.NoError(t, err)
	require.Len(t, snap.Files, 2)
	assert.Equal(t, domain.FileStatusPending, snap.Files[0].Status)

	settled := f.waitSettled(t, snap.ID)
	assert.Equal(t, domain.FileStatusCompleted, settled.Files[0].Status)
	assert.Len(t, settled.Files[0].Drafts, 1)
	assert.Equal(t, domain.FileStatusError, settled.Files[1].Status)
	assert.Equal(t, "No transactions found", settled.Files[1].Error)
	assert.True(t, settled.ReadyForReview)

	require.NoError(t, f.svc.Shutdown(context.Background()))
	f.api.AssertExpectations(t)
}

func TestImportService_StartRejections(t *testing.T) {
	f := newImportFixture(service.ImportConfig{MaxFileSize: 64})

	files := make([]pipeline.RawFile, 11)
	for i := range files {
		files[i] = pngFile("f.png")
	}
	_, err := f.svc.Start(context.Background(), service.StartImportInput{Principal: testPrincipal, Files: files})
	assert.ErrorIs(t, err, domain.ErrTooManyFiles)

	_, err = f.svc.Start(context.Background(), service.StartImportInput{Principal: testPrincipal})
	assert.ErrorIs(t, err, domain.ErrNoFiles)

	big := pngFile("big.png")
	big.Size = 65
	_, err = f.svc.Start(context.Background(), service.StartImportInput{Principal: testPrincipal, Files: []pipeline.RawFile{big}})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	gif := pngFile("anim.gif")
	gif.ContentType = "image/gif"
	_, err = f.svc.Start(context.Background(), service.StartImportInput{Principal: testPrincipal, Files: []pipeline.RawFile{gif}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	text := pipeline.RawFile{
		Name: "notes.txt",
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("plain text")), nil },
	}
	_, err = f.svc.Start(context.Background(), service.StartImportInput{Principal: testPrincipal, Files: []pipeline.RawFile{text}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	f.api.AssertNotCalled(t, "ExtractTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func startSettled(t *testing.T, f *importFixture, names ...string) uuid.UUID {
	t.Helper()
	files := make([]pipeline.RawFile, len(names))
	for i, n := range names {
		files[i] = pngFile(n)
	}
	snap, err := f.svc.Start(context.Background(), service.StartImportInput{Principal: testPrincipal, Files: files})
	require.NoError(t, err)
	f.waitSettled(t, snap.ID)
	return snap.ID
}

func TestImportService_ImportFileSuccess(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", forFile("a.png")).Return(extracted("AAPL", 2, 150, "USD"), nil)
	f.api.On("ExtractTransactions", mock.Anything, "tok", forFile("b.png")).Return(extracted("MSFT", 1, 400, "USD"), nil)
	id := startSettled(t, f, "a.png", "b.png")

	f.api.On("CreateTransactions", mock.Anything, "tok", mock.MatchedBy(func(rows []domain.TransactionDraft) bool {
		return len(rows) == 1 && rows[0].Symbol == "AAPL"
	})).Return(&port.CreateOutput{Message: "1 transaction created", Count: 1}, nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ImportRecord) bool {
		return r.Status == domain.ImportStatusSucceeded && r.FileName == "a.png" && r.TransactionCount == 1 &&
			r.OwnerID == "user-1" && r.SessionID == id && r.Source == service.ImportSourceScreenshot
	})).Return(nil)
	f.notifier.On("SendImportConfirmation", mock.Anything, "ada@example.com", "Ada", mock.MatchedBy(func(s port.ImportSummary) bool {
		return s.FileName == "a.png" && s.TransactionCount == 1 && s.Currency == "USD" && s.TotalAmount.Equal(decimal.NewFromInt(300))
	})).Return(nil)

	outcome, err := f.svc.ImportFile(context.Background(), testPrincipal, id, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Imported)
	assert.Equal(t, 1, outcome.NextFileIndex)
	assert.False(t, outcome.Done)
	assert.Equal(t, "1 transaction created", outcome.Message)

	require.NoError(t, f.svc.Shutdown(context.Background()))
	f.api.AssertExpectations(t)
	f.audit.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestImportService_ImportFileFailureIsRetryable(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", forFile("a.png")).Return(extracted("AAPL", 2, 150, "USD"), nil)
	id := startSettled(t, f, "a.png")

	f.api.On("CreateTransactions", mock.Anything, "tok", mock.Anything).Return(nil, domain.ErrUpstreamUnavailable).Once()
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ImportRecord) bool {
		return r.Status == domain.ImportStatusFailed && r.Error != ""
	})).Return(nil).Once()

	_, err := f.svc.ImportFile(context.Background(), testPrincipal, id, 0)

	assert.ErrorIs(t, err, domain.ErrImportFailed)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	snap, err := f.svc.Get(context.Background(), testPrincipal.Subject, id)
	require.NoError(t, err)
	assert.Equal(t, domain.FileStatusCompleted, snap.Files[0].Status)
	assert.False(t, snap.Files[0].Cleared)
	assert.NotNil(t, snap.Files[0].Result)
	f.notifier.AssertNotCalled(t, "SendImportConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.audit.AssertExpectations(t)
}

func TestImportService_AuditFailureDoesNotFailImport(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 1, 1, "USD"), nil)
	id := startSettled(t, f, "a.png")

	f.api.On("CreateTransactions", mock.Anything, "tok", mock.Anything).Return(&port.CreateOutput{Count: 1}, nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	f.notifier.On("SendImportConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses throttled"))

	outcome, err := f.svc.ImportFile(context.Background(), testPrincipal, id, 0)

	require.NoError(t, err)
	assert.True(t, outcome.Done)
	require.NoError(t, f.svc.Shutdown(context.Background()))
}

func TestImportService_OwnerIsolation(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 1, 1, "USD"), nil)
	id := startSettled(t, f, "a.png")

	_, err := f.svc.Get(context.Background(), "someone-else", id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = f.svc.Review(context.Background(), "someone-else", id, 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.Clear(context.Background(), "someone-else", id), domain.ErrSessionNotFound)
	_, err = f.svc.Get(context.Background(), testPrincipal.Subject, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestImportService_ReviewEditExclude(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 2, 150, "USD"), nil)
	id := startSettled(t, f, "a.png")

	edit, err := f.svc.EditRow(context.Background(), service.EditRowInput{
		OwnerID: testPrincipal.Subject, SessionID: id, FileIndex: 0, RowID: "0-0",
		Field: domain.FieldQuantity, Value: "3",
	})
	require.NoError(t, err)
	assert.True(t, edit.Row.Amount.Equal(decimal.NewFromInt(450)))
	assert.Empty(t, edit.ValidationErrors)

	require.NoError(t, f.svc.ExcludeRow(context.Background(), testPrincipal.Subject, id, 0, "0-0"))
	view, err := f.svc.Review(context.Background(), testPrincipal.Subject, id, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, view.AcceptedCount)

	_, err = f.svc.ImportFile(context.Background(), testPrincipal, id, 0)
	assert.ErrorIs(t, err, domain.ErrNothingToImport)
	f.api.AssertNotCalled(t, "CreateTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportService_ClearClosesSubscribers(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 1, 1, "USD"), nil)
	id := startSettled(t, f, "a.png")

	events, cancel, err := f.svc.Subscribe(context.Background(), testPrincipal.Subject, id)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, f.svc.Clear(context.Background(), testPrincipal.Subject, id))

	ev, ok := <-events
	require.True(t, ok)
	assert.Equal(t, domain.EventPipelineCleared, ev.Type)
	_, ok = <-events
	assert.False(t, ok)
	_, err = f.svc.Get(context.Background(), testPrincipal.Subject, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestImportService_SweepExpiresIdleSessions(t *testing.T) {
	f := newImportFixture(service.ImportConfig{SessionTTL: time.Hour})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 1, 1, "USD"), nil)
	id := startSettled(t, f, "a.png")

	f.clock.Advance(30 * time.Minute)
	assert.Equal(t, 0, f.svc.Sweep())

	f.clock.Advance(61 * time.Minute)
	assert.Equal(t, 1, f.svc.Sweep())
	_, err := f.svc.Get(context.Background(), testPrincipal.Subject, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestImportService_SessionLimitEvictsOldest(t *testing.T) {
	f := newImportFixture(service.ImportConfig{MaxSessions: 1})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 1, 1, "USD"), nil)
	first := startSettled(t, f, "a.png")
	f.clock.Advance(time.Second)
	second := startSettled(t, f, "b.png")

	_, err := f.svc.Get(context.Background(), testPrincipal.Subject, first)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = f.svc.Get(context.Background(), testPrincipal.Subject, second)
	assert.NoError(t, err)
}

func TestImportService_ArchivesOriginals(t *testing.T) {
	f := newImportFixture(service.ImportConfig{ArchiveBucket: "archive", PresignExpiry: 600})
	f.api.On("ExtractTransactions", mock.Anything, "tok", mock.Anything).Return(extracted("AAPL", 1, 1, "USD"), nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "archive" && strings.HasPrefix(in.Key, "imports/user-1/") &&
			strings.HasSuffix(in.Key, "/0-a.png") && in.ContentType == "image/png"
	})).Return(&port.UploadOutput{Location: "s3://archive/x"}, nil)

	id := startSettled(t, f, "a.png")
	require.Eventually(t, func() bool {
		snap, err := f.svc.Get(context.Background(), testPrincipal.Subject, id)
		return err == nil && snap.Files[0].File.ArchiveKey != ""
	}, 2*time.Second, 5*time.Millisecond)

	snap, _ := f.svc.Get(context.Background(), testPrincipal.Subject, id)
	key := snap.Files[0].File.ArchiveKey
	f.storage.On("GetPresignedURL", mock.Anything, "archive", key, int64(600)).Return("https://signed/a.png", nil)
	f.storage.On("Delete", mock.Anything, "archive", key).Return(nil)

	view, err := f.svc.Review(context.Background(), testPrincipal.Subject, id, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://signed/a.png", view.PreviewURL)

	require.NoError(t, f.svc.DiscardFile(context.Background(), testPrincipal.Subject, id, 0))
	f.storage.AssertExpectations(t)
}

func TestImportService_History(t *testing.T) {
	f := newImportFixture(service.ImportConfig{})
	records := []domain.ImportRecord{{ID: uuid.New(), FileName: "a.png"}}
	f.audit.On("ListByOwner", mock.Anything, "user-1", 0, 20).Return(records, 1, nil)

	got, total, err := f.svc.History(context.Background(), "user-1", 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, records, got)
}

func TestImportService_HistoryWithoutRepo(t *testing.T) {
	svc := service.NewImportService(new(mocks.MockPortfolioAPI), nil, nil, nil, service.ImportConfig{})
	got, total, err := svc.History(context.Background(), "user-1", 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, got)
}
