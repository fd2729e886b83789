package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foliogate/internal/domain"
	"foliogate/internal/moneyfmt"
	"foliogate/internal/pipeline"
	"foliogate/internal/port"
)

// Import sources recorded in the audit log.
const (
	ImportSourceScreenshot = "screenshot"
	ImportSourceBatch      = "batch"
)

// ImportConfig holds settings for the import pipeline service.
type ImportConfig struct {
	MaxFiles      int
	MaxFileSize   int64
	FileTimeout   time.Duration
	Concurrency   int
	SessionTTL    time.Duration
	MaxSessions   int
	ArchiveBucket string
	PresignExpiry int64
}

// StartImportInput is the DTO for starting an import session.
type StartImportInput struct {
	Principal domain.Principal
	Files     []pipeline.RawFile
}

// EditRowInput is the DTO for a single field edit on the review screen.
type EditRowInput struct {
	OwnerID   string
	SessionID uuid.UUID
	FileIndex int
	RowID     string
	Field     domain.Field
	Value     string
}

// RowEdit is the updated row and its current validation errors.
type RowEdit struct {
	Row              domain.TransactionDraft  `json:"row"`
	ValidationErrors []domain.ValidationError `json:"validation_errors"`
}

// ImportService drives upload, extraction, review and import of broker
// statement screenshots.
type ImportService interface {
	Start(ctx context.Context, input StartImportInput) (*pipeline.Snapshot, error)
	Get(ctx context.Context, ownerID string, sessionID uuid.UUID) (*pipeline.Snapshot, error)
	Review(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int) (*pipeline.ReviewView, error)
	EditRow(ctx context.Context, input EditRowInput) (*RowEdit, error)
	ExcludeRow(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int, rowID string) error
	ImportFile(ctx context.Context, principal domain.Principal, sessionID uuid.UUID, fileIndex int) (*pipeline.ImportOutcome, error)
	DiscardFile(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int) error
	Clear(ctx context.Context, ownerID string, sessionID uuid.UUID) error
	Subscribe(ctx context.Context, ownerID string, sessionID uuid.UUID) (<-chan domain.Event, func(), error)
	History(ctx context.Context, ownerID string, offset, limit int) ([]domain.ImportRecord, int, error)
	Sweep() int
	Shutdown(ctx context.Context) error
}

type importService struct {
	api       port.PortfolioAPI
	auditRepo port.ImportAuditRepository
	storage   port.ObjectStorage
	notifier  port.ImportNotifier
	cfg       ImportConfig

	dispatcher *pipeline.Dispatcher
	sessions   *sessionStore[*pipeline.State]
	now        func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewImportService creates a new ImportService implementation. auditRepo,
// storage and notifier may be nil.
func NewImportService(
	api port.PortfolioAPI,
	auditRepo port.ImportAuditRepository,
	storage port.ObjectStorage,
	notifier port.ImportNotifier,
	cfg ImportConfig,
) ImportService {
	return newImportService(api, auditRepo, storage, notifier, cfg, time.Now)
}

// NewImportServiceWithClock is NewImportService with an injectable clock (for testing).
func NewImportServiceWithClock(
	api port.PortfolioAPI,
	auditRepo port.ImportAuditRepository,
	storage port.ObjectStorage,
	notifier port.ImportNotifier,
	cfg ImportConfig,
	now func() time.Time,
) ImportService {
	return newImportService(api, auditRepo, storage, notifier, cfg, now)
}

func newImportService(
	api port.PortfolioAPI,
	auditRepo port.ImportAuditRepository,
	storage port.ObjectStorage,
	notifier port.ImportNotifier,
	cfg ImportConfig,
	now func() time.Time,
) *importService {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = pipeline.MaxFiles
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &importService{
		api:        api,
		auditRepo:  auditRepo,
		storage:    storage,
		notifier:   notifier,
		cfg:        cfg,
		dispatcher: &pipeline.Dispatcher{Timeout: cfg.FileTimeout, Concurrency: cfg.Concurrency},
		sessions:   newSessionStore[*pipeline.State](cfg.MaxSessions, domain.ErrSessionNotFound, now),
		now:        now,
		baseCtx:    ctx,
		cancel:     cancel,
	}
}

func (s *importService) Start(ctx context.Context, input StartImportInput) (*pipeline.Snapshot, error) {
	for _, f := range input.Files {
		if s.cfg.MaxFileSize > 0 && f.Size > s.cfg.MaxFileSize {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileTooLarge, f.Name)
		}
		if !allowedDeclaredType(f.ContentType) {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFileType, f.Name, f.ContentType)
		}
	}

	state := pipeline.NewState(uuid.New(), pipeline.WithClock(s.now), pipeline.WithMaxFiles(s.cfg.MaxFiles))
	if err := state.Register(input.Files); err != nil {
		return nil, err
	}

	snap := state.Snapshot()
	for _, f := range snap.Files {
		if _, ok := domain.AllowedContentTypes[f.File.ContentType]; !ok {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFileType, f.File.Name, f.File.ContentType)
		}
	}

	for _, old := range s.sessions.put(state.ID(), input.Principal.Subject, state) {
		log.Printf("importService.Start: evicting session %s (session limit %d reached)", old.ID(), s.cfg.MaxSessions)
		old.Close()
	}

	log.Printf("importService.Start: session %s registered %d files for %s", state.ID(), len(snap.Files), input.Principal.Subject)

	generation := state.Generation()
	s.archive(state, generation, input.Principal.Subject, snap.Files)

	token := input.Principal.Token
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		start := time.Now()
		state.Extract(s.baseCtx, s.dispatcher, pipeline.NewAPIExtractor(s.api, token))
		log.Printf("importService.Start: session %s extraction settled in %s", state.ID(), time.Since(start))
	}()

	return &snap, nil
}

func allowedDeclaredType(ct string) bool {
	if ct == "" || ct == "application/octet-stream" {
		return true
	}
	_, ok := domain.AllowedContentTypes[ct]
	return ok
}

// archive copies the originals to object storage in the background. Failures
// are logged only.
func (s *importService) archive(state *pipeline.State, generation uint64, owner string, files []domain.FileProcessingState) {
	if !s.archiving() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		for i, f := range files {
			contentType, data, err := pipeline.DecodeDataURL(f.File.DataURL)
			if err != nil {
				log.Printf("importService.archive: decoding %s: %v", f.File.Name, err)
				continue
			}
			key := fmt.Sprintf("imports/%s/%s/%d-%s", owner, state.ID(), i, f.File.Name)
			if _, err := s.storage.Upload(ctx, port.UploadInput{
				Bucket:      s.cfg.ArchiveBucket,
				Key:         key,
				Body:        bytes.NewReader(data),
				ContentType: contentType,
				Size:        int64(len(data)),
			}); err != nil {
				log.Printf("importService.archive: uploading %s for session %s: %v", f.File.Name, state.ID(), err)
				continue
			}
			state.SetArchiveKey(generation, i, key)
		}
	}()
}

func (s *importService) archiving() bool {
	return s.storage != nil && s.cfg.ArchiveBucket != ""
}

func (s *importService) Get(_ context.Context, ownerID string, sessionID uuid.UUID) (*pipeline.Snapshot, error) {
	state, err := s.sessions.get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	snap := state.Snapshot()
	return &snap, nil
}

func (s *importService) Review(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int) (*pipeline.ReviewView, error) {
	state, err := s.sessions.get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	view, err := state.Review(fileIndex)
	if err != nil {
		return nil, err
	}
	if s.archiving() && view.File.ArchiveKey != "" {
		expiry := s.cfg.PresignExpiry
		if expiry <= 0 {
			expiry = 3600
		}
		url, err := s.storage.GetPresignedURL(ctx, s.cfg.ArchiveBucket, view.File.ArchiveKey, expiry)
		if err != nil {
			log.Printf("importService.Review: presigning %s: %v", view.File.ArchiveKey, err)
		} else {
			view.PreviewURL = url
		}
	}
	return view, nil
}

func (s *importService) EditRow(_ context.Context, input EditRowInput) (*RowEdit, error) {
	state, err := s.sessions.get(input.SessionID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	row, errs, err := state.EditField(input.FileIndex, input.RowID, input.Field, input.Value)
	if err != nil {
		return nil, err
	}
	return &RowEdit{Row: *row, ValidationErrors: errs}, nil
}

func (s *importService) ExcludeRow(_ context.Context, ownerID string, sessionID uuid.UUID, fileIndex int, rowID string) error {
	state, err := s.sessions.get(sessionID, ownerID)
	if err != nil {
		return err
	}
	return state.ExcludeRow(fileIndex, rowID)
}

func (s *importService) ImportFile(ctx context.Context, principal domain.Principal, sessionID uuid.UUID, fileIndex int) (*pipeline.ImportOutcome, error) {
	state, err := s.sessions.get(sessionID, principal.Subject)
	if err != nil {
		return nil, err
	}
	file, err := state.File(fileIndex)
	if err != nil {
		return nil, err
	}

	var submitted []domain.TransactionDraft
	outcome, err := state.Import(ctx, fileIndex, func(ctx context.Context, rows []domain.TransactionDraft) (*port.CreateOutput, error) {
		submitted = rows
		return s.api.CreateTransactions(ctx, principal.Token, rows)
	})
	if err != nil {
		if errors.Is(err, domain.ErrImportFailed) {
			log.Printf("importService.ImportFile: session %s file %d: %v", sessionID, fileIndex, err)
			s.audit(ctx, &domain.ImportRecord{
				SessionID:        sessionID,
				OwnerID:          principal.Subject,
				Source:           ImportSourceScreenshot,
				FileName:         file.File.Name,
				TransactionCount: len(submitted),
				Status:           domain.ImportStatusFailed,
				Error:            err.Error(),
			})
		}
		return nil, err
	}

	log.Printf("importService.ImportFile: session %s file %d imported %d rows (%d skipped)",
		sessionID, fileIndex, outcome.Imported, outcome.Skipped)
	s.audit(ctx, &domain.ImportRecord{
		SessionID:        sessionID,
		OwnerID:          principal.Subject,
		Source:           ImportSourceScreenshot,
		FileName:         outcome.FileName,
		TransactionCount: outcome.Imported,
		Status:           domain.ImportStatusSucceeded,
	})
	s.notify(principal, outcome.FileName, submitted)
	return outcome, nil
}

// DiscardFile clears one slot and removes its archived original.
func (s *importService) DiscardFile(ctx context.Context, ownerID string, sessionID uuid.UUID, fileIndex int) error {
	state, err := s.sessions.get(sessionID, ownerID)
	if err != nil {
		return err
	}
	file, err := state.File(fileIndex)
	if err != nil {
		return err
	}
	if err := state.DiscardFile(fileIndex); err != nil {
		return err
	}
	if s.archiving() && file.File.ArchiveKey != "" {
		if err := s.storage.Delete(ctx, s.cfg.ArchiveBucket, file.File.ArchiveKey); err != nil {
			log.Printf("importService.DiscardFile: deleting archived %s: %v", file.File.ArchiveKey, err)
		}
	}
	return nil
}

func (s *importService) Clear(_ context.Context, ownerID string, sessionID uuid.UUID) error {
	state, err := s.sessions.remove(sessionID, ownerID)
	if err != nil {
		return err
	}
	state.Clear()
	state.Close()
	log.Printf("importService.Clear: session %s cleared", sessionID)
	return nil
}

func (s *importService) Subscribe(_ context.Context, ownerID string, sessionID uuid.UUID) (<-chan domain.Event, func(), error) {
	state, err := s.sessions.get(sessionID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := state.Subscribe()
	return ch, cancel, nil
}

func (s *importService) History(ctx context.Context, ownerID string, offset, limit int) ([]domain.ImportRecord, int, error) {
	if s.auditRepo == nil {
		return []domain.ImportRecord{}, 0, nil
	}
	return s.auditRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// Sweep drops sessions idle for longer than the session TTL.
func (s *importService) Sweep() int {
	expired := s.sessions.sweep(s.cfg.SessionTTL)
	for _, st := range expired {
		st.Close()
	}
	if len(expired) > 0 {
		log.Printf("importService.Sweep: expired %d sessions, %d active", len(expired), s.sessions.count())
	}
	return len(expired)
}

// Shutdown waits for background extraction and notification goroutines.
// When ctx expires first, in-flight extractions are canceled.
func (s *importService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-done
		return ctx.Err()
	}
}

func (s *importService) audit(ctx context.Context, rec *domain.ImportRecord) {
	if s.auditRepo == nil {
		return
	}
	rec.ID = uuid.New()
	rec.CreatedAt = s.now().UTC()
	if err := s.auditRepo.Create(ctx, rec); err != nil {
		log.Printf("importService.audit: failed to record import of %s: %v", rec.FileName, err)
	}
}

func (s *importService) notify(principal domain.Principal, fileName string, rows []domain.TransactionDraft) {
	if s.notifier == nil || principal.Email == "" {
		return
	}
	summary := summarize(fileName, rows)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.SendImportConfirmation(ctx, principal.Email, principal.Name, summary); err != nil {
			log.Printf("importService.notify: failed to send confirmation to %s: %v", principal.Email, err)
		}
	}()
}

func summarize(fileName string, rows []domain.TransactionDraft) port.ImportSummary {
	amounts := make([]decimal.Decimal, len(rows))
	currencies := make([]string, len(rows))
	for i, r := range rows {
		amounts[i] = r.Amount
		currencies[i] = r.Currency
	}
	summary := port.ImportSummary{FileName: fileName, TransactionCount: len(rows)}
	if total, currency, ok := moneyfmt.Total(amounts, currencies); ok {
		summary.TotalAmount = total
		summary.Currency = currency
	}
	return summary
}
