package pipeline

import (
	"context"
	"fmt"

	"foliogate/internal/domain"
	"foliogate/internal/port"
)

// SubmitFunc sends accepted rows to the portfolio service.
type SubmitFunc func(ctx context.Context, rows []domain.TransactionDraft) (*port.CreateOutput, error)

// ImportOutcome tells the caller where the review flow goes next.
// NextFileIndex is -1 when no completed file remains; Done is set when
// nothing is left to review or still extracting.
type ImportOutcome struct {
	FileIndex     int    `json:"file_index"`
	FileName      string `json:"file_name"`
	Imported      int    `json:"imported"`
	Skipped       int    `json:"skipped"`
	Message       string `json:"message"`
	NextFileIndex int    `json:"next_file_index"`
	Done          bool   `json:"done"`
}

// Import submits the accepted rows of one completed file. On success the
// slot is cleared and the next completed file is selected. On failure the
// state is left untouched so the same batch can be retried.
func (s *State) Import(ctx context.Context, index int, submit SubmitFunc) (*ImportOutcome, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.files) {
		s.mu.Unlock()
		return nil, domain.ErrFileIndexOutOfRange
	}
	f := s.files[index]
	if f.Cleared {
		s.mu.Unlock()
		return nil, domain.ErrFileCleared
	}
	if f.Status != domain.FileStatusCompleted {
		s.mu.Unlock()
		return nil, domain.ErrFileNotCompleted
	}
	if s.importing[index] {
		s.mu.Unlock()
		return nil, domain.ErrImportInProgress
	}
	rows := s.acceptedRows(index)
	if len(rows) == 0 {
		s.mu.Unlock()
		return nil, domain.ErrNothingToImport
	}
	skipped := len(f.Drafts) - len(rows)
	generation := s.generation
	s.importing[index] = true
	s.mu.Unlock()

	out, err := submit(ctx, rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation == s.generation {
		delete(s.importing, index)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImportFailed, err)
	}

	outcome := &ImportOutcome{
		FileIndex:     index,
		FileName:      f.File.Name,
		Imported:      len(rows),
		Skipped:       skipped,
		NextFileIndex: -1,
	}
	if out != nil {
		outcome.Message = out.Message
		if out.Count > 0 {
			outcome.Imported = out.Count
		}
	}

	if generation != s.generation {
		outcome.Done = true
		return outcome, nil
	}
	s.clearSlot(index)
	outcome.NextFileIndex = NextCompleted(s.files, index)
	outcome.Done = outcome.NextFileIndex < 0 && !InFlight(s.files)
	return outcome, nil
}
