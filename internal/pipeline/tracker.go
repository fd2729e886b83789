package pipeline

import (
	"fmt"

	"foliogate/internal/domain"
)

// StatusUpdate is one transition request for a file slot. A nil Progress
// keeps the current value for non-terminal statuses.
type StatusUpdate struct {
	Status   domain.FileStatus
	Result   *domain.ExtractResult
	Error    string
	Progress *int
}

// UpdateStatus applies u to the file at index. Updates started under an
// older generation, or aimed at a cleared slot, are ignored. Terminal to
// terminal transitions overwrite (last write wins); terminal to
// non-terminal transitions are rejected.
func (s *State) UpdateStatus(generation uint64, index int, u StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return nil
	}
	if index < 0 || index >= len(s.files) {
		return domain.ErrFileIndexOutOfRange
	}
	if !u.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, u.Status)
	}

	f := &s.files[index]
	if f.Cleared {
		return nil
	}
	if f.Status.IsTerminal() && !u.Status.IsTerminal() {
		return fmt.Errorf("%w: file %d is %s", domain.ErrTerminalStatus, index, f.Status)
	}

	f.Status = u.Status
	switch {
	case u.Status.IsTerminal():
		f.Progress = 100
	case u.Progress != nil:
		f.Progress = clampProgress(*u.Progress)
	}

	switch u.Status {
	case domain.FileStatusCompleted:
		f.Error = ""
		if u.Result != nil {
			f.Result = u.Result
			f.Drafts = draftsFromResult(index, u.Result)
			f.Excluded = nil
			s.errs.ClearFile(index)
			for i := range f.Drafts {
				ValidateDraft(&f.Drafts[i], index, s.errs, s.now())
			}
		}
	case domain.FileStatusError:
		f.Error = u.Error
		f.Result = nil
		f.Drafts = nil
		f.Excluded = nil
		s.errs.ClearFile(index)
	}

	idx := index
	s.publish(domain.Event{
		Type:      domain.EventFileStatus,
		FileIndex: &idx,
		Status:    f.Status,
		Progress:  f.Progress,
		Error:     f.Error,
	})

	if ReadyForReview(s.files) && s.nav.Fire() {
		s.publish(domain.Event{Type: domain.EventReviewReady})
	}
	return nil
}

func draftsFromResult(fileIndex int, r *domain.ExtractResult) []domain.TransactionDraft {
	drafts := make([]domain.TransactionDraft, len(r.Transactions))
	for i, tx := range r.Transactions {
		drafts[i] = domain.DraftFromExtracted(fmt.Sprintf("%d-%d", fileIndex, i), tx)
	}
	return drafts
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
