package pipeline

import (
	"context"
	"log"

	"foliogate/internal/domain"
)

const processingProgress = 10

// Extract marks every pending file as processing, dispatches them and
// routes each outcome through UpdateStatus. It returns once every file
// settled. Results arriving after Clear or a new Register are dropped.
func (s *State) Extract(ctx context.Context, d *Dispatcher, ex Extractor) {
	s.mu.Lock()
	generation := s.generation
	indexes := make([]int, 0, len(s.files))
	files := make([]domain.UploadedFile, 0, len(s.files))
	for i := range s.files {
		if s.files[i].Cleared || s.files[i].Status != domain.FileStatusPending {
			continue
		}
		indexes = append(indexes, i)
		files = append(files, s.files[i].File)
	}
	s.mu.Unlock()

	progress := processingProgress
	for _, i := range indexes {
		if err := s.UpdateStatus(generation, i, StatusUpdate{Status: domain.FileStatusProcessing, Progress: &progress}); err != nil {
			log.Printf("pipeline.State.Extract: marking file %d processing: %v", i, err)
		}
	}

	d.Dispatch(ctx, ex, files, func(pos int, o Outcome) {
		index := indexes[pos]
		u := StatusUpdate{Status: domain.FileStatusCompleted, Result: o.Data}
		if !o.Success {
			u = StatusUpdate{Status: domain.FileStatusError, Error: o.Message}
		}
		if err := s.UpdateStatus(generation, index, u); err != nil {
			log.Printf("pipeline.State.Extract: updating file %d: %v", index, err)
		}
	})
}
