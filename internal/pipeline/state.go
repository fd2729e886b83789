// Package pipeline implements the upload → extraction → review → import
// flow for screenshots of broker statements. A State is the single mutable
// container for one pipeline; every status change goes through
// State.UpdateStatus.
package pipeline

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"foliogate/internal/domain"
)

const subscriberBuffer = 64

// Option configures a State.
type Option func(*State)

// WithClock overrides the clock used by the date validator.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithMaxFiles overrides the registration limit.
func WithMaxFiles(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxFiles = n
		}
	}
}

// State holds the per-file statuses, review drafts and validation errors of
// one import pipeline. It is safe for concurrent use.
type State struct {
	mu         sync.Mutex
	id         uuid.UUID
	generation uint64
	files      []domain.FileProcessingState
	errs       ErrorMap
	nav        *OnceGuard
	importing  map[int]bool
	subs       map[int]chan domain.Event
	nextSub    int
	closed     bool
	maxFiles   int
	now        func() time.Time
}

// NewState creates an empty pipeline state.
func NewState(id uuid.UUID, opts ...Option) *State {
	s := &State{
		id:        id,
		errs:      make(ErrorMap),
		nav:       &OnceGuard{},
		importing: make(map[int]bool),
		subs:      make(map[int]chan domain.Event),
		maxFiles:  MaxFiles,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the pipeline identifier.
func (s *State) ID() uuid.UUID { return s.id }

// Generation returns the current registration generation. Callbacks carry
// the generation they were started under so late results can be dropped.
func (s *State) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Snapshot is a point-in-time copy of a State.
type Snapshot struct {
	ID               uuid.UUID                    `json:"id"`
	Files            []domain.FileProcessingState `json:"files"`
	ValidationErrors []domain.ValidationError     `json:"validation_errors"`
	ReadyForReview   bool                         `json:"ready_for_review"`
	Navigated        bool                         `json:"navigated"`
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:               s.id,
		Files:            copyFiles(s.files),
		ValidationErrors: s.errs.List(),
		ReadyForReview:   ReadyForReview(s.files),
		Navigated:        s.nav.Fired(),
	}
}

// File returns a copy of one file slot.
func (s *State) File(index int) (domain.FileProcessingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return domain.FileProcessingState{}, domain.ErrFileIndexOutOfRange
	}
	return copyFile(s.files[index]), nil
}

// FileErrors returns the validation errors recorded for one file.
func (s *State) FileErrors(index int) []domain.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs.ListFile(index)
}

// Clear drops every file and bumps the generation so in-flight callbacks
// become no-ops.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.files = nil
	s.errs = make(ErrorMap)
	s.nav = &OnceGuard{}
	s.importing = make(map[int]bool)
	s.publish(domain.Event{Type: domain.EventPipelineCleared})
}

// DiscardFile clears one slot. Indexes of the other files are unchanged.
func (s *State) DiscardFile(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return domain.ErrFileIndexOutOfRange
	}
	s.clearSlot(index)
	return nil
}

// clearSlot must be called with mu held.
func (s *State) clearSlot(index int) {
	f := &s.files[index]
	if f.Cleared {
		return
	}
	f.Cleared = true
	f.Drafts = nil
	f.Result = nil
	f.File.DataURL = ""
	s.errs.ClearFile(index)
	idx := index
	s.publish(domain.Event{Type: domain.EventFileCleared, FileIndex: &idx})
}

// Subscribe returns a channel of pipeline events and a func that stops the
// subscription. Slow subscribers lose events rather than block updates,
// except review_ready, which is always delivered.
func (s *State) Subscribe() (<-chan domain.Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan domain.Event, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close ends every subscription. The state stays readable.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publish must be called with mu held.
func (s *State) publish(ev domain.Event) {
	ev.SessionID = s.id
	ev.Timestamp = s.now().UTC()
	for id, ch := range s.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		if ev.Type != domain.EventReviewReady {
			log.Printf("pipeline.State: dropping %s event for slow subscriber %d of %s", ev.Type, id, s.id)
			continue
		}
		// review_ready fires once per registration, so it displaces the
		// oldest buffered event. Only publish sends, and mu is held, so the
		// freed slot stays free.
		select {
		case old := <-ch:
			log.Printf("pipeline.State: dropping %s event for slow subscriber %d of %s", old.Type, id, s.id)
		default:
		}
		ch <- ev
	}
}

func copyFiles(files []domain.FileProcessingState) []domain.FileProcessingState {
	out := make([]domain.FileProcessingState, len(files))
	for i := range files {
		out[i] = copyFile(files[i])
	}
	return out
}

func copyFile(f domain.FileProcessingState) domain.FileProcessingState {
	c := f
	if f.Drafts != nil {
		c.Drafts = append([]domain.TransactionDraft(nil), f.Drafts...)
	}
	if f.Excluded != nil {
		c.Excluded = make(map[string]bool, len(f.Excluded))
		for k, v := range f.Excluded {
			c.Excluded[k] = v
		}
	}
	if f.Result != nil {
		r := *f.Result
		r.Transactions = append([]domain.ExtractedTransaction(nil), f.Result.Transactions...)
		c.Result = &r
	}
	return c
}

// SetArchiveKey records where a file's original bytes were archived.
func (s *State) SetArchiveKey(generation uint64, index int, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation || index < 0 || index >= len(s.files) {
		return
	}
	s.files[index].File.ArchiveKey = key
}
