package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"foliogate/internal/domain"
)

// DefaultFileTimeout bounds one extraction call.
const DefaultFileTimeout = 60 * time.Second

// Extractor turns one uploaded file into transactions.
type Extractor interface {
	Extract(ctx context.Context, file domain.UploadedFile) (*domain.ExtractResult, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, file domain.UploadedFile) (*domain.ExtractResult, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, file domain.UploadedFile) (*domain.ExtractResult, error) {
	return f(ctx, file)
}

// Outcome is the settled result of one extraction.
type Outcome struct {
	Success bool
	Data    *domain.ExtractResult
	Message string
}

// Callback receives each outcome as soon as its file settles. It may be
// called from several goroutines at once.
type Callback func(index int, outcome Outcome)

// Dispatcher runs one extraction per file concurrently.
type Dispatcher struct {
	// Timeout bounds each file independently. Zero means DefaultFileTimeout.
	Timeout time.Duration
	// Concurrency caps in-flight calls. Zero or less means unbounded.
	Concurrency int
}

// Dispatch extracts every file and returns once all of them settled.
// A failing file never cancels its siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, ex Extractor, files []domain.UploadedFile, cb Callback) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultFileTimeout
	}

	var sem chan struct{}
	if d.Concurrency > 0 {
		sem = make(chan struct{}, d.Concurrency)
	}

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(index int, file domain.UploadedFile) {
			defer wg.Done()
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					cb(index, Outcome{Message: fmt.Sprintf("extraction canceled: %v", ctx.Err())})
					return
				}
			}
			cb(index, extractOne(ctx, ex, file, timeout))
		}(i, files[i])
	}
	wg.Wait()
}

func extractOne(ctx context.Context, ex Extractor, file domain.UploadedFile, timeout time.Duration) (outcome Outcome) {
	fileCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline.Dispatcher: PANIC recovered while extracting %s: %v", file.Name, r)
			outcome = Outcome{Message: fmt.Sprintf("extraction failed: %v", r)}
		}
	}()

	start := time.Now()
	result, err := ex.Extract(fileCtx, file)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(fileCtx.Err(), context.DeadlineExceeded) {
			log.Printf("pipeline.Dispatcher: %s timed out after %s", file.Name, timeout)
			return Outcome{Message: fmt.Sprintf("extraction timed out after %s", timeout)}
		}
		log.Printf("pipeline.Dispatcher: %s failed after %s: %v", file.Name, time.Since(start), err)
		return Outcome{Message: err.Error()}
	}
	if result == nil {
		result = &domain.ExtractResult{}
	}
	log.Printf("pipeline.Dispatcher: %s extracted %d transactions in %s",
		file.Name, len(result.Transactions), time.Since(start))
	return Outcome{Success: true, Data: result}
}
