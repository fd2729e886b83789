package pipeline

import (
	"sync/atomic"

	"foliogate/internal/domain"
)

// AnyCompleted reports whether at least one live file finished extraction.
func AnyCompleted(files []domain.FileProcessingState) bool {
	for i := range files {
		if !files[i].Cleared && files[i].Status == domain.FileStatusCompleted {
			return true
		}
	}
	return false
}

// AllTerminal reports whether every live file is completed or errored.
// It is false when no live file remains.
func AllTerminal(files []domain.FileProcessingState) bool {
	live := 0
	for i := range files {
		if files[i].Cleared {
			continue
		}
		live++
		if !files[i].Status.IsTerminal() {
			return false
		}
	}
	return live > 0
}

// ReadyForReview is the forward-navigation predicate.
func ReadyForReview(files []domain.FileProcessingState) bool {
	return AnyCompleted(files) || AllTerminal(files)
}

// InFlight reports whether a live file is still pending or processing.
func InFlight(files []domain.FileProcessingState) bool {
	for i := range files {
		if !files[i].Cleared && !files[i].Status.IsTerminal() {
			return true
		}
	}
	return false
}

// NextCompleted returns the first live completed file after current,
// wrapping around, or -1.
func NextCompleted(files []domain.FileProcessingState, current int) int {
	n := len(files)
	for step := 1; step <= n; step++ {
		j := ((current+step)%n + n) % n
		if !files[j].Cleared && files[j].Status == domain.FileStatusCompleted {
			return j
		}
	}
	return -1
}

// OnceGuard fires exactly once across goroutines.
type OnceGuard struct {
	fired atomic.Bool
}

// Fire returns true for the first caller only.
func (g *OnceGuard) Fire() bool {
	return g.fired.CompareAndSwap(false, true)
}

// Fired reports whether Fire already succeeded.
func (g *OnceGuard) Fired() bool {
	return g.fired.Load()
}
