package service

import (
	"context"
	"log"
	"time"
)

// Sweeper drops expired in-memory sessions.
type Sweeper interface {
	Sweep() int
}

// RunJanitor calls Sweep on every sweeper each interval until ctx is canceled.
func RunJanitor(ctx context.Context, interval time.Duration, sweepers ...Sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("janitor: started (interval=%s)", interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("janitor: stopped")
			return
		case <-ticker.C:
			for _, s := range sweepers {
				s.Sweep()
			}
		}
	}
}
