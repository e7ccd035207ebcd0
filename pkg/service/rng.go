package service

import "context"

// RNGService defines the interface for the randomness source consumed by
// the slot module and exposed to the admin surface
type RNGService interface {
	// Draw returns count integers, each uniform over the symbol range,
	// unless a forced outcome of matching length is pending
	Draw(ctx context.Context, count int) ([]int, error)
	// ForceNext installs a one-shot forced outcome for the next draw
	ForceNext(ctx context.Context, outcome []int) error
}
