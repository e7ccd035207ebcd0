// Package local provides the local (in-process) adapter for the RNG module.
package local

import (
	"context"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/rng"
)

// Handler is the local adapter for the RNG module.
// It implements service.RNGService.
type Handler struct {
	gen *rng.Generator
}

// NewHandler creates a new local RNG handler
func NewHandler(gen *rng.Generator) *Handler {
	return &Handler{
		gen: gen,
	}
}

// Draw returns count bounded random integers
func (h *Handler) Draw(ctx context.Context, count int) ([]int, error) {
	return h.gen.Draw(count), nil
}

// ForceNext installs a one-shot forced outcome
func (h *Handler) ForceNext(ctx context.Context, outcome []int) error {
	h.gen.ForceNext(outcome)
	return nil
}
