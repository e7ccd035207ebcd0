// Package rng implements the randomness source for the slot platform:
// bounded uniform draws with a one-shot deterministic override.
package rng

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
)

// SymbolRange bounds every drawn value to [0, SymbolRange)
const SymbolRange = 10

// Generator produces sequences of bounded random integers. A forced
// outcome can be installed to replace exactly one future draw, which is
// how the settlement core is tested without true randomness.
type Generator struct {
	// forced holds the pending one-shot override. Install and consume are
	// both single atomic swaps so two concurrent draws can never observe
	// the same override or a half-cleared slot.
	forced atomic.Pointer[[]int]
}

// NewGenerator creates a new Generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Draw returns count integers, each uniform over [0, SymbolRange).
//
// If a forced outcome is pending and its length equals count, it is
// consumed and returned verbatim. A pending outcome of any other length is
// discarded and a random sequence drawn instead; that mirrors the admin
// contract, where a mismatched force is dropped rather than reported.
func (g *Generator) Draw(count int) []int {
	if count <= 0 {
		return []int{}
	}

	if forced := g.forced.Swap(nil); forced != nil {
		if len(*forced) == count {
			out := make([]int, count)
			copy(out, *forced)
			logger.InfoGlobal().Ints("numbers", out).Msg("RNG: serving forced outcome")
			return out
		}
		logger.WarnGlobal().
			Int("forced_len", len(*forced)).
			Int("requested", count).
			Msg("RNG: forced outcome length mismatch, discarding override")
	}

	out := make([]int, count)
	for i := range out {
		out[i] = rand.IntN(SymbolRange)
	}
	return out
}

// ForceNext installs outcome as the one-shot override for the next draw.
// Installing replaces any previously pending override.
func (g *Generator) ForceNext(outcome []int) {
	pending := make([]int, len(outcome))
	copy(pending, outcome)
	g.forced.Store(&pending)
	logger.InfoGlobal().Ints("numbers", pending).Msg("RNG: forced outcome installed")
}
