package rng

import (
	"sync"
	"testing"

	"github.com/MihneaE/slot-machine-microservices/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init(logger.Config{Level: "error", Format: "console"})
}

func TestDrawBounds(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 100; i++ {
		numbers := g.Draw(15)
		require.Len(t, numbers, 15)
		for _, n := range numbers {
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, SymbolRange)
		}
	}
}

func TestDrawZeroCount(t *testing.T) {
	g := NewGenerator()

	assert.Empty(t, g.Draw(0))
	assert.Empty(t, g.Draw(-3))
}

func TestForcedOutcomeServedVerbatim(t *testing.T) {
	g := NewGenerator()

	// values outside the symbol range prove the draw came from the
	// override, not from randomness
	forced := []int{99, 98, 97, 96, 95, 94, 93, 92, 91, 90, 89, 88, 87, 86, 85}
	g.ForceNext(forced)

	numbers := g.Draw(len(forced))
	assert.Equal(t, forced, numbers)
}

func TestForcedOutcomeConsumedOnce(t *testing.T) {
	g := NewGenerator()

	forced := make([]int, 15)
	for i := range forced {
		forced[i] = 99
	}
	g.ForceNext(forced)

	first := g.Draw(15)
	assert.Equal(t, forced, first)

	// the override is gone; the next draw is random and bounded
	second := g.Draw(15)
	for _, n := range second {
		assert.Less(t, n, SymbolRange)
	}
}

func TestForcedOutcomeLengthMismatchDiscarded(t *testing.T) {
	g := NewGenerator()

	g.ForceNext([]int{99, 99, 99})

	// the mismatched override is dropped, not partially served
	numbers := g.Draw(15)
	require.Len(t, numbers, 15)
	for _, n := range numbers {
		assert.Less(t, n, SymbolRange)
	}

	// and it is consumed, not left pending for a matching draw
	again := g.Draw(3)
	for _, n := range again {
		assert.Less(t, n, SymbolRange)
	}
}

func TestForceNextReplacesPending(t *testing.T) {
	g := NewGenerator()

	g.ForceNext([]int{91, 91, 91})
	g.ForceNext([]int{92, 92, 92})

	assert.Equal(t, []int{92, 92, 92}, g.Draw(3))
}

func TestForceNextCopiesInput(t *testing.T) {
	g := NewGenerator()

	outcome := []int{91, 91, 91}
	g.ForceNext(outcome)
	outcome[0] = 0

	assert.Equal(t, []int{91, 91, 91}, g.Draw(3))
}

func TestConcurrentDrawsObserveOverrideAtMostOnce(t *testing.T) {
	g := NewGenerator()

	forced := make([]int, 15)
	for i := range forced {
		forced[i] = 99 // out of range marker
	}
	g.ForceNext(forced)

	const drawers = 16
	results := make([][]int, drawers)

	var wg sync.WaitGroup
	for i := 0; i < drawers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Draw(15)
		}(i)
	}
	wg.Wait()

	served := 0
	for _, numbers := range results {
		require.Len(t, numbers, 15)
		if numbers[0] == 99 {
			served++
			assert.Equal(t, forced, numbers)
		} else {
			for _, n := range numbers {
				assert.Less(t, n, SymbolRange)
			}
		}
	}

	assert.Equal(t, 1, served, "exactly one draw should observe the override")
}
