package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid builds a row-major 5x3 grid from its three rows
func grid(top, middle, bottom [Reels]int) []int {
	out := make([]int, 0, GridSize)
	out = append(out, top[:]...)
	out = append(out, middle[:]...)
	out = append(out, bottom[:]...)
	return out
}

func TestEvaluateFullRows(t *testing.T) {
	// wild across the top, symbol 2 across the middle, symbol 3 across the
	// bottom; both diagonals break immediately
	g := grid(
		[Reels]int{1, 1, 1, 1, 1},
		[Reels]int{2, 2, 2, 2, 2},
		[Reels]int{3, 3, 3, 3, 3},
	)

	res := Evaluate(g, 10)

	// bet per line 2: middle pays 100x, top (wild) 50x, bottom 100x
	assert.Equal(t, int64(500), res.TotalWin)
	assert.Equal(t, []int{0, 1, 2}, res.WinningLines)
}

func TestEvaluateWildPaysFromTwoMatches(t *testing.T) {
	g := grid(
		[Reels]int{1, 1, 2, 3, 4},
		[Reels]int{6, 7, 8, 9, 0},
		[Reels]int{2, 3, 4, 5, 6},
	)

	res := Evaluate(g, 10)

	assert.Equal(t, int64(2), res.TotalWin)
	assert.Equal(t, []int{1}, res.WinningLines)
}

func TestEvaluateTwoNonWildMatchesPayNothing(t *testing.T) {
	g := grid(
		[Reels]int{2, 4, 6, 8, 0},
		[Reels]int{4, 4, 7, 8, 9},
		[Reels]int{6, 2, 8, 0, 3},
	)

	res := Evaluate(g, 10)

	assert.Zero(t, res.TotalWin)
	assert.Empty(t, res.WinningLines)
}

func TestEvaluateRunStopsAtFirstMismatch(t *testing.T) {
	// middle row: three matches, a break, then a trailing repeat that must
	// not count
	g := grid(
		[Reels]int{2, 4, 6, 8, 0},
		[Reels]int{3, 3, 3, 5, 3},
		[Reels]int{4, 2, 6, 0, 9},
	)

	res := Evaluate(g, 10)

	assert.Equal(t, int64(10), res.TotalWin) // 5x multiplier, bet per line 2
	assert.Equal(t, []int{0}, res.WinningLines)
}

func TestEvaluateDiagonals(t *testing.T) {
	// V-shaped line {0,6,12,8,4} filled with symbol 4, everything else
	// distinct
	g := []int{
		4, 2, 6, 8, 4,
		5, 4, 7, 4, 0,
		3, 9, 4, 2, 6,
	}

	res := Evaluate(g, 10)

	assert.Equal(t, int64(500), res.TotalWin) // 250x multiplier, bet per line 2
	assert.Equal(t, []int{3}, res.WinningLines)
}

func TestEvaluateMultiplierTiers(t *testing.T) {
	tests := []struct {
		name    string
		symbol  int
		count   int
		wantWin int64 // with bet per line 2
	}{
		{"low tier three", 2, 3, 10},
		{"low tier four", 6, 4, 40},
		{"low tier five", 3, 5, 200},
		{"mid tier three", 4, 3, 30},
		{"mid tier five", 4, 5, 500},
		{"top tier three", 5, 3, 100},
		{"top tier four", 5, 4, 400},
		{"top tier five", 5, 5, 5000},
		{"wild three", 1, 3, 10},
		{"wild five", 1, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// fill the middle row with tt.count matches then break the run;
			// the other rows and diagonals never pay
			middle := [Reels]int{7, 7, 7, 7, 7}
			for i := 0; i < tt.count; i++ {
				middle[i] = tt.symbol
			}
			if tt.count < Reels {
				middle[tt.count] = 8
			}

			g := grid(
				[Reels]int{0, 2, 0, 2, 0},
				middle,
				[Reels]int{2, 0, 2, 0, 2},
			)

			res := Evaluate(g, 10)
			assert.Equal(t, tt.wantWin, res.TotalWin)
		})
	}
}

func TestEvaluateBetPerLineFloor(t *testing.T) {
	g := grid(
		[Reels]int{1, 1, 1, 1, 1},
		[Reels]int{2, 2, 2, 2, 2},
		[Reels]int{3, 3, 3, 3, 3},
	)

	// bet 3 splits to 0 per line; the floor keeps each line at 1
	res := Evaluate(g, 3)
	assert.Equal(t, int64(250), res.TotalWin)
}

func TestEvaluateMalformedGrid(t *testing.T) {
	res := Evaluate([]int{1, 2, 3}, 10)
	assert.Zero(t, res.TotalWin)
	require.NotNil(t, res.WinningLines)
	assert.Empty(t, res.WinningLines)

	res = Evaluate(nil, 10)
	assert.Zero(t, res.TotalWin)
	assert.Empty(t, res.WinningLines)
}

func TestEvaluateDoesNotMutateGrid(t *testing.T) {
	g := grid(
		[Reels]int{1, 1, 1, 1, 1},
		[Reels]int{2, 2, 2, 2, 2},
		[Reels]int{3, 3, 3, 3, 3},
	)
	orig := make([]int, len(g))
	copy(orig, g)

	first := Evaluate(g, 10)
	second := Evaluate(g, 10)

	assert.Equal(t, orig, g)
	assert.Equal(t, first, second)
}
