// Package engine implements the payout evaluation for the 5x3 line slot.
// Evaluation is a pure function over the drawn grid and the bet: no I/O,
// no state, no failure modes beyond a zero result for a malformed grid.
package engine

// Grid geometry
const (
	Reels = 5
	Rows  = 3
	// GridSize is the exact number of symbols every spin draws
	GridSize = Reels * Rows
)

// WildSymbol pays from two consecutive matches; every other symbol needs
// three
const WildSymbol = 1

// NumPaylines is the number of evaluated lines
const NumPaylines = 5

// paylines are ordered index sequences across the 15-symbol grid
// (row-major, top row first): middle row, top row, bottom row, then the
// two diagonals. Line indices reported to callers follow this order.
var paylines = [NumPaylines][Reels]int{
	{5, 6, 7, 8, 9},
	{0, 1, 2, 3, 4},
	{10, 11, 12, 13, 14},
	{0, 6, 12, 8, 4},
	{10, 6, 2, 8, 14},
}

// Result is the outcome of evaluating one grid against one bet
type Result struct {
	TotalWin     int64
	WinningLines []int
}

// Evaluate maps a drawn grid and a total bet to the win amount and the set
// of paying line indices.
//
// A grid of the wrong length yields a zero result rather than an error:
// the orchestrator always supplies exactly GridSize symbols, so this is a
// defensive default, not a masked failure path.
func Evaluate(grid []int, totalBet int64) Result {
	res := Result{WinningLines: []int{}}
	if len(grid) != GridSize {
		return res
	}

	betPerLine := totalBet / NumPaylines
	if betPerLine < 1 {
		// every line keeps a nonzero stake even for tiny bets
		betPerLine = 1
	}

	for i, line := range paylines {
		win := lineWin(grid, line, betPerLine)
		if win > 0 {
			res.TotalWin += win
			res.WinningLines = append(res.WinningLines, i)
		}
	}

	return res
}

// lineWin scans one payline left to right, counting the contiguous run of
// the first symbol. The run stops at the first mismatch; trailing repeats
// after a break never count.
func lineWin(grid []int, line [Reels]int, betPerLine int64) int64 {
	first := grid[line[0]]
	matchCount := 1

	for i := 1; i < len(line); i++ {
		if grid[line[i]] != first {
			break
		}
		matchCount++
	}

	if first == WildSymbol && matchCount >= 2 {
		return multiplier(first, matchCount) * betPerLine
	}

	if matchCount >= 3 {
		return multiplier(first, matchCount) * betPerLine
	}

	return 0
}

// multiplier looks up the payout multiplier for a symbol and match count.
// Symbols share tier curves: 2, 3 and 6 are low tier, 4 mid, 5 top, and
// the wild has its own shallow curve starting at two matches. Unknown
// combinations pay zero.
func multiplier(symbol, count int) int64 {
	switch symbol {
	case WildSymbol:
		switch count {
		case 2:
			return 1
		case 3:
			return 5
		case 4:
			return 20
		case 5:
			return 50
		}
	case 2, 3, 6:
		switch count {
		case 3:
			return 5
		case 4:
			return 20
		case 5:
			return 100
		}
	case 4:
		switch count {
		case 3:
			return 15
		case 4:
			return 50
		case 5:
			return 250
		}
	case 5:
		switch count {
		case 3:
			return 50
		case 4:
			return 200
		case 5:
			return 2500
		}
	}
	return 0
}
