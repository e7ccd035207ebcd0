// Package domain holds the slot module's core types.
package domain

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// ErrInvalidBet rejects non-positive bets before any downstream call
var ErrInvalidBet = errors.New("bet amount must be positive")

// SpinResult is the outcome of one orchestrated spin
type SpinResult struct {
	SpinID       string `json:"spin_id"`
	Numbers      []int  `json:"numbers"`
	WinAmount    int64  `json:"win_amount"`
	WinningLines []int  `json:"winning_lines"`
	NewBalance   int64  `json:"new_balance"`
}

// KeyGenerator produces idempotency keys for settlement rounds. The
// orchestrator is the sole producer of keys; injecting the generator keeps
// key provenance explicit and lets tests use deterministic keys.
type KeyGenerator func() string

var (
	node *snowflake.Node
	once sync.Once
)

// SnowflakeKeyGenerator returns the production key generator: unique,
// time-ordered snowflake IDs. Each instance of a distributed deployment
// needs a distinct node ID; the first caller's nodeID wins.
func SnowflakeKeyGenerator(nodeID int64) KeyGenerator {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
	})
	return func() string {
		return node.Generate().String()
	}
}
