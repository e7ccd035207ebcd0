// Package domain holds the ledger module's core types: accounts, immutable
// settlement records and the typed business outcomes of settling.
package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// Balances are integer minor currency units; no fractional values exist
// anywhere in the ledger.
const (
	// DefaultBalance is credited to accounts created on first reference
	DefaultBalance int64 = 10000
	// RegistrationBalance is credited to accounts opened by explicit
	// registration
	RegistrationBalance int64 = 1000
)

// Business-rule outcomes of a settlement. Both leave the ledger untouched
// and are distinct from transient storage failures, which callers may
// retry.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountExists is returned by explicit account creation when the
	// player already has an account
	ErrAccountExists = errors.New("account already exists")
)

// Account is a player's balance of record. Mutated only by Settle; the
// balance is never persisted negative.
type Account struct {
	PlayerID  string    `json:"player_id" gorm:"primaryKey;column:player_id;type:varchar(64)"`
	Balance   int64     `json:"balance" gorm:"column:balance;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the table name
func (Account) TableName() string {
	return "accounts"
}

// SettlementRecord is the immutable audit record of one settled round,
// keyed by the round's idempotency key. Write once, read many; never
// updated or deleted.
type SettlementRecord struct {
	RecordID  string    `json:"record_id" gorm:"primaryKey;column:record_id;type:varchar(64)"`
	PlayerID  string    `json:"player_id" gorm:"column:player_id;type:varchar(64);not null;index:idx_settlement_records_player_id"`
	BetAmount int64     `json:"bet_amount" gorm:"column:bet_amount;not null"`
	WinAmount int64     `json:"win_amount" gorm:"column:win_amount;not null"`
	Outcome   string    `json:"outcome" gorm:"column:outcome;type:varchar(256);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime;index:idx_settlement_records_created_at"`
}

// TableName overrides the table name
func (SettlementRecord) TableName() string {
	return "settlement_records"
}

// EncodeOutcome serializes a drawn sequence for the outcome column
func EncodeOutcome(numbers []int) string {
	if numbers == nil {
		numbers = []int{}
	}
	b, _ := json.Marshal(numbers)
	return string(b)
}

// OutcomeNumbers decodes the stored outcome payload
func (r *SettlementRecord) OutcomeNumbers() []int {
	var numbers []int
	if err := json.Unmarshal([]byte(r.Outcome), &numbers); err != nil {
		return []int{}
	}
	return numbers
}

// SettleResult reports the committed balance after a settlement, or the
// previously committed balance when the key was a replay
type SettleResult struct {
	NewBalance int64
	Replayed   bool
}
