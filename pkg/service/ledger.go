package service

import (
	"context"
	"time"
)

// AccountInfo is the caller-facing view of a ledger account
type AccountInfo struct {
	PlayerID string
	Balance  int64
}

// SettleRequest carries one atomic settlement: debit the bet, credit the
// win and append the audit record, keyed by a caller-supplied idempotency
// key
type SettleRequest struct {
	IdempotencyKey string
	PlayerID       string
	BetAmount      int64
	WinAmount      int64
	Outcome        []int
}

// SettleResult reports a committed (or replayed) settlement
type SettleResult struct {
	NewBalance int64
	// Replayed is true when the idempotency key had already been settled
	// and the stored result was returned without re-mutating the balance
	Replayed bool
}

// SettlementInfo is the caller-facing view of a settled round
type SettlementInfo struct {
	IdempotencyKey string
	PlayerID       string
	BetAmount      int64
	WinAmount      int64
	Outcome        []int
	CreatedAt      time.Time
}

// LedgerService defines the interface for the ledger of record
type LedgerService interface {
	// GetOrCreateAccount returns the account, creating it with the default
	// starting balance on first reference
	GetOrCreateAccount(ctx context.Context, playerID string) (*AccountInfo, error)
	// CreateAccount opens an account with an explicit starting balance
	// (registration path)
	CreateAccount(ctx context.Context, playerID string, balance int64) (*AccountInfo, error)
	// Settle applies one settlement atomically and idempotently
	Settle(ctx context.Context, req SettleRequest) (*SettleResult, error)
	// GetSettlement returns the committed settlement for a key, if any
	GetSettlement(ctx context.Context, idempotencyKey string) (*SettlementInfo, error)
}
