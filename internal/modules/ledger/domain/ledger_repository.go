package domain

import "context"

// Store is the persistence contract for the ledger. Implementations must
// make Settle a single all-or-nothing unit, serialize settlements per
// account, and let distinct accounts proceed in parallel.
type Store interface {
	// GetAccount returns the account or ErrAccountNotFound
	GetAccount(ctx context.Context, playerID string) (*Account, error)
	// GetOrCreateAccount returns the account, creating it with
	// initialBalance on first reference. Safe under concurrent first
	// access.
	GetOrCreateAccount(ctx context.Context, playerID string, initialBalance int64) (*Account, error)
	// CreateAccount creates a fresh account or fails with ErrAccountExists
	CreateAccount(ctx context.Context, playerID string, initialBalance int64) (*Account, error)
	// Settle atomically applies rec: replay by key returns the committed
	// balance untouched; otherwise balance check, debit/credit and record
	// append commit or roll back together
	Settle(ctx context.Context, rec *SettlementRecord) (*SettleResult, error)
	// GetSettlement returns the record for an idempotency key, or nil when
	// the key was never settled
	GetSettlement(ctx context.Context, recordID string) (*SettlementRecord, error)
}

// ResultCache is an optional read-through cache of settled results keyed
// by idempotency key. Misses and cache failures are silent; the store is
// always the source of truth.
type ResultCache interface {
	Get(ctx context.Context, recordID string) (*SettleResult, bool)
	Set(ctx context.Context, recordID string, res *SettleResult)
}
