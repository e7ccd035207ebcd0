// Package usecase implements the ledger business logic: account lifecycle
// and the idempotent settlement operation.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/MihneaE/slot-machine-microservices/internal/metrics"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// LedgerUseCase owns player balances and the append-only settlement history
type LedgerUseCase struct {
	store domain.Store
	// cache is optional; nil disables the replay fast path
	cache domain.ResultCache
	// sf collapses concurrent first-access creation of the same account
	sf singleflight.Group
}

// NewLedgerUseCase creates a new ledger use case. cache may be nil.
func NewLedgerUseCase(store domain.Store, cache domain.ResultCache) *LedgerUseCase {
	return &LedgerUseCase{
		store: store,
		cache: cache,
	}
}

// GetOrCreateAccount returns the player's account, creating it with the
// default starting balance on first reference
func (uc *LedgerUseCase) GetOrCreateAccount(ctx context.Context, playerID string) (*domain.Account, error) {
	v, err, _ := uc.sf.Do(playerID, func() (interface{}, error) {
		return uc.store.GetOrCreateAccount(ctx, playerID, domain.DefaultBalance)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create account: %w", err)
	}
	return v.(*domain.Account), nil
}

// CreateAccount opens an account with an explicit starting balance
// (registration path)
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, playerID string, balance int64) (*domain.Account, error) {
	acc, err := uc.store.CreateAccount(ctx, playerID, balance)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("player_id", playerID).
		Int64("balance", balance).
		Msg("account created")
	return acc, nil
}

// Settle applies one settlement atomically and idempotently.
//
// A replayed key returns the previously committed balance without touching
// the account; AccountNotFound and InsufficientFunds come back as typed
// outcomes with no mutation; anything else is a transient storage failure
// the caller may retry with the same key.
func (uc *LedgerUseCase) Settle(ctx context.Context, rec *domain.SettlementRecord) (*domain.SettleResult, error) {
	if uc.cache != nil {
		if res, ok := uc.cache.Get(ctx, rec.RecordID); ok {
			logger.Debug(ctx).
				Str("record_id", rec.RecordID).
				Msg("settle replay served from cache")
			metrics.RecordSettlement("replay")
			return res, nil
		}
	}

	res, err := uc.store.Settle(ctx, rec)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			metrics.RecordSettlement("account_not_found")
		case errors.Is(err, domain.ErrInsufficientFunds):
			metrics.RecordSettlement("insufficient_funds")
		default:
			metrics.RecordSettlement("storage_error")
		}
		return nil, err
	}

	if res.Replayed {
		metrics.RecordSettlement("replay")
	} else {
		metrics.RecordSettlement("committed")
		logger.Info(ctx).
			Str("record_id", rec.RecordID).
			Str("player_id", rec.PlayerID).
			Int64("bet", rec.BetAmount).
			Int64("win", rec.WinAmount).
			Int64("new_balance", res.NewBalance).
			Msg("settlement committed")
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, rec.RecordID, res)
	}

	return res, nil
}

// GetSettlement returns the committed record for an idempotency key, or
// nil when the key was never settled
func (uc *LedgerUseCase) GetSettlement(ctx context.Context, recordID string) (*domain.SettlementRecord, error) {
	return uc.store.GetSettlement(ctx, recordID)
}
