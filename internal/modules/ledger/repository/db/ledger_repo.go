// Package db provides the Postgres ledger store.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements domain.Store on gorm/Postgres
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Postgres ledger store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetAccount returns the account or domain.ErrAccountNotFound
func (s *Store) GetAccount(ctx context.Context, playerID string) (*domain.Account, error) {
	var acc domain.Account
	if err := s.db.WithContext(ctx).Where("player_id = ?", playerID).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// GetOrCreateAccount returns the account, inserting it with initialBalance
// on first reference. A concurrent first access loses the insert race and
// reads the winner's row.
func (s *Store) GetOrCreateAccount(ctx context.Context, playerID string, initialBalance int64) (*domain.Account, error) {
	acc := domain.Account{PlayerID: playerID, Balance: initialBalance}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&acc).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// re-read: either our insert or the concurrent winner's row
	return s.GetAccount(ctx, playerID)
}

// CreateAccount creates a fresh account or fails with domain.ErrAccountExists
func (s *Store) CreateAccount(ctx context.Context, playerID string, initialBalance int64) (*domain.Account, error) {
	acc := domain.Account{PlayerID: playerID, Balance: initialBalance}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&acc)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to create account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrAccountExists
	}
	return &acc, nil
}

// Settle applies one settlement inside a transaction. The account row is
// locked first, so settlements for the same player serialize while other
// players' rows stay untouched; the balance update and the record insert
// commit or roll back together.
func (s *Store) Settle(ctx context.Context, rec *domain.SettlementRecord) (*domain.SettleResult, error) {
	var result domain.SettleResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc domain.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("player_id = ?", rec.PlayerID).
			First(&acc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		// replay check runs under the account lock so a same-key race
		// commits exactly once
		var existing domain.SettlementRecord
		err = tx.Where("record_id = ?", rec.RecordID).First(&existing).Error
		if err == nil {
			result = domain.SettleResult{NewBalance: acc.Balance, Replayed: true}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check settlement record: %w", err)
		}

		if acc.Balance < rec.BetAmount {
			return domain.ErrInsufficientFunds
		}

		newBalance := acc.Balance - rec.BetAmount + rec.WinAmount
		if err := tx.Model(&domain.Account{}).
			Where("player_id = ?", rec.PlayerID).
			Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to insert settlement record: %w", err)
		}

		result = domain.SettleResult{NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetSettlement returns the record for an idempotency key, or nil when the
// key was never settled
func (s *Store) GetSettlement(ctx context.Context, recordID string) (*domain.SettlementRecord, error) {
	var rec domain.SettlementRecord
	if err := s.db.WithContext(ctx).Where("record_id = ?", recordID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement record: %w", err)
	}
	return &rec, nil
}
