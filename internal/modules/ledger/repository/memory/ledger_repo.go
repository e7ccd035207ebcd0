// Package memory provides the in-process ledger store used by tests and
// the memory repo type of the monolith.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
)

type account struct {
	// mu serializes settlements for this account; distinct accounts settle
	// in parallel
	mu      sync.Mutex
	balance int64
	created time.Time
	updated time.Time
}

// Store implements domain.Store in memory
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*account
	records  map[string]*domain.SettlementRecord
}

// NewStore creates a new memory ledger store
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		records:  make(map[string]*domain.SettlementRecord),
	}
}

func (s *Store) GetAccount(ctx context.Context, playerID string) (*domain.Account, error) {
	s.mu.RLock()
	acc := s.accounts[playerID]
	s.mu.RUnlock()

	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()
	return s.view(playerID, acc), nil
}

func (s *Store) GetOrCreateAccount(ctx context.Context, playerID string, initialBalance int64) (*domain.Account, error) {
	s.mu.Lock()
	acc := s.accounts[playerID]
	if acc == nil {
		now := time.Now()
		acc = &account{balance: initialBalance, created: now, updated: now}
		s.accounts[playerID] = acc
	}
	s.mu.Unlock()

	acc.mu.Lock()
	defer acc.mu.Unlock()
	return s.view(playerID, acc), nil
}

func (s *Store) CreateAccount(ctx context.Context, playerID string, initialBalance int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[playerID]; exists {
		return nil, domain.ErrAccountExists
	}

	now := time.Now()
	s.accounts[playerID] = &account{balance: initialBalance, created: now, updated: now}
	return &domain.Account{PlayerID: playerID, Balance: initialBalance, CreatedAt: now, UpdatedAt: now}, nil
}

// Settle applies one settlement atomically. Lock order is account first,
// record map second, everywhere.
func (s *Store) Settle(ctx context.Context, rec *domain.SettlementRecord) (*domain.SettleResult, error) {
	// replay fast path: a recorded key returns the committed balance
	s.mu.RLock()
	_, replay := s.records[rec.RecordID]
	acc := s.accounts[rec.PlayerID]
	s.mu.RUnlock()

	if replay {
		if acc == nil {
			return nil, domain.ErrAccountNotFound
		}
		acc.mu.Lock()
		defer acc.mu.Unlock()
		return &domain.SettleResult{NewBalance: acc.balance, Replayed: true}, nil
	}

	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	// re-check under the account lock so two concurrent settles with the
	// same key commit exactly once
	s.mu.RLock()
	_, replay = s.records[rec.RecordID]
	s.mu.RUnlock()
	if replay {
		return &domain.SettleResult{NewBalance: acc.balance, Replayed: true}, nil
	}

	if acc.balance < rec.BetAmount {
		return nil, domain.ErrInsufficientFunds
	}

	stored := *rec
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	acc.balance = acc.balance - rec.BetAmount + rec.WinAmount
	acc.updated = time.Now()

	s.mu.Lock()
	s.records[stored.RecordID] = &stored
	s.mu.Unlock()

	return &domain.SettleResult{NewBalance: acc.balance}, nil
}

func (s *Store) GetSettlement(ctx context.Context, recordID string) (*domain.SettlementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.records[recordID]
	if rec == nil {
		return nil, nil
	}

	out := *rec
	return &out, nil
}

// RecordCount reports how many settlement records exist (test helper)
func (s *Store) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) view(playerID string, acc *account) *domain.Account {
	return &domain.Account{
		PlayerID:  playerID,
		Balance:   acc.balance,
		CreatedAt: acc.created,
		UpdatedAt: acc.updated,
	}
}
