package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/repository/memory"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init(logger.Config{Level: "error", Format: "console"})
}

// fakeCache is an in-memory ResultCache
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*domain.SettleResult
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.SettleResult)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.SettleResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return res, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, res *domain.SettleResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &domain.SettleResult{NewBalance: res.NewBalance, Replayed: true}
	c.sets++
}

func TestGetOrCreateAccountDefaultBalance(t *testing.T) {
	uc := NewLedgerUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	acc, err := uc.GetOrCreateAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBalance, acc.Balance)

	// already exists; the default balance is not applied again
	_, err = uc.Settle(ctx, &domain.SettlementRecord{
		RecordID: "spin-1", PlayerID: "alice", BetAmount: 100,
		Outcome: domain.EncodeOutcome([]int{1, 2, 3}),
	})
	require.NoError(t, err)

	acc, err = uc.GetOrCreateAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBalance-100, acc.Balance)
}

func TestRegistrationBalanceDiffersFromDefault(t *testing.T) {
	uc := NewLedgerUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	acc, err := uc.CreateAccount(ctx, "bob", domain.RegistrationBalance)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationBalance, acc.Balance)

	// first gameplay reference keeps the registered balance
	acc, err = uc.GetOrCreateAccount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationBalance, acc.Balance)
}

func TestSettleUsesCacheForReplay(t *testing.T) {
	cache := newFakeCache()
	uc := NewLedgerUseCase(memory.NewStore(), cache)
	ctx := context.Background()

	_, err := uc.GetOrCreateAccount(ctx, "alice")
	require.NoError(t, err)

	rec := &domain.SettlementRecord{
		RecordID: "spin-1", PlayerID: "alice", BetAmount: 100, WinAmount: 40,
		Outcome: domain.EncodeOutcome([]int{1, 2, 3}),
	}

	first, err := uc.Settle(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := uc.Settle(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, first.NewBalance, second.NewBalance)
	assert.True(t, second.Replayed)
	assert.Equal(t, 1, cache.hits, "replay should be served from cache")
}

func TestSettleBusinessErrorsNotCached(t *testing.T) {
	cache := newFakeCache()
	uc := NewLedgerUseCase(memory.NewStore(), cache)
	ctx := context.Background()

	rec := &domain.SettlementRecord{
		RecordID: "spin-1", PlayerID: "nobody", BetAmount: 100,
		Outcome: domain.EncodeOutcome([]int{1, 2, 3}),
	}

	_, err := uc.Settle(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Zero(t, cache.sets)
}
