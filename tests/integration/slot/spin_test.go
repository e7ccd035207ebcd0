package slot_test

import (
	"context"
	"errors"
	"testing"

	ledgerDomain "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/rng"
	slotDomain "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/domain"
)

func TestSpinWithForcedOutcome(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	// player's first reference opens the account with the default balance
	acc, err := stack.Ledger.GetOrCreateAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("GetOrCreateAccount: %v", err)
	}
	if acc.Balance != ledgerDomain.DefaultBalance {
		t.Fatalf("expected default balance %d, got %d", ledgerDomain.DefaultBalance, acc.Balance)
	}

	if err := stack.RNG.ForceNext(ctx, fullRowsGrid()); err != nil {
		t.Fatalf("ForceNext: %v", err)
	}

	res, err := stack.Slot.Spin(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if res.WinAmount != 500 {
		t.Errorf("expected win 500, got %d", res.WinAmount)
	}
	if len(res.WinningLines) != 3 {
		t.Errorf("expected 3 winning lines, got %v", res.WinningLines)
	}
	wantBalance := ledgerDomain.DefaultBalance - 10 + 500
	if res.NewBalance != wantBalance {
		t.Errorf("expected balance %d, got %d", wantBalance, res.NewBalance)
	}

	// the ledger agrees with the reported balance
	acc, err = stack.Ledger.GetOrCreateAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("GetOrCreateAccount: %v", err)
	}
	if acc.Balance != wantBalance {
		t.Errorf("ledger balance %d does not match spin result %d", acc.Balance, wantBalance)
	}
}

func TestSpinBalanceConservation(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	acc, err := stack.Ledger.GetOrCreateAccount(ctx, "bob")
	if err != nil {
		t.Fatalf("GetOrCreateAccount: %v", err)
	}
	balance := acc.Balance

	// every spin moves the balance by exactly win minus bet
	for i := 0; i < 50; i++ {
		res, err := stack.Slot.Spin(ctx, "bob", 10)
		if err != nil {
			t.Fatalf("Spin %d: %v", i, err)
		}
		want := balance - 10 + res.WinAmount
		if res.NewBalance != want {
			t.Fatalf("spin %d: expected balance %d, got %d", i, want, res.NewBalance)
		}
		balance = res.NewBalance
	}
}

func TestSpinInvalidBet(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	_, err := stack.Slot.Spin(ctx, "alice", 0)
	if !errors.Is(err, slotDomain.ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
}

func TestSpinInsufficientFunds(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	if _, err := stack.Ledger.CreateAccount(ctx, "poor", 5); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	_, err := stack.Slot.Spin(ctx, "poor", 10)
	if !errors.Is(err, ledgerDomain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// the rejection left the balance untouched
	acc, err := stack.Ledger.GetOrCreateAccount(ctx, "poor")
	if err != nil {
		t.Fatalf("GetOrCreateAccount: %v", err)
	}
	if acc.Balance != 5 {
		t.Errorf("expected balance 5, got %d", acc.Balance)
	}
}

func TestSpinForcedOutcomeConsumedOnce(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	// a uniform all-nines grid never comes out of a fair draw in practice
	forced := make([]int, 15)
	for i := range forced {
		forced[i] = 9
	}
	if err := stack.RNG.ForceNext(ctx, forced); err != nil {
		t.Fatalf("ForceNext: %v", err)
	}

	first, err := stack.Slot.Spin(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	for i, n := range first.Numbers {
		if n != 9 {
			t.Fatalf("first spin position %d: expected forced value 9, got %d", i, n)
		}
	}

	// the next spins draw randomly and stay inside the symbol range
	second, err := stack.Slot.Spin(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	for _, n := range second.Numbers {
		if n < 0 || n >= rng.SymbolRange {
			t.Fatalf("second spin value %d outside symbol range", n)
		}
	}
}
