package slot_test

import (
	"context"
	"testing"

	ledgerDomain "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

func TestSettlementReplayThroughStack(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	if _, err := stack.Ledger.CreateAccount(ctx, "alice", 10000); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	req := service.SettleRequest{
		IdempotencyKey: "round-1",
		PlayerID:       "alice",
		BetAmount:      100,
		WinAmount:      40,
		Outcome:        []int{7, 7, 7},
	}

	first, err := stack.Ledger.Settle(ctx, req)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if first.NewBalance != 9940 {
		t.Fatalf("expected balance 9940, got %d", first.NewBalance)
	}
	if first.Replayed {
		t.Fatal("first settle must not be a replay")
	}

	// retried delivery of the same round changes nothing
	second, err := stack.Ledger.Settle(ctx, req)
	if err != nil {
		t.Fatalf("Settle replay: %v", err)
	}
	if second.NewBalance != first.NewBalance {
		t.Errorf("replay balance %d differs from committed %d", second.NewBalance, first.NewBalance)
	}
	if !second.Replayed {
		t.Error("second settle should report a replay")
	}
	if got := stack.Store.RecordCount(); got != 1 {
		t.Errorf("expected exactly one settlement record, got %d", got)
	}
}

func TestSettlementHistoryAfterSpin(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	if err := stack.RNG.ForceNext(ctx, fullRowsGrid()); err != nil {
		t.Fatalf("ForceNext: %v", err)
	}

	res, err := stack.Slot.Spin(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	// the spin ID doubles as the settlement's idempotency key
	info, err := stack.Ledger.GetSettlement(ctx, res.SpinID)
	if err != nil {
		t.Fatalf("GetSettlement: %v", err)
	}
	if info == nil {
		t.Fatalf("no settlement recorded for spin %s", res.SpinID)
	}

	if info.PlayerID != "alice" {
		t.Errorf("expected player alice, got %s", info.PlayerID)
	}
	if info.BetAmount != 10 {
		t.Errorf("expected bet 10, got %d", info.BetAmount)
	}
	if info.WinAmount != res.WinAmount {
		t.Errorf("recorded win %d differs from spin result %d", info.WinAmount, res.WinAmount)
	}
	if len(info.Outcome) != len(res.Numbers) {
		t.Fatalf("recorded outcome %v differs from spin numbers %v", info.Outcome, res.Numbers)
	}
	for i := range info.Outcome {
		if info.Outcome[i] != res.Numbers[i] {
			t.Fatalf("recorded outcome %v differs from spin numbers %v", info.Outcome, res.Numbers)
		}
	}
}

func TestSettlementUnknownKey(t *testing.T) {
	stack := newTestStack()

	info, err := stack.Ledger.GetSettlement(context.Background(), "never-settled")
	if err != nil {
		t.Fatalf("GetSettlement: %v", err)
	}
	if info != nil {
		t.Fatalf("expected no settlement, got %+v", info)
	}
}

func TestAccountLifecycle(t *testing.T) {
	stack := newTestStack()
	ctx := context.Background()

	// registration opens with the registration balance
	acc, err := stack.Ledger.CreateAccount(ctx, "carol", ledgerDomain.RegistrationBalance)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acc.Balance != ledgerDomain.RegistrationBalance {
		t.Errorf("expected registration balance %d, got %d", ledgerDomain.RegistrationBalance, acc.Balance)
	}

	// double registration is rejected
	if _, err := stack.Ledger.CreateAccount(ctx, "carol", ledgerDomain.RegistrationBalance); err == nil {
		t.Error("expected ErrAccountExists on duplicate registration")
	}

	// gameplay reference keeps the registered balance
	acc, err = stack.Ledger.GetOrCreateAccount(ctx, "carol")
	if err != nil {
		t.Fatalf("GetOrCreateAccount: %v", err)
	}
	if acc.Balance != ledgerDomain.RegistrationBalance {
		t.Errorf("expected balance %d, got %d", ledgerDomain.RegistrationBalance, acc.Balance)
	}
}
