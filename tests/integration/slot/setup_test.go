package slot_test

import (
	"fmt"
	"sync/atomic"

	ledgerLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/adapter/local"
	ledgerMemory "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/repository/memory"
	ledgerUseCase "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/usecase"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/rng"
	rngLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/rng/adapter/local"
	slotLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/adapter/local"
	slotUseCase "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/usecase"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
)

func init() {
	// Init logger for all tests in this package
	logger.Init(logger.Config{Level: "error", Format: "console"})
}

// testStack wires the real modules together with local adapters, a memory
// ledger store and deterministic idempotency keys
type testStack struct {
	Generator *rng.Generator
	RNG       *rngLocal.Handler
	Store     *ledgerMemory.Store
	Ledger    *ledgerLocal.Handler
	Slot      *slotLocal.Handler
}

func newTestStack() *testStack {
	generator := rng.NewGenerator()
	rngSvc := rngLocal.NewHandler(generator)

	store := ledgerMemory.NewStore()
	ledgerUC := ledgerUseCase.NewLedgerUseCase(store, nil)
	ledgerSvc := ledgerLocal.NewHandler(ledgerUC)

	var seq atomic.Int64
	keyGen := func() string {
		return fmt.Sprintf("test-spin-%d", seq.Add(1))
	}

	spinUC := slotUseCase.NewSpinUseCase(rngSvc, ledgerSvc, keyGen)

	return &testStack{
		Generator: generator,
		RNG:       rngSvc,
		Store:     store,
		Ledger:    ledgerSvc,
		Slot:      slotLocal.NewHandler(spinUC),
	}
}

// fullRowsGrid is the canonical forced outcome: wild top row, symbol 2
// middle, symbol 3 bottom. With a bet of 10 it pays 500 across lines
// 0, 1 and 2.
func fullRowsGrid() []int {
	return []int{
		1, 1, 1, 1, 1,
		2, 2, 2, 2, 2,
		3, 3, 3, 3, 3,
	}
}
