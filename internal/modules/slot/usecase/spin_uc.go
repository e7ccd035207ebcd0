// Package usecase implements the spin orchestration: randomness, payout
// evaluation and the idempotent ledger settlement for one round.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MihneaE/slot-machine-microservices/internal/metrics"
	ledgerdomain "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/slot/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/slot/engine"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

// settleAttempts bounds how often a transient settle failure is retried
// with the same idempotency key before it is surfaced. Retrying with the
// same key is safe by construction; retrying with a fresh key never is.
const settleAttempts = 2

// SpinUseCase orchestrates one spin request end to end
type SpinUseCase struct {
	rngSvc    service.RNGService
	ledgerSvc service.LedgerService
	keyGen    domain.KeyGenerator
}

// NewSpinUseCase creates a new spin use case. keyGen is the sole producer
// of idempotency keys for orchestrated spins.
func NewSpinUseCase(rngSvc service.RNGService, ledgerSvc service.LedgerService, keyGen domain.KeyGenerator) *SpinUseCase {
	return &SpinUseCase{
		rngSvc:    rngSvc,
		ledgerSvc: ledgerSvc,
		keyGen:    keyGen,
	}
}

// Spin runs one round: validate, draw, evaluate, settle.
//
// Non-positive bets are rejected before any downstream call. Business-rule
// failures from the ledger (unknown account, insufficient funds) propagate
// verbatim and are never retried; transient failures are retried once with
// the same key, then surfaced.
func (uc *SpinUseCase) Spin(ctx context.Context, playerID string, betAmount int64) (*domain.SpinResult, error) {
	start := time.Now()

	if betAmount <= 0 {
		metrics.RecordSpin("rejected", start)
		return nil, domain.ErrInvalidBet
	}

	ctx = logger.WithFields(ctx, map[string]interface{}{
		"player_id": playerID,
	})

	numbers, err := uc.rngSvc.Draw(ctx, engine.GridSize)
	if err != nil {
		metrics.RecordSpin("failed", start)
		logger.Error(ctx).Err(err).Msg("spin: randomness source unavailable")
		return nil, fmt.Errorf("failed to draw numbers: %w", err)
	}

	eval := engine.Evaluate(numbers, betAmount)

	spinID := uc.keyGen()
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"spin_id": spinID,
	})

	logger.Debug(ctx).
		Ints("numbers", numbers).
		Int64("bet", betAmount).
		Int64("win", eval.TotalWin).
		Ints("winning_lines", eval.WinningLines).
		Msg("spin evaluated")

	res, err := uc.settleWithRetry(ctx, service.SettleRequest{
		IdempotencyKey: spinID,
		PlayerID:       playerID,
		BetAmount:      betAmount,
		WinAmount:      eval.TotalWin,
		Outcome:        numbers,
	})
	if err != nil {
		if errors.Is(err, ledgerdomain.ErrAccountNotFound) || errors.Is(err, ledgerdomain.ErrInsufficientFunds) {
			metrics.RecordSpin("rejected", start)
			logger.Warn(ctx).Err(err).Msg("spin: settlement rejected")
			return nil, err
		}
		metrics.RecordSpin("failed", start)
		logger.Error(ctx).Err(err).Msg("spin: settlement failed")
		return nil, fmt.Errorf("failed to settle spin: %w", err)
	}

	if eval.TotalWin > 0 {
		metrics.RecordSpin("win", start)
	} else {
		metrics.RecordSpin("lose", start)
	}
	metrics.RecordWager(betAmount, eval.TotalWin)

	logger.Info(ctx).
		Int64("bet", betAmount).
		Int64("win", eval.TotalWin).
		Int64("new_balance", res.NewBalance).
		Bool("replayed", res.Replayed).
		Msg("spin settled")

	return &domain.SpinResult{
		SpinID:       spinID,
		Numbers:      numbers,
		WinAmount:    eval.TotalWin,
		WinningLines: eval.WinningLines,
		NewBalance:   res.NewBalance,
	}, nil
}

// settleWithRetry retries transient ledger failures with the same key. The
// ledger's replay path makes the second attempt return the first attempt's
// result if that one actually committed.
func (uc *SpinUseCase) settleWithRetry(ctx context.Context, req service.SettleRequest) (*service.SettleResult, error) {
	var lastErr error
	for attempt := 1; attempt <= settleAttempts; attempt++ {
		res, err := uc.ledgerSvc.Settle(ctx, req)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, ledgerdomain.ErrAccountNotFound) || errors.Is(err, ledgerdomain.ErrInsufficientFunds) {
			return nil, err
		}
		lastErr = err
		if attempt < settleAttempts {
			logger.Warn(ctx).
				Err(err).
				Int("attempt", attempt).
				Msg("spin: transient settle failure, retrying with same key")
		}
	}
	return nil, lastErr
}
