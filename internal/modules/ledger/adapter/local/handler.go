// Package local provides the local (in-process) adapter for the ledger
// module. It implements service.LedgerService.
package local

import (
	"context"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/usecase"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

// Handler is the local adapter for the ledger module
type Handler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewHandler creates a new local ledger handler
func NewHandler(ledgerUC *usecase.LedgerUseCase) *Handler {
	return &Handler{
		ledgerUC: ledgerUC,
	}
}

// GetOrCreateAccount returns the account, creating it with the default
// starting balance on first reference
func (h *Handler) GetOrCreateAccount(ctx context.Context, playerID string) (*service.AccountInfo, error) {
	acc, err := h.ledgerUC.GetOrCreateAccount(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &service.AccountInfo{PlayerID: acc.PlayerID, Balance: acc.Balance}, nil
}

// CreateAccount opens an account with an explicit starting balance
func (h *Handler) CreateAccount(ctx context.Context, playerID string, balance int64) (*service.AccountInfo, error) {
	acc, err := h.ledgerUC.CreateAccount(ctx, playerID, balance)
	if err != nil {
		return nil, err
	}
	return &service.AccountInfo{PlayerID: acc.PlayerID, Balance: acc.Balance}, nil
}

// Settle applies one settlement atomically and idempotently
func (h *Handler) Settle(ctx context.Context, req service.SettleRequest) (*service.SettleResult, error) {
	rec := &domain.SettlementRecord{
		RecordID:  req.IdempotencyKey,
		PlayerID:  req.PlayerID,
		BetAmount: req.BetAmount,
		WinAmount: req.WinAmount,
		Outcome:   domain.EncodeOutcome(req.Outcome),
	}

	res, err := h.ledgerUC.Settle(ctx, rec)
	if err != nil {
		return nil, err
	}

	return &service.SettleResult{NewBalance: res.NewBalance, Replayed: res.Replayed}, nil
}

// GetSettlement returns the committed settlement for a key, if any
func (h *Handler) GetSettlement(ctx context.Context, idempotencyKey string) (*service.SettlementInfo, error) {
	rec, err := h.ledgerUC.GetSettlement(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	return &service.SettlementInfo{
		IdempotencyKey: rec.RecordID,
		PlayerID:       rec.PlayerID,
		BetAmount:      rec.BetAmount,
		WinAmount:      rec.WinAmount,
		Outcome:        rec.OutcomeNumbers(),
		CreatedAt:      rec.CreatedAt,
	}, nil
}
