// Package usecase implements the business logic for the gateway module.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

// GatewayUseCase fronts the gameplay modules for HTTP and WebSocket
// clients.
type GatewayUseCase struct {
	slotSvc   service.SlotService
	ledgerSvc service.LedgerService
	rngSvc    service.RNGService
	push      service.GatewayPush
}

// NewGatewayUseCase creates a new gateway use case
func NewGatewayUseCase(
	slotSvc service.SlotService,
	ledgerSvc service.LedgerService,
	rngSvc service.RNGService,
	push service.GatewayPush,
) *GatewayUseCase {
	return &GatewayUseCase{
		slotSvc:   slotSvc,
		ledgerSvc: ledgerSvc,
		rngSvc:    rngSvc,
		push:      push,
	}
}

// Spin runs one round for the player and pushes the result to their
// WebSocket connection, if any.
func (uc *GatewayUseCase) Spin(ctx context.Context, playerID string, betAmount int64) (*service.SpinOutcome, error) {
	outcome, err := uc.slotSvc.Spin(ctx, playerID, betAmount)
	if err != nil {
		return nil, err
	}

	if uc.push != nil {
		uc.push.SendToPlayer(playerID, map[string]interface{}{
			"type": "spin_result",
			"data": outcome,
		})
	}

	return outcome, nil
}

// Balance returns the player's current balance, opening the account on
// first reference.
func (uc *GatewayUseCase) Balance(ctx context.Context, playerID string) (int64, error) {
	acc, err := uc.ledgerSvc.GetOrCreateAccount(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Settlement returns the committed settlement for an idempotency key.
// A missing key yields (nil, nil).
func (uc *GatewayUseCase) Settlement(ctx context.Context, idempotencyKey string) (*service.SettlementInfo, error) {
	return uc.ledgerSvc.GetSettlement(ctx, idempotencyKey)
}

// ForceOutcome installs a one-shot forced draw on the randomness source.
func (uc *GatewayUseCase) ForceOutcome(ctx context.Context, outcome []int) error {
	return uc.rngSvc.ForceNext(ctx, outcome)
}

// RequestEnvelope defines the standard request structure
type RequestEnvelope struct {
	Game    string          `json:"game"`
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data"`
}

// HandleMessage dispatches a WebSocket message to the game modules
func (uc *GatewayUseCase) HandleMessage(ctx context.Context, playerID string, message []byte) ([]byte, error) {
	var req RequestEnvelope
	if err := json.Unmarshal(message, &req); err != nil {
		return nil, fmt.Errorf("invalid message format: %w", err)
	}

	if req.Game == "" || req.Command == "" {
		return nil, fmt.Errorf("missing game or command")
	}

	switch req.Game {
	case "slot":
		return uc.handleSlot(ctx, playerID, req.Command, req.Data)
	default:
		return nil, fmt.Errorf("unknown game: %s", req.Game)
	}
}

func (uc *GatewayUseCase) handleSlot(ctx context.Context, playerID string, command string, data []byte) ([]byte, error) {
	switch command {
	case "SlotSpinREQ":
		var payload struct {
			BetAmount int64 `json:"bet_amount"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("player_id", playerID).
				Str("command", command).
				Msg("Failed to unmarshal Spin payload")
			return nil, fmt.Errorf("invalid spin payload: %w", err)
		}

		outcome, err := uc.slotSvc.Spin(ctx, playerID, payload.BetAmount)
		if err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("player_id", playerID).
				Str("command", command).
				Msg("Spin failed")
			return json.Marshal(map[string]interface{}{
				"game":    "slot",
				"command": "SlotSpinRSP",
				"data": map[string]interface{}{
					"error": err.Error(),
				},
			})
		}

		return json.Marshal(map[string]interface{}{
			"game":    "slot",
			"command": "SlotSpinRSP",
			"data":    outcome,
		})

	case "SlotGetBalanceREQ":
		balance, err := uc.Balance(ctx, playerID)
		if err != nil {
			logger.Error(ctx).
				Err(err).
				Str("player_id", playerID).
				Str("command", command).
				Msg("GetBalance failed")
			return json.Marshal(map[string]interface{}{
				"game":    "slot",
				"command": "SlotGetBalanceRSP",
				"data": map[string]interface{}{
					"error": err.Error(),
				},
			})
		}

		return json.Marshal(map[string]interface{}{
			"game":    "slot",
			"command": "SlotGetBalanceRSP",
			"data": map[string]interface{}{
				"player_id": playerID,
				"balance":   balance,
			},
		})

	default:
		logger.Error(ctx).
			Str("player_id", playerID).
			Str("command", command).
			Msg("Unknown command for slot")
		return nil, fmt.Errorf("unknown command for slot: %s", command)
	}
}
