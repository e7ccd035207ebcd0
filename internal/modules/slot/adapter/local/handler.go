// Package local provides the local (in-process) adapter for the slot
// module. It implements service.SlotService.
package local

import (
	"context"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/slot/usecase"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

// Handler is the local adapter for the slot module
type Handler struct {
	spinUC *usecase.SpinUseCase
}

// NewHandler creates a new local slot handler
func NewHandler(spinUC *usecase.SpinUseCase) *Handler {
	return &Handler{
		spinUC: spinUC,
	}
}

// Spin runs one orchestrated spin
func (h *Handler) Spin(ctx context.Context, playerID string, betAmount int64) (*service.SpinOutcome, error) {
	res, err := h.spinUC.Spin(ctx, playerID, betAmount)
	if err != nil {
		return nil, err
	}

	return &service.SpinOutcome{
		SpinID:       res.SpinID,
		Numbers:      res.Numbers,
		WinAmount:    res.WinAmount,
		WinningLines: res.WinningLines,
		NewBalance:   res.NewBalance,
	}, nil
}
