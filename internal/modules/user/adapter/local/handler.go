// Package local exposes the user module to other modules in the same
// process.
package local

import (
	"context"
	"time"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/user/domain"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

// Handler adapts the user use case to the in-process service contract.
type Handler struct {
	uc domain.UserUseCase
}

var _ service.UserService = (*Handler)(nil)

// NewHandler creates a new local handler
func NewHandler(uc domain.UserUseCase) *Handler {
	return &Handler{uc: uc}
}

// ValidateToken validates a token and returns the identity it carries
func (h *Handler) ValidateToken(ctx context.Context, token string) (int64, string, time.Time, error) {
	return h.uc.ValidateToken(ctx, token)
}
