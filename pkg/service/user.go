package service

import (
	"context"
	"time"
)

// UserService defines the user-module operations other modules consume
type UserService interface {
	// ValidateToken verifies a JWT and returns the player identity it carries
	ValidateToken(ctx context.Context, token string) (userID int64, username string, expiresAt time.Time, err error)
}
