package service

import "context"

// SpinOutcome is the caller-facing result of one orchestrated spin
type SpinOutcome struct {
	SpinID       string
	Numbers      []int
	WinAmount    int64
	WinningLines []int
	NewBalance   int64
}

// SlotService is the sole gameplay entry point exposed to the gateway
type SlotService interface {
	Spin(ctx context.Context, playerID string, betAmount int64) (*SpinOutcome, error)
}
