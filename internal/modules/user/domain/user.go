// Package domain holds the user module's core types. The username doubles
// as the opaque player identifier the ledger is keyed by.
package domain

import (
	"context"
	"time"
)

// Player represents a registered player
type Player struct {
	UserID       int64      `json:"user_id" gorm:"primaryKey;column:user_id;autoIncrement"`
	Username     string     `json:"username" gorm:"column:username;unique;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Status       int        `json:"status" gorm:"column:status;default:1"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" gorm:"column:last_login_at"`
}

// TableName overrides the table name
func (Player) TableName() string {
	return "players"
}

// Session represents a player session; the session ID doubles as the
// refresh token
type Session struct {
	SessionID string    `json:"session_id" gorm:"primaryKey;column:session_id"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;index"`
	Token     string    `json:"token" gorm:"column:token;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;index"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the table name
func (Session) TableName() string {
	return "sessions"
}

// Player status constants
const (
	PlayerStatusActive    = 1
	PlayerStatusSuspended = 2
	PlayerStatusBanned    = 3
)

// IsActive checks if the player is active
func (p *Player) IsActive() bool {
	return p.Status == PlayerStatusActive
}

// UserUseCase defines the interface for user business logic.
// This interface is used by the HTTP and local adapters.
type UserUseCase interface {
	Register(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (int64, string, string, time.Time, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (int64, string, time.Time, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, time.Time, error)
}
