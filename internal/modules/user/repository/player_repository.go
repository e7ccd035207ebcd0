// Package repository handles user-module persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/user/domain"
	"gorm.io/gorm"
)

// PlayerRepository handles player data persistence
type PlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create creates a new player
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, userID int64) (*domain.Player, error) {
	var player domain.Player
	if err := r.db.WithContext(ctx).First(&player, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found")
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// GetByUsername retrieves a player by username
func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	var player domain.Player
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found")
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// UpdateLastLogin updates the player's last login timestamp
func (r *PlayerRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&domain.Player{}).Where("user_id = ?", userID).Update("last_login_at", now).Error; err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UsernameExists checks if a username already exists
func (r *PlayerRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Player{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}
