// Package local provides local adapters for the gateway module.
package local

import (
	"context"
	"encoding/json"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/ws"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"
)

// Broadcaster delivers gameplay events to WebSocket clients.
// It implements service.GatewayPush.
type Broadcaster struct {
	wsManager *ws.Manager
}

var _ service.GatewayPush = (*Broadcaster)(nil)

// NewBroadcaster creates a new broadcaster
func NewBroadcaster(wsManager *ws.Manager) *Broadcaster {
	return &Broadcaster{
		wsManager: wsManager,
	}
}

// SendToPlayer pushes one event to the player's connection. Undeliverable
// events are dropped.
func (b *Broadcaster) SendToPlayer(playerID string, event interface{}) {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		logger.Error(context.Background()).
			Err(err).
			Str("player_id", playerID).
			Msg("failed to marshal push event")
		return
	}
	b.wsManager.SendToPlayer(playerID, msgBytes)
}
