package service

// GatewayPush delivers gameplay events to a connected player. Delivery is
// best effort: a player with no open connection is not an error.
type GatewayPush interface {
	SendToPlayer(playerID string, event interface{})
}
