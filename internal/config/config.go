package config

import (
	"os"
	"strconv"
)

// MonolithConfig holds all configuration for monolith mode
type MonolithConfig struct {
	User    UserConfig
	Slot    SlotConfig
	Gateway GatewayConfig
}

// LoadMonolithConfig loads all configurations for monolith mode
func LoadMonolithConfig() *MonolithConfig {
	userCfg := LoadUserConfig()
	slotCfg := LoadSlotConfig()
	gatewayCfg := LoadGatewayConfig()

	return &MonolithConfig{
		User:    *userCfg,
		Slot:    *slotCfg,
		Gateway: *gatewayCfg,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
