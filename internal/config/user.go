package config

import "time"

// UserConfig holds configuration for the user module
type UserConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
}

// LoadUserConfig loads configuration for the user module
func LoadUserConfig() *UserConfig {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "slot_user"),
		Password: getEnv("DB_PASSWORD", "slot_pass"),
		Name:     getEnv("DB_NAME", "slot_db"),
	}

	return &UserConfig{
		Server: ServerConfig{
			Port: getEnv("USER_HTTP_PORT", "8082"),
			Name: "user-service",
		},
		Database: dbConfig,
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "dev-secret-key"),
			Duration: 24 * time.Hour,
		},
	}
}
