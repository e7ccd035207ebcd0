package config

// SlotConfig holds configuration for the slot and ledger modules
type SlotConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	// RepoType selects the ledger store: "memory" or "postgres"
	RepoType string
	// ResultCache enables the Redis settlement replay cache
	ResultCache bool
	// SnowflakeNode identifies this instance for spin ID generation
	SnowflakeNode int
}

// LoadSlotConfig loads configuration for the slot module
func LoadSlotConfig() *SlotConfig {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "slot_user"),
		Password: getEnv("DB_PASSWORD", "slot_pass"),
		Name:     getEnv("DB_NAME", "slot_db"),
	}

	redisConfig := RedisConfig{
		Host: getEnv("REDIS_HOST", "localhost"),
		Port: getEnv("REDIS_PORT", "6379"),
	}

	return &SlotConfig{
		Server: ServerConfig{
			Port: getEnv("SLOT_HTTP_PORT", "8083"),
			Name: "slot-service",
		},
		Database:      dbConfig,
		Redis:         redisConfig,
		RepoType:      getEnv("LEDGER_REPO_TYPE", "memory"),
		ResultCache:   getEnvBool("LEDGER_RESULT_CACHE", false),
		SnowflakeNode: getEnvInt("SNOWFLAKE_NODE", 1),
	}
}
