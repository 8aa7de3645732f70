package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

// StoreConfig holds the credentials for the remote record store. The base ID
// selects the workspace; every table lives under it.
type StoreConfig struct {
	Endpoint string
	APIKey   string
	BaseID   string
	Timeout  time.Duration
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
}

// IntegrationsConfig covers the external collaborator boundary.
type IntegrationsConfig struct {
	// SessionTTL bounds how long a stored accounting session survives without
	// a refresh.
	SessionTTL time.Duration
}

type Config struct {
	Server       ServerConfig
	Store        StoreConfig
	JWT          JWTConfig
	Redis        RedisConfig
	Integrations IntegrationsConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			Endpoint: getEnv("AIRTABLE_ENDPOINT_URL", "https://api.airtable.com"),
			APIKey:   getEnv("AIRTABLE_API_KEY", ""),
			BaseID:   getEnv("AIRTABLE_BASE_ID", ""),
			Timeout:  20 * time.Second,
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "change-me"),
			AccessTokenTTL:  time.Hour * 24,
			RefreshTokenTTL: time.Hour * 24 * 7,
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Integrations: IntegrationsConfig{
			SessionTTL: 30 * 24 * time.Hour,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
