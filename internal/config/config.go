package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	JWTSecret     string
	TokenDuration time.Duration

	// Invitation lifecycle
	InvitationTTL time.Duration
	SweepInterval time.Duration

	// Email (Amazon SES)
	SESRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Push (FCM HTTP v1)
	FCMProjectID       string
	FCMCredentialsFile string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./famlink.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		JWTSecret:     getEnv("JWT_SECRET", "famlink-dev-secret"),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 24*time.Hour),

		InvitationTTL: getEnvDuration("INVITATION_TTL", 48*time.Hour),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", 24*time.Hour),

		SESRegion:    getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Famlink"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		FCMProjectID:       getEnv("FCM_PROJECT_ID", ""),
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
