// Package config carries the service configuration read from the
// environment and the fixed scheme parameters.
package config

import (
	"os"
	"time"
)

// Scheme parameters. These mirror the published scheme guidelines and are
// referenced by validation and the assistant's canned answers.
const (
	// Relief amounts (INR)
	ImmediateReliefMin      = 25_000
	ImmediateReliefMax      = 825_000
	MarriageIncentiveAmount = 250_000

	// Service levels
	GrievanceResolutionSLA = 7 * 24 * time.Hour
	VerificationTurnaround = 3 * 24 * time.Hour
	VictimCacheTTL         = 12 * time.Hour
)

// GrievancePriorityRank orders priorities for triage, highest first.
var GrievancePriorityRank = map[string]int{
	"urgent": 4,
	"high":   3,
	"medium": 2,
	"low":    1,
}

// Config is everything main needs to wire the service.
type Config struct {
	PostgresDSN string
	RedisAddr   string
	RedisDB     int
	JWTSecret   string
	LocalesDir  string
	ListenAddr  string
}

// Load reads the configuration from the environment with local-development
// defaults matching docker-compose.
func Load() Config {
	return Config{
		PostgresDSN: getEnv("DATABASE_DSN", "host=localhost user=user password=password dbname=nyayadhaar port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     0,
		JWTSecret:   getEnv("JWT_SECRET", ""),
		LocalesDir:  getEnv("LOCALES_DIR", "locales"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
