package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string
	ServerAddress  string

	// Redis is optional; an empty address disables the schedule cache.
	RedisAddress     string
	RedisUsername    string
	RedisPassword    string
	ScheduleCacheTTL time.Duration

	// MQTT is optional; an empty URL disables notifications.
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTTopicPrefix string

	Timezone    *time.Location
	ApplierSpec string
}

// Load reads a .env file if one exists, then configuration from
// environment variables. Variables already set win over the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	jwt := os.Getenv("JWT_SECRET")
	if jwt == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl := 10 * time.Minute
	if v := os.Getenv("SCHEDULE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("SCHEDULE_CACHE_TTL: invalid duration %q", v)
		}
		ttl = d
	}

	tz := getenv("SCHEDULE_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_TIMEZONE: %w", err)
	}

	return &Config{
		Environment:      getenv("APP_ENV", "development"),
		DatabaseURL:      dbURL,
		MigrationsPath:   getenv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:        jwt,
		ServerAddress:    getenv("SERVER_ADDRESS", ":8080"),
		RedisAddress:     os.Getenv("REDIS_ADDRESS"),
		RedisUsername:    os.Getenv("REDIS_USERNAME"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		ScheduleCacheTTL: ttl,
		MQTTBrokerURL:    os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:     getenv("MQTT_CLIENT_ID", "warden-server"),
		MQTTTopicPrefix:  getenv("MQTT_TOPIC_PREFIX", "warden"),
		Timezone:         loc,
		ApplierSpec:      getenv("APPLIER_SPEC", "@every 1m"),
	}, nil
}

func (c *Config) IsProduction() bool { return c.Environment == "production" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
