package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env      string
	Port     string
	Location *time.Location

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	JWTSecret string

	RateLimitRPS   float64
	RateLimitBurst int

	OutboxPollInterval time.Duration
	StatsCacheTTL      time.Duration
}

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// URL is the postgres:// form expected by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
}

// Load reads the process environment. Call godotenv.Load before it when a
// .env file should be honoured.
func Load() (Config, error) {
	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	poll, err := time.ParseDuration(getEnv("OUTBOX_POLL_INTERVAL", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL: %w", err)
	}
	statsTTL, err := time.ParseDuration(getEnv("STATS_CACHE_TTL", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}

	return Config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "3000"),
		Location: loc,
		Database: DatabaseConfig{
			Host:       os.Getenv("DB_HOST"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: 5,
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker:        os.Getenv("KAFKA_BROKER"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "go-leavedesk-balance"),
		},
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		OutboxPollInterval: poll,
		StatsCacheTTL:      statsTTL,
	}, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
