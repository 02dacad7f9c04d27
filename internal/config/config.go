package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string
	JWTSecret   string

	LogLevel string
	LogPath  string

	CatalogPath string
	Timezone    *time.Location

	DedupWindow     time.Duration
	GiftMaxAmount   int
	GiftRateLimit   time.Duration
	DailyTriviaSize int
	BookOfDayPool   int
	QuestRetention  time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  os.Getenv("LOG_PATH"),

		CatalogPath: os.Getenv("CATALOG_PATH"),
	}

	var err error
	if cfg.DedupWindow, err = parseDuration(getEnv("DEDUP_WINDOW", "5m")); err != nil {
		return nil, fmt.Errorf("invalid DEDUP_WINDOW: %w", err)
	}
	if cfg.GiftRateLimit, err = parseDuration(getEnv("GIFT_RATE_LIMIT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid GIFT_RATE_LIMIT: %w", err)
	}
	if cfg.QuestRetention, err = parseDuration(getEnv("QUEST_RETENTION", "336h")); err != nil {
		return nil, fmt.Errorf("invalid QUEST_RETENTION: %w", err)
	}
	if cfg.GiftMaxAmount, err = parseInt(getEnv("GIFT_MAX_AMOUNT", "10000")); err != nil {
		return nil, fmt.Errorf("invalid GIFT_MAX_AMOUNT: %w", err)
	}
	if cfg.DailyTriviaSize, err = parseInt(getEnv("DAILY_TRIVIA_SIZE", "5")); err != nil {
		return nil, fmt.Errorf("invalid DAILY_TRIVIA_SIZE: %w", err)
	}
	if cfg.BookOfDayPool, err = parseInt(getEnv("BOOK_OF_DAY_POOL", "50")); err != nil {
		return nil, fmt.Errorf("invalid BOOK_OF_DAY_POOL: %w", err)
	}
	if cfg.Timezone, err = time.LoadLocation(getEnv("TIMEZONE", "Local")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
