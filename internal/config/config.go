package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries everything the service reads from the environment. The core
// providers never touch env vars themselves; they receive resolved values
// from here via main.
type Config struct {
	Port string

	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string

	DemoMode bool
	DemoSeed int64

	CacheTTLSeconds int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnvInt("DB_PORT", 5432),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "seller_analytics"),

		DemoMode: getEnvBool("DEMO_MODE", false),
		DemoSeed: int64(getEnvInt("DEMO_SEED", 42)),

		CacheTTLSeconds: getEnvInt("CACHE_TTL", 3600),
	}
}

// DSN resolves the postgres connection string. DATABASE_URL wins when set;
// a "postgres://" scheme is accepted as-is (lib/pq understands it).
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}
