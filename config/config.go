package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	CatalogPath   string
	CatalogSource string
	TopN          int
	LogLevel      string
	MaxRetries    int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		CatalogPath:   getEnv("CATALOG_PATH", "./data/googleplaystore.csv"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", SourceCSV)),
		TopN:          getEnvInt("TOP_N", 5),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MaxRetries:    getEnvInt("MAX_RETRIES", 3),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "catalog"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "catalog"),
		PostgresDB:       getEnv("POSTGRES_DB", "playstore"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
