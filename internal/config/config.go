package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerHost string
	ServerPort string

	// Upstream showtime feed
	FeedBaseURL  string
	Market       string
	FeedTimeZone string // IANA identifier; empty means derive from the feed

	// Query defaults
	DefaultTheater  string
	DefaultMinSeats int

	// Voice platform webhook auth; empty disables verification
	SkillSecret string

	// CORS (for the voice-platform web test console)
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int

	// Optional query-history database
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string

	// Optional query analytics
	KafkaURL              string
	QueryEventsKafkaTopic string
}

// LoadEnv loads environment variables from .env files
func LoadEnv() {
	// Try to find the .env file from the current working directory
	// and from the directory where the binary is located
	envPaths := []string{
		".env",    // Current directory
		"../.env", // One level up
		filepath.Join(os.Getenv("HOME"), "projects/ms-showtimes/.env"), // Specific project path
	}

	for _, path := range envPaths {
		err := godotenv.Load(path)
		if err == nil {
			log.Printf("Loaded environment variables from %s", path)
			return
		}
	}

	log.Println("No .env file found, using environment variables")
}

func Load() Config {
	// Load environment variables from .env file first
	LoadEnv()

	log.Println("Loading configuration from environment variables")
	return Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8085"),

		FeedBaseURL:  getEnv("FEED_BASE_URL", "https://feeds.drafthouse.com/adcService/showtimes.svc"),
		Market:       getEnv("MARKET", "0000"),
		FeedTimeZone: getEnv("FEED_TIME_ZONE", ""),

		DefaultTheater:  getEnv("DEFAULT_THEATER", "Lakeline"),
		DefaultMinSeats: getEnvInt("DEFAULT_MIN_SEATS", 10),

		SkillSecret: getEnv("SKILL_SECRET", ""),

		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", "*"),
		AllowedMethods: getEnvList("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
		AllowedHeaders: getEnvList("CORS_ALLOWED_HEADERS", "Authorization,Content-Type"),
		MaxAge:         getEnvInt("CORS_MAX_AGE", 3600),

		DatabaseHost:     getEnv("DATABASE_HOST", ""),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "showtimes"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		DatabaseName:     getEnv("DATABASE_NAME", "ms_showtimes"),
		DatabaseSSLMode:  getEnv("DATABASE_SSL_MODE", "disable"),

		KafkaURL:              getEnv("KAFKA_URL", ""),
		QueryEventsKafkaTopic: getEnv("KAFKA_QUERY_EVENTS_TOPIC", "showtimes.query-events"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		log.Printf("Loaded env var %s: %s", key, value)
		return value
	}
	log.Printf("Env var %s not set, using fallback: %s", key, fallback)
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Env var %s is not a number (%q), using fallback: %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvList(key, fallback string) []string {
	value := getEnv(key, fallback)
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
