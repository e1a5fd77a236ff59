package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Port        string
	Environment string
	SiteBaseURL string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisURL string
	CartTTL  time.Duration

	// Razorpay credentials. The key secret doubles as the HMAC secret for
	// payment-signature verification. It is deliberately NOT required at
	// startup: verification fails closed per request when it is absent.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Content store (headless CMS) identifiers.
	ContentStoreProjectID string
	ContentStoreDataset   string
	ContentStoreToken     string

	JWTSecret string

	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string
	SMTPSenderName string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// No .env file is fine in containers; system env is used instead.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		SiteBaseURL: getEnv("SITE_BASE_URL", "http://localhost:3000"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CartTTL:  getDurationEnv("CART_TTL", 30*24*time.Hour),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		ContentStoreProjectID: os.Getenv("CONTENT_STORE_PROJECT_ID"),
		ContentStoreDataset:   getEnv("CONTENT_STORE_DATASET", "production"),
		ContentStoreToken:     os.Getenv("CONTENT_STORE_TOKEN"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPSenderName: getEnv("SMTP_SENDER_NAME", "Kaveri Looms"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.ContentStoreProjectID == "" {
		return nil, fmt.Errorf("CONTENT_STORE_PROJECT_ID not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
