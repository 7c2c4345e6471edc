package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration. Payment processor
// credentials must always come from the environment, never from code.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	// Payment gateway credentials and the storefront base URL used to
	// build the success/cancel redirects for hosted checkout.
	StripeSecretKey     string
	StripeWebhookSecret string
	ClientURL           string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:                getEnv("ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ClientURL:           strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:5173"), "/"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

// getEnv reads a string environment variable, falling back when unset or blank.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
