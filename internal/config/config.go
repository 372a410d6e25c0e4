package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        string
	DatabaseURL string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	StripeAPIKey        string
	StripeBaseURL       string
	StripeWebhookSecret string

	CheckoutSuccessURL string
	CheckoutCancelURL  string

	JWTSecret      string
	SiteOwnerEmail string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/leadmarket?sslmode=disable"),

		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),
		RabbitHost: getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getEnv("RABBITMQ_PORT", "5672"),

		MailHost: getEnv("MAIL_HOST", "localhost"),
		MailPort: getEnvInt("MAIL_PORT", 587),
		MailUser: getEnv("MAIL_USER", ""),
		MailPass: getEnv("MAIL_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@renoxbert.ca"),

		StripeAPIKey:        getEnv("STRIPE_API_KEY", ""),
		StripeBaseURL:       getEnv("STRIPE_BASE_URL", "https://api.stripe.com"),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", "whsec-dev-change-me"),

		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/subscribe/success"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/subscribe/cancel"),

		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		SiteOwnerEmail: getEnv("SITE_OWNER_EMAIL", "owner@renoxbert.ca"),
	}
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
		log.Printf("[config] %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}
