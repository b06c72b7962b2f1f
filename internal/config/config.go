package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	PublicBaseURL       string
	StripeSecretKey     string
	StripeWebhookSecret string
	WooBaseURL          string
	WooConsumerKey      string
	WooConsumerSecret   string
	DatabaseDSN         string
	TrustedWebhookCIDRs []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		PublicBaseURL:       strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		WooBaseURL:          strings.TrimRight(getEnv("WOO_BASE_URL", "https://shop.example.com"), "/"),
		WooConsumerKey:      getEnv("WOO_CONSUMER_KEY", ""),
		WooConsumerSecret:   getEnv("WOO_CONSUMER_SECRET", ""),
		DatabaseDSN:         getEnv("DATABASE_DSN", ""),
		TrustedWebhookCIDRs: splitList(getEnv("TRUSTED_WEBHOOK_CIDRS", "")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
