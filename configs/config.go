package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL   string
	Port          string
	CookieSecret  string
	SessionMaxAge int
	StripeKey     string
	FrontendURL   string
	CORSOrigins   []string
	CORSMethods   []string
	Email         EmailConfig
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getEnvOrDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=sickfits port=5432 sslmode=disable"),
		Port:          getEnvOrDefault("PORT", "3000"),
		CookieSecret:  os.Getenv("COOKIE_SECRET"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 60*60*24*60), // 60 days
		StripeKey:     os.Getenv("STRIPE_SECRET_KEY"),
		FrontendURL:   getEnvOrDefault("FRONTEND_URL", "http://localhost:7777"),
		CORSOrigins:   splitList(getEnvOrDefault("CORS_ORIGINS", "http://localhost:7777")),
		CORSMethods:   splitList(getEnvOrDefault("CORS_METHODS", "GET,POST,OPTIONS")),
		Email:         LoadEmailConfig(),
	}
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
