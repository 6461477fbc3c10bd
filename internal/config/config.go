package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port          string
	PublicBaseURL string
	SessionSecret string
	CookieSecure  bool

	DatabaseURL string
	SQLitePath  string

	IdentityURL    string
	IdentityAPIKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	TallySigningSecret string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5000"),
		SessionSecret: getEnv("SESSION_SECRET", "change_me_in_production"),
		CookieSecure:  getEnv("COOKIE_SECURE", "") == "true",

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", filepath.Join("data", "ruta.db")),

		IdentityURL:    getEnv("IDENTITY_URL", ""),
		IdentityAPIKey: getEnv("IDENTITY_API_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),

		TallySigningSecret: getEnv("TALLY_SIGNING_SECRET", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.IdentityURL == "" {
		return fmt.Errorf("IDENTITY_URL is required")
	}
	if cfg.IdentityAPIKey == "" {
		return fmt.Errorf("IDENTITY_API_KEY is required")
	}
	return nil
}

func (cfg *Config) MailerConfigured() bool {
	return cfg.SMTPHost != "" && cfg.SMTPUsername != ""
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s value %q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
