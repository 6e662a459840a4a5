package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string // "development" or "production"
	SiteURL     string
	FrontendURL string
	// reCAPTCHA Configuration
	RecaptchaSecretKey string
	RecaptchaSiteKey   string
	RecaptchaVerifyURL string
	// Email Configuration (Resend)
	ResendAPIKey   string
	EmailFrom      string // Verified sender address
	ContactEmailTo string // Operator inbox receiving form submissions
	// Geolocation Configuration
	GeoIPBaseURL string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitContactRequests int
	// Localization
	DefaultLanguage string
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		// Strip trailing slashes so URL joins never produce double slashes
		SiteURL:     strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// reCAPTCHA
		RecaptchaSecretKey: getEnv("RECAPTCHA_SECRET_KEY", ""),
		RecaptchaSiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
		RecaptchaVerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		// Email (Resend)
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@codewave.agency"), // Must be a verified domain in Resend
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "hello@codewave.agency"),
		// Geolocation
		GeoIPBaseURL: getEnv("GEOIP_BASE_URL", "https://ipapi.co"),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
		RateLimitContactRequests: getEnvInt("RATE_LIMIT_CONTACT_REQUESTS", 5),
		// Localization
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
	}

	// Missing secrets degrade features instead of blocking startup, but the
	// operator should know about it.
	if cfg.RecaptchaSecretKey == "" {
		log.Println("WARNING: RECAPTCHA_SECRET_KEY not configured. Token verification will be skipped.")
	}
	if cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY not configured. Submissions will be logged instead of emailed.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
