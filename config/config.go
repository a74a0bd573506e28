package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kataras/golog"
)

const devJWTSecret = "DEV-JWT-SECRET-CHANGE-ME"

type Config struct {
	Port        string
	DatabaseURL string
	Environment string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
	JWKSURL   string

	RedisAddr     string
	RedisPassword string
	CarCacheTTL   time.Duration

	MailjetAPIKey    string
	MailjetSecretKey string
	MailFromEmail    string
	MailFromName     string

	CORSOrigins []string

	// AllowAdminSignup lets POST /api/auth/signup create admin accounts.
	AllowAdminSignup bool
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Environment:      getEnv("APP_ENV", "development"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        getEnv("JWT_ISSUER", "carrental-server"),
		JWKSURL:          os.Getenv("JWKS_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
		MailjetSecretKey: os.Getenv("MAILJET_SECRET_KEY"),
		MailFromEmail:    getEnv("MAIL_FROM_EMAIL", "no-reply@carrental.local"),
		MailFromName:     getEnv("MAIL_FROM_NAME", "Car Rental"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set in the environment variables")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		golog.Warn("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	var err error
	if cfg.AllowAdminSignup, err = getBool("ALLOW_ADMIN_SIGNUP", !cfg.IsProduction()); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CarCacheTTL, err = getDuration("CAR_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
