// Package config loads server settings from the environment with
// fail-fast validation at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings for the donelist server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - DatabasePath: path to the SQLite database file.
//   - JWTSecret: HMAC secret for signing bearer tokens (HS256). Required;
//     rotating it invalidates all outstanding tokens.
//   - AccessTokenTTL: bearer token lifetime.
//   - ResetTokenTTL: password-reset token lifetime.
//   - FrontendURL: base URL embedded in password-reset links.
//   - MailAPIKey / MailEndpoint / MailFrom / MailFromName: outbound email
//     settings; MailEndpoint empty means the provider default.
//   - RateLimit / RateLimitWindow: request budget for the public auth
//     endpoints per client IP.
type Config struct {
	ListenAddr      string
	DatabasePath    string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	ResetTokenTTL   time.Duration
	FrontendURL     string
	MailAPIKey      string
	MailEndpoint    string
	MailFrom        string
	MailFromName    string
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load builds a Config from DONELIST_* environment variables, applying
// defaults for everything except the JWT secret.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:   getEnv("DONELIST_ADDR", ":8080"),
		DatabasePath: getEnv("DONELIST_DB_PATH", "donelist.db"),
		JWTSecret:    os.Getenv("DONELIST_JWT_SECRET"),
		FrontendURL:  getEnv("DONELIST_FRONTEND_URL", "http://localhost:5173"),
		MailAPIKey:   os.Getenv("DONELIST_MAIL_API_KEY"),
		MailEndpoint: os.Getenv("DONELIST_MAIL_ENDPOINT"),
		MailFrom:     getEnv("DONELIST_MAIL_FROM", "noreply@donelist.local"),
		MailFromName: getEnv("DONELIST_MAIL_FROM_NAME", "Donelist"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("DONELIST_JWT_SECRET is required")
	}

	var err error
	if cfg.AccessTokenTTL, err = getEnvDuration("DONELIST_ACCESS_TOKEN_TTL", 168*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ResetTokenTTL, err = getEnvDuration("DONELIST_RESET_TOKEN_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getEnvInt("DONELIST_RATE_LIMIT", 30); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("DONELIST_RATE_WINDOW", time.Minute); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
