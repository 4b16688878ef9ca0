package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the process reads from the environment. Loaded once
// in main and passed down; nothing else touches os.Getenv after startup.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	FrontendURL string
	BackendURL  string

	GoogleClientID     string
	GoogleClientSecret string
	GithubClientID     string
	GithubClientSecret string

	GeminiAPIKey string

	SessionTTL time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("APP_ENV", "development"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		BackendURL:         os.Getenv("BACKEND_URL"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		SessionTTL:         168 * time.Hour,
	}

	if hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS")); err == nil && hours > 0 {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:" + cfg.Port
	}

	return cfg
}

// CallbackURL is the absolute OAuth redirect URL registered with a provider.
func (c *Config) CallbackURL(provider string) string {
	return c.BackendURL + "/auth/" + provider + "/callback"
}

// IsProduction controls whether internal error detail (stack traces) is
// echoed to clients.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GoogleEnabled reports whether Google sign-in credentials are configured.
// A missing pair disables the provider, not the app.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// GithubEnabled reports whether GitHub sign-in credentials are configured.
func (c *Config) GithubEnabled() bool {
	return c.GithubClientID != "" && c.GithubClientSecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
