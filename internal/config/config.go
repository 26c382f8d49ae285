package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralizuje konfigurację wczytaną ze środowiska.
type Config struct {
	Port             int
	DBDSN            string
	RedisURL         string
	JWTSecret        string
	IdentityAPIURL   string
	IdentityAPIToken string
	AllowOrigins     []string
	UserCacheTTL     time.Duration
	RateLimitPublic  RateLimitConfig
	RateLimitAuth    RateLimitConfig
}

// RateLimitConfig opisuje proste limity throttlingu.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load wczytuje zmienne środowiskowe i stosuje bezpieczne wartości domyślne.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT nieprawidłowy")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN wymagany")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL wymagany")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET musi mieć co najmniej 32 znaki")
	}

	cfg.IdentityAPIURL = strings.TrimRight(strings.TrimSpace(getEnv("IDENTITY_API_URL", "")), "/")
	if cfg.IdentityAPIURL == "" {
		return nil, errors.New("IDENTITY_API_URL wymagany")
	}
	cfg.IdentityAPIToken = strings.TrimSpace(getEnv("IDENTITY_API_TOKEN", ""))

	cacheTTL, err := parseDurationEnv("USER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.UserCacheTTL = cacheTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " nieprawidłowy")
	}
	return dur, nil
}
