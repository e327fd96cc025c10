package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	Port            string
	TLSCert         string
	TLSKey          string
	TokenKey        []byte
	TokenTTL        time.Duration
	DatabaseURL     string
	RateLimit       rate.Limit
	RateBurst       int
	CORSOrigin      string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	key := os.Getenv("TOKEN_KEY")
	if key == "" {
		return nil, errors.New("TOKEN_KEY environment variable is not set")
	}
	cfg.TokenKey = []byte(key)

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	rps, err := getFloat("RATE_LIMIT_RPS", 1)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = rate.Limit(rps)
	if cfg.RateBurst, err = getInt("RATE_LIMIT_BURST", 3); err != nil {
		return nil, err
	}

	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return cfg, nil
}

func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// UsersEnabled reports whether a user database is configured. Without one
// the register and login routes answer 503.
func (c *Config) UsersEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
