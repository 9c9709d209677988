package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	cartworkflows "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/workflows"
	"github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	VoiceServiceURL   string
	LogLevel          slog.Level

	SnapshotPollInterval time.Duration
	CheckoutDelay        time.Duration
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	ShutdownTimeout      time.Duration

	CallRatePerMinute float64
	CallBurst         int
}

// LoadConfig reads an optional .env file, then the environment, applies
// defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8000"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		VoiceServiceURL:   strings.TrimSpace(os.Getenv("VOICE_SERVICE_URL")),
		LogLevel:          observability.ParseLevel(os.Getenv("LOG_LEVEL")),
	}
	var errs []error
	cfg.SnapshotPollInterval = envDuration("SNAPSHOT_POLL_INTERVAL", 3*time.Second, &errs)
	cfg.CheckoutDelay = envDuration("CHECKOUT_DELAY", cartworkflows.DefaultProcessingDelay, &errs)
	cfg.SessionTTL = envDuration("SESSION_TTL", 30*time.Minute, &errs)
	cfg.SessionSweepInterval = envDuration("SESSION_SWEEP_INTERVAL", time.Minute, &errs)
	cfg.ShutdownTimeout = envDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)
	cfg.CallRatePerMinute = envFloat("CALL_RATE_PER_MINUTE", 10, &errs)
	cfg.CallBurst = envInt("CALL_BURST", 3, &errs)
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a positive duration such as 3s", key))
		return fallback
	}
	return d
}

func envFloat(key string, fallback float64, errs *[]error) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		*errs = append(*errs, fmt.Errorf("%s must be zero or a positive number", key))
		return fallback
	}
	return v
}

func envInt(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a positive integer", key))
		return fallback
	}
	return v
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
