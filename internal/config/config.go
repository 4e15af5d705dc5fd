// Package config loads service settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort string
	RunLocal    bool
	LogLevel    string

	CatalogConfig   CatalogConfig
	AWSConfig       AWSConfig
	IdempotencyTTL  time.Duration
	AllowedOrigins  []string
	LoginRatePerMin int
	SessionIdleTTL  time.Duration
	// TrustedProxies may set X-Forwarded-For. Empty means the client IP is
	// always the peer address.
	TrustedProxies []string
}

type CatalogConfig struct {
	BaseURL         string
	Limit           int
	CategoryLimit   int
	HTTPTimeout     time.Duration
	RefreshInterval time.Duration
}

type AWSConfig struct {
	Region           string
	EndpointOverride string
	OrdersTable      string
	IdempotencyTable string
	SessionsTable    string
	OrdersQueueURL   string
	MetricsNamespace string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		ServicePort: getString("SERVICE_PORT", "8080"),
		RunLocal:    getBool("RUN_LOCAL"),
		LogLevel:    getString("LOG_LEVEL", "info"),
		CatalogConfig: CatalogConfig{
			BaseURL:         getString("CATALOG_BASE_URL", "https://api.escuelajs.co/api/v1"),
			Limit:           getInt("CATALOG_LIMIT", 100),
			CategoryLimit:   getInt("CATEGORY_LIMIT", 15),
			HTTPTimeout:     getDuration("HTTP_TIMEOUT", 10*time.Second),
			RefreshInterval: getDuration("CATALOG_REFRESH_INTERVAL", 15*time.Minute),
		},
		AWSConfig: AWSConfig{
			Region:           getString("AWS_REGION", "us-east-1"),
			EndpointOverride: os.Getenv("AWS_ENDPOINT_OVERRIDE"),
			OrdersTable:      os.Getenv("ORDERS_TABLE"),
			IdempotencyTable: os.Getenv("IDEMPOTENCY_TABLE"),
			SessionsTable:    os.Getenv("SESSIONS_TABLE"),
			OrdersQueueURL:   os.Getenv("ORDERS_QUEUE_URL"),
			MetricsNamespace: getString("METRICS_NAMESPACE", "Storefront"),
		},
		IdempotencyTTL:  getDuration("IDEMPOTENCY_TTL", 48*time.Hour),
		AllowedOrigins:  getList("ALLOWED_ORIGINS", []string{"*"}),
		LoginRatePerMin: getInt("LOGIN_RATE_PER_MINUTE", 5),
		SessionIdleTTL:  getDuration("SESSION_IDLE_TTL", 2*time.Hour),
		TrustedProxies:  getList("TRUSTED_PROXIES", nil),
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
