package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Payment simulation
	PaymentFailureRate float64
	PaymentDelay       time.Duration
	PaymentTimeout     time.Duration

	// Ticket lifecycle
	CancellationWindow time.Duration

	// Availability cache
	AvailabilityCacheTTL time.Duration

	// Purchase rate limiting
	PurchaseRateLimit  int
	PurchaseRateWindow time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Payments
		PaymentFailureRate: getEnvAsFloat("PAYMENT_FAILURE_RATE", 0.1),
		PaymentDelay:       getEnvAsDuration("PAYMENT_DELAY", "1s"),
		PaymentTimeout:     getEnvAsDuration("PAYMENT_TIMEOUT", "10s"),

		// Lifecycle
		CancellationWindow: getEnvAsDuration("CANCELLATION_WINDOW", "24h"),

		// Cache
		AvailabilityCacheTTL: getEnvAsDuration("AVAILABILITY_CACHE_TTL", "5s"),

		// Rate limiting
		PurchaseRateLimit:  getEnvAsInt("PURCHASE_RATE_LIMIT", 30),
		PurchaseRateWindow: getEnvAsDuration("PURCHASE_RATE_WINDOW", "1m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
