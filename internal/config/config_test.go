package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, "pos-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.CORS.AllowedHeaders)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres", cfg.Idempotency.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
	t.Setenv("IDEMPOTENCY_BACKEND", "Redis")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("PRINTER_TYPE", "Network")
	t.Setenv("PRINTER_ADDRESS", "10.0.0.20:9100")

	cfg := FromViper(viper.New())

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "sk_test_123", cfg.Stripe.APIKey)
	assert.Equal(t, "redis", cfg.Idempotency.Backend)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, "network", cfg.Printer.Type)
	assert.Equal(t, "10.0.0.20:9100", cfg.Printer.Address)
}

func TestDSNUsesUTC(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", Name: "pos", User: "pos", Password: "secret", SSLMode: "require"}
	assert.Equal(t, "host=db user=pos password=secret dbname=pos port=5432 sslmode=require TimeZone=UTC", db.DSN())
}
