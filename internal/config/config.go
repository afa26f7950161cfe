package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
	Stripe      StripeConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
	Printer     PrinterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	// Driver is postgres or memory
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Migrate  bool
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level string
}

// StripeConfig enables the card processor when APIKey is set
type StripeConfig struct {
	APIKey    string
	AccountID string
}

// KafkaConfig enables order events when Brokers is not empty
type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type IdempotencyConfig struct {
	// Backend is postgres or redis
	Backend string
	TTL     time.Duration
}

// PrinterConfig selects the receipt printer. Type is usb, network or none.
type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// Load reads .env and the environment
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}
	return FromViper(v)
}

// FromViper applies defaults and environment overrides to v and builds the Config
func FromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "pos-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "pos")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC_ORDERS", "pos.orders")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_BACKEND", "postgres")
	v.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_WIDTH", 32)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: list(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: list(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: list(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Stripe: StripeConfig{
			APIKey:    v.GetString("STRIPE_API_KEY"),
			AccountID: v.GetString("STRIPE_ACCOUNT_ID"),
		},
		Kafka: KafkaConfig{
			Brokers:     list(v.GetString("KAFKA_BROKERS")),
			OrdersTopic: v.GetString("KAFKA_TOPIC_ORDERS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Idempotency: IdempotencyConfig{
			Backend: strings.ToLower(v.GetString("IDEMPOTENCY_BACKEND")),
			TTL:     time.Duration(v.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
		Printer: PrinterConfig{
			Type:    strings.ToLower(v.GetString("PRINTER_TYPE")),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
	}
}

// list splits a comma separated value, dropping blanks
func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN returns the postgres connection string. Sessions run in UTC.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=UTC"
}

// IsProduction reports whether the app runs in production
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
