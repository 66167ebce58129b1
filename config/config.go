package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Payment  PaymentConfig
	Geocode  GeocodeConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// PostgresConfig holds connection settings for the wash-center catalog.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// RedisConfig holds settings for the geocode result cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// AuthConfig holds session-token and admin-login settings.
// The admin credential pair mirrors the legacy fixed login.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string
}

// PaymentConfig holds the checkout-provider key placeholder and the
// simulated processing delay for card/cash payments.
type PaymentConfig struct {
	ProviderKey     string
	Currency        string
	ProcessingDelay time.Duration
}

// GeocodeConfig holds the reverse-geocoding endpoint settings.
type GeocodeConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerAddr returns the HTTP listen address in host:port format.
func (s *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// ── Defaults ────────────────────────────────────────
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "5s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "bikewash")
	viper.SetDefault("POSTGRES_PASSWORD", "bikewash_secret")
	viper.SetDefault("POSTGRES_DB", "bikewash_db")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_CONNS", 20)
	viper.SetDefault("POSTGRES_MIN_CONNS", 4)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 50)

	viper.SetDefault("AUTH_SESSION_SECRET", "dev-session-secret-change-me")
	viper.SetDefault("AUTH_SESSION_TTL", "24h")
	viper.SetDefault("AUTH_ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("AUTH_ADMIN_PASSWORD", "admin123")

	viper.SetDefault("PAYMENT_PROVIDER_KEY", "rzp_test_placeholder")
	viper.SetDefault("PAYMENT_CURRENCY", "USD")
	viper.SetDefault("PAYMENT_PROCESSING_DELAY", "1500ms")

	viper.SetDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODE_TIMEOUT", "5s")
	viper.SetDefault("GEOCODE_CACHE_TTL", "1h")

	// Try to read .env file. If it doesn't exist (e.g., inside Docker),
	// env vars injected by docker-compose env_file are used instead.
	_ = viper.ReadInConfig()

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Host:         viper.GetString("SERVER_HOST"),
		Port:         viper.GetInt("SERVER_PORT"),
		ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
		WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
		IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
	}

	cfg.Postgres = PostgresConfig{
		Host:     viper.GetString("POSTGRES_HOST"),
		Port:     viper.GetInt("POSTGRES_PORT"),
		User:     viper.GetString("POSTGRES_USER"),
		Password: viper.GetString("POSTGRES_PASSWORD"),
		DBName:   viper.GetString("POSTGRES_DB"),
		SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
		MinConns: viper.GetInt32("POSTGRES_MIN_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     viper.GetString("REDIS_HOST"),
		Port:     viper.GetInt("REDIS_PORT"),
		Password: viper.GetString("REDIS_PASSWORD"),
		DB:       viper.GetInt("REDIS_DB"),
		PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
	}

	cfg.Auth = AuthConfig{
		SessionSecret: viper.GetString("AUTH_SESSION_SECRET"),
		SessionTTL:    viper.GetDuration("AUTH_SESSION_TTL"),
		AdminEmail:    viper.GetString("AUTH_ADMIN_EMAIL"),
		AdminPassword: viper.GetString("AUTH_ADMIN_PASSWORD"),
	}

	cfg.Payment = PaymentConfig{
		ProviderKey:     viper.GetString("PAYMENT_PROVIDER_KEY"),
		Currency:        viper.GetString("PAYMENT_CURRENCY"),
		ProcessingDelay: viper.GetDuration("PAYMENT_PROCESSING_DELAY"),
	}

	cfg.Geocode = GeocodeConfig{
		BaseURL:  viper.GetString("GEOCODE_BASE_URL"),
		Timeout:  viper.GetDuration("GEOCODE_TIMEOUT"),
		CacheTTL: viper.GetDuration("GEOCODE_CACHE_TTL"),
	}

	return cfg, nil
}
