package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const developmentJWTSecret = "crumbly-development-secret"

// Config holds storefront configuration
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	Database DatabaseConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Kafka    KafkaConfig

	JaegerEndpoint string
	AllowedOrigins []string
	PublicDir      string
}

// DatabaseConfig holds connection and pool settings
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	QueryTimeout    time.Duration
}

// AuthConfig holds session and password settings
type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	CookieName   string
	CookieSecure bool
}

// UploadConfig selects where registration photos are stored
type UploadConfig struct {
	Backend        string
	MaxUploadBytes int64
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// KafkaConfig holds event publishing settings
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "crumbly-storefront"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8081"),
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "cakes"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second),
			QueryTimeout:    getEnvDuration("DB_QUERY_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvDuration("JWT_TTL", 24*time.Hour),
			BcryptCost:   getEnvInt("BCRYPT_COST", 10),
			CookieName:   getEnv("COOKIE_NAME", "token"),
			CookieSecure: getEnvBool("COOKIE_SECURE", false),
		},
		Upload: UploadConfig{
			Backend:        strings.ToLower(getEnv("UPLOAD_BACKEND", "local")),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			MinioBucket:    getEnv("MINIO_BUCKET", "crumbly-photos"),
			MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "storefront-events"),
		},
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		PublicDir:      getEnv("PUBLIC_DIR", "public"),
	}

	if cfg.Auth.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required in %s environment", cfg.Environment)
		}
		cfg.Auth.JWTSecret = developmentJWTSecret
	}

	if cfg.Upload.Backend != "local" && cfg.Upload.Backend != "minio" {
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.Upload.Backend)
	}

	return cfg, nil
}

// IsDevelopment reports whether the process runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesDevelopmentSecret reports whether the built-in signing key is in use
func (c *Config) UsesDevelopmentSecret() bool {
	return c.Auth.JWTSecret == developmentJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
