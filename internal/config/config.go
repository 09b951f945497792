package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	AppPort         string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	NatsURL         string
	OTLPEndpoint    string
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3UsePathStyle  bool
	UploadURLExpiry time.Duration
}

// Load reads the full configuration from the environment once at startup.
// The signing secret has no default on purpose: a process without one must
// not come up.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort:         getenv("APP_PORT", "8001"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        getenvDuration("TOKEN_TTL", 7*24*time.Hour),
		NatsURL:         getenv("NATS_URL", "nats://localhost:4222"),
		OTLPEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        os.Getenv("AWS_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		S3AccessKey:     os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3UsePathStyle:  os.Getenv("S3_USE_PATH_STYLE") == "true",
		UploadURLExpiry: getenvDuration("UPLOAD_URL_EXPIRY", 15*time.Minute),
	}

	cfg.DatabaseURL = databaseURL()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbName := getenv("DB_NAME", "department")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
