// Package config provides configuration loading and validation for the
// resume-maker server and worker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the settings shared by the API server and the parse worker.
// Values can come from a JSON file, environment variables, or both; the
// environment wins when a key is set in both places.
type Config struct {
	// Server
	Port          int    `json:"port,omitempty"`           // HTTP listen port
	AllowedOrigin string `json:"allowed_origin,omitempty"` // CORS origin, "*" by default

	// Backing services
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	RedisAddr     string `json:"redis_addr,omitempty"`     // Redis host:port for the score cache
	RedisPassword string `json:"redis_password,omitempty"` // Redis password, empty for none
	AMQPURL       string `json:"amqp_url,omitempty"`       // RabbitMQ URL for parse jobs

	// Object storage
	S3Endpoint  string `json:"s3_endpoint,omitempty"`
	S3Region    string `json:"s3_region,omitempty"`
	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3AccessKey string `json:"s3_access_key,omitempty"`
	S3SecretKey string `json:"s3_secret_key,omitempty"`

	// AI scoring
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Auth
	JWTSecret          string `json:"jwt_secret,omitempty"`
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty"`

	// Export
	ChromeTimeoutSeconds int `json:"chrome_timeout_seconds,omitempty"` // PDF export deadline
}

// Load reads an optional JSON config file, overlays environment variables,
// and applies defaults. An empty path skips the file and uses the
// environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", key, err)
		}
		*dst = n
		return nil
	}

	if err := setInt(&c.Port, "PORT"); err != nil {
		return err
	}
	setString(&c.AllowedOrigin, "ALLOWED_ORIGIN")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.AMQPURL, "AMQP_URL")
	setString(&c.S3Endpoint, "S3_ENDPOINT")
	setString(&c.S3Region, "S3_REGION")
	setString(&c.S3Bucket, "S3_BUCKET")
	setString(&c.S3AccessKey, "S3_ACCESS_KEY")
	setString(&c.S3SecretKey, "S3_SECRET_KEY")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.JWTSecret, "JWT_SECRET")
	if err := setInt(&c.JWTExpirationHours, "JWT_EXPIRATION_HOURS"); err != nil {
		return err
	}
	if err := setInt(&c.ChromeTimeoutSeconds, "CHROME_TIMEOUT_SECONDS"); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = "*"
	}
	if c.S3Region == "" {
		c.S3Region = "us-east-1"
	}
	if c.JWTExpirationHours == 0 {
		c.JWTExpirationHours = 24
	}
	if c.ChromeTimeoutSeconds == 0 {
		c.ChromeTimeoutSeconds = 60
	}
}

// Validate checks ranges and required fields. Only the fields every
// deployment needs are required here; handlers that depend on an optional
// backend (Redis, RabbitMQ, Gemini) degrade or refuse at request time.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config error: jwt_secret is required")
	}
	if c.JWTExpirationHours < 1 {
		return fmt.Errorf("config error: jwt_expiration_hours must be at least 1, got %d", c.JWTExpirationHours)
	}
	if c.ChromeTimeoutSeconds < 1 {
		return fmt.Errorf("config error: chrome_timeout_seconds must be at least 1, got %d", c.ChromeTimeoutSeconds)
	}
	return nil
}
