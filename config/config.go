package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values used when neither the config file nor the environment sets a field
const (
	DefaultServerHost          = "0.0.0.0"
	DefaultServerPort          = "8080"
	DefaultTokenTTL            = 24 * time.Hour
	DefaultCreateLimitPerHour  = 60
	DefaultShutdownGracePeriod = 5 * time.Second
)

// DefaultCORSOrigins are the frontend origins allowed when none are configured
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://frontend:5173"}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string `yaml:"server_host"`
	ServerPort string `yaml:"server_port"`

	// Redis configuration, used only for rate limiting. Empty host and URL disable it.
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"-"`
	RedisDB       int    `yaml:"redis_db"`
	RedisURL      string `yaml:"redis_url"`

	// JWT configuration. An empty secret leaves mutating routes unauthenticated.
	JWTSecret string        `yaml:"-"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	// Image storage. An empty bucket disables image uploads.
	S3BucketName string `yaml:"s3_bucket_name"`
	AWSRegion    string `yaml:"aws_region"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// CreateLimitPerHour caps recipe creations per client per hour; 0 disables the limit.
	CreateLimitPerHour int `yaml:"create_limit_per_hour"`
}

// LoadConfig builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, environment variables and, in production, Docker secrets.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	if env == Production {
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a Redis endpoint is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func defaults() *Config {
	return &Config{
		ServerHost:         DefaultServerHost,
		ServerPort:         DefaultServerPort,
		RedisPort:          "6379",
		TokenTTL:           DefaultTokenTTL,
		CORSAllowedOrigins: DefaultCORSOrigins,
		CreateLimitPerHour: DefaultCreateLimitPerHour,
	}
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

// loadEnv overrides cfg with any environment variables that are set
func loadEnv(cfg *Config) error {
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.S3BucketName, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("RATE_LIMIT_CREATE_PER_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_CREATE_PER_HOUR must be an integer: %w", err)
		}
		cfg.CreateLimitPerHour = n
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL must be a duration: %w", err)
		}
		cfg.TokenTTL = d
	}
	return nil
}

// loadSecrets fills sensitive values from Docker secrets when present
func loadSecrets(cfg *Config) {
	if v := readSecret("jwt_secret"); v != "" {
		cfg.JWTSecret = v
	}
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
