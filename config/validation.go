package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks cfg against the requirements of the given environment.
// All problems are reported together.
func ValidateConfig(cfg *Config, env Environment) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("%q is not a valid port", cfg.ServerPort)})
	}

	if cfg.RedisHost != "" && cfg.RedisURL == "" {
		if port, err := strconv.Atoi(cfg.RedisPort); err != nil || port < 1 || port > 65535 {
			errs = append(errs, ValidationError{Field: "REDIS_PORT", Message: fmt.Sprintf("%q is not a valid port", cfg.RedisPort)})
		}
	}

	if cfg.CreateLimitPerHour < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_CREATE_PER_HOUR", Message: "must not be negative"})
	}

	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{Field: "TOKEN_TTL", Message: "must be positive"})
	}

	if env == Production && cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required in production"})
	}

	if cfg.S3BucketName != "" && cfg.AWSRegion == "" {
		errs = append(errs, ValidationError{Field: "AWS_REGION", Message: "is required when S3_BUCKET_NAME is set"})
	}

	return errors.Join(errs...)
}
