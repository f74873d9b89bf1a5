package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort       int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`

	// Database
	DatabaseURL    string `env:"DATABASE_URL" required:"true"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" default:"5"`
	DBAutoMigrate  bool   `env:"DB_AUTO_MIGRATE" default:"true"`

	// Redis (throttle counters)
	RedisURL      string `env:"REDIS_URL" default:"redis://redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Throttling
	ThrottleBackend      string `env:"THROTTLE_BACKEND" default:"memory"`
	ThrottleAnon         string `env:"THROTTLE_ANON" default:"100/day"`
	ThrottleReviewCreate string `env:"THROTTLE_REVIEW_CREATE" default:"2/day"`
	ThrottleReviewList   string `env:"THROTTLE_REVIEW_LIST" default:"100/day"`
	ThrottleReviewDetail string `env:"THROTTLE_REVIEW_DETAIL" default:"100/day"`

	// Pagination
	PageSize int `env:"PAGE_SIZE" default:"10"`

	// Bootstrap admin account, skipped when ADMIN_USERNAME is empty
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"debug"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// Ports
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxIdleConns, "DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.DBAutoMigrate, "DB_AUTO_MIGRATE", true); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://redis:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}

	// Throttling
	if err := loadEnvString(&config.ThrottleBackend, "THROTTLE_BACKEND", "memory"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.ThrottleAnon, "THROTTLE_ANON", "100/day"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.ThrottleReviewCreate, "THROTTLE_REVIEW_CREATE", "2/day"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.ThrottleReviewList, "THROTTLE_REVIEW_LIST", "100/day"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.ThrottleReviewDetail, "THROTTLE_REVIEW_DETAIL", "100/day"); err != nil {
		return nil, err
	}

	// Pagination
	if err := loadEnvInt(&config.PageSize, "PAGE_SIZE", 10); err != nil {
		return nil, err
	}

	// Admin bootstrap
	if err := loadEnvString(&config.AdminUsername, "ADMIN_USERNAME", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminEmail, "ADMIN_EMAIL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminPassword, "ADMIN_PASSWORD", ""); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}
	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.PageSize < 1 {
		errors = append(errors, "PAGE_SIZE must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, c.ThrottleBackend) {
		errors = append(errors, fmt.Sprintf("THROTTLE_BACKEND must be one of: %s", strings.Join(validBackends, ", ")))
	}

	for key, value := range c.ThrottleRates() {
		if _, _, err := ParseRate(value); err != nil {
			errors = append(errors, fmt.Sprintf("throttle rate %q: %v", key, err))
		}
	}

	if c.AdminUsername != "" && (c.AdminPassword == "" || c.AdminEmail == "") {
		errors = append(errors, "ADMIN_EMAIL and ADMIN_PASSWORD are required when ADMIN_USERNAME is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// ThrottleRates returns the configured rate string for every throttle scope.
func (c *Config) ThrottleRates() map[string]string {
	return map[string]string{
		"anon":          c.ThrottleAnon,
		"review-create": c.ThrottleReviewCreate,
		"review-list":   c.ThrottleReviewList,
		"review-detail": c.ThrottleReviewDetail,
	}
}

// ParseRate parses rates written as "<requests>/<period>", period being one of
// second, minute, hour, day (only the first letter is significant).
func ParseRate(rate string) (int, time.Duration, error) {
	num, period, ok := strings.Cut(strings.TrimSpace(rate), "/")
	if !ok {
		return 0, 0, fmt.Errorf("expected <requests>/<period>, got %q", rate)
	}
	requests, err := strconv.Atoi(num)
	if err != nil || requests < 1 {
		return 0, 0, fmt.Errorf("invalid request count %q", num)
	}
	if period == "" {
		return 0, 0, fmt.Errorf("missing period in %q", rate)
	}
	switch period[0] {
	case 's':
		return requests, time.Second, nil
	case 'm':
		return requests, time.Minute, nil
	case 'h':
		return requests, time.Hour, nil
	case 'd':
		return requests, 24 * time.Hour, nil
	}
	return 0, 0, fmt.Errorf("unknown period %q", period)
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
