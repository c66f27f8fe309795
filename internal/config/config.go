package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/question-generator/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	// Time given to in-flight requests on shutdown
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Source data
	DataCfg DataConfig

	// Session state
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Export rendering cache
	ExportCacheTTL time.Duration `env:"EXPORT_CACHE_TTL" envDefault:"10m"`
	// Metered unioffice key. DOCX export is offered only when set.
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_KEY"`

	CORSCfg CORSConfig `envPrefix:"CORS_"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// DataConfig points at the flat files the tool reads
type DataConfig struct {
	QuestionsFile         string `env:"QUESTIONS_FILE" envDefault:"data/mainDB.csv"`
	PersonalQuestionsFile string `env:"PERSONAL_QUESTIONS_FILE" envDefault:"data/personalDB.csv"`
	LogoFile              string `env:"LOGO_FILE" envDefault:"data/logo.png"`
	// ReferenceFile overrides the embedded descriptions when set
	ReferenceFile string `env:"REFERENCE_FILE"`
}

// SessionConfig holds session lifetime and selection rules
type SessionConfig struct {
	TTL                        time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval            time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	MaxQuestionLength          int           `env:"MAX_QUESTION_LENGTH" envDefault:"2000"`
	NarrowStakeholdersByDomain bool          `env:"NARROW_STAKEHOLDERS_BY_DOMAIN" envDefault:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxAge         int      `env:"MAX_AGE" envDefault:"300"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string               `env:"BOT_TOKEN"`
	UpdateTimeout      int                  `env:"UPDATE_TIMEOUT" envDefault:"60"`
	MaxConcurrentUsers int                  `env:"MAX_CONCURRENT_USERS" envDefault:"100"`
	RateLimitPerMinute int                  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int                  `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int                  `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
	StateTTL           time.Duration        `env:"STATE_TTL" envDefault:"24h"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// LoadConfig reads the -env flag and loads configuration for that environment
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load loads configuration for the named environment
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.DataCfg.QuestionsFile == "" {
		errors = append(errors, "QUESTIONS_FILE must not be empty")
	}

	if cfg.DataCfg.PersonalQuestionsFile == "" {
		errors = append(errors, "PERSONAL_QUESTIONS_FILE must not be empty")
	}

	if cfg.SessionCfg.TTL < time.Minute || cfg.SessionCfg.TTL > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be between 1m and 168h, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.CleanupInterval <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_CLEANUP_INTERVAL must be positive, got %s", cfg.SessionCfg.CleanupInterval))
	}

	if cfg.SessionCfg.MaxQuestionLength < 1 {
		errors = append(errors, fmt.Sprintf("SESSION_MAX_QUESTION_LENGTH must be positive, got %d", cfg.SessionCfg.MaxQuestionLength))
	}

	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SERVER_SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout))
	}

	if cfg.ExportCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("EXPORT_CACHE_TTL must be positive, got %s", cfg.ExportCacheTTL))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.Retry.Attempts < 1 {
		errors = append(errors, "TELEGRAM_RETRY_ATTEMPTS must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
