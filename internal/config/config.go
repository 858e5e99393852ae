package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Article content configuration
	Content ContentConfig

	// Comment widget configuration
	Comments CommentsConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ContentConfig holds the markdown content source settings
type ContentConfig struct {
	Dir          string
	AllowRawHTML bool
	ParseWorkers int
}

// CommentsConfig holds the simulated comment backend and view lifecycle settings
type CommentsConfig struct {
	SignInDelay     time.Duration
	SubmitDelay     time.Duration
	LikeDelay       time.Duration
	SeedEnabled     bool
	SeedFile        string // empty means the embedded seed discussion
	ViewTTL         time.Duration
	JanitorInterval time.Duration
	MaxViews        int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Content: ContentConfig{
			Dir:          getEnv("CONTENT_DIR", "./content/articles"),
			AllowRawHTML: getBoolEnv("CONTENT_ALLOW_RAW_HTML", false),
			ParseWorkers: getIntEnv("CONTENT_PARSE_WORKERS", 8),
		},
		Comments: CommentsConfig{
			SignInDelay:     getDurationEnv("COMMENTS_SIGN_IN_DELAY", time.Second),
			SubmitDelay:     getDurationEnv("COMMENTS_SUBMIT_DELAY", 500*time.Millisecond),
			LikeDelay:       getDurationEnv("COMMENTS_LIKE_DELAY", 200*time.Millisecond),
			SeedEnabled:     getBoolEnv("COMMENTS_SEED_ENABLED", true),
			SeedFile:        getEnv("COMMENTS_SEED_FILE", ""),
			ViewTTL:         getDurationEnv("COMMENTS_VIEW_TTL", 30*time.Minute),
			JanitorInterval: getDurationEnv("COMMENTS_JANITOR_INTERVAL", time.Minute),
			MaxViews:        getIntEnv("COMMENTS_MAX_VIEWS", 10000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Content.Dir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if c.Content.ParseWorkers < 1 {
		return fmt.Errorf("CONTENT_PARSE_WORKERS must be at least 1")
	}
	if c.Comments.SignInDelay < 0 || c.Comments.SubmitDelay < 0 || c.Comments.LikeDelay < 0 {
		return fmt.Errorf("comment delays must not be negative")
	}
	if c.Comments.ViewTTL <= 0 {
		return fmt.Errorf("COMMENTS_VIEW_TTL must be positive")
	}
	if c.Comments.JanitorInterval <= 0 {
		return fmt.Errorf("COMMENTS_JANITOR_INTERVAL must be positive")
	}
	if c.Comments.MaxViews < 1 {
		return fmt.Errorf("COMMENTS_MAX_VIEWS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
