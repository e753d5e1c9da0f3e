// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Store connection
	Store *StoreConfig

	// Local inputs
	ImagesDir string

	// Sync settings
	DryRun        bool
	SkipExisting  bool
	DefaultStatus string // publish, draft, pending, private
	StockStatus   string
	JournalPath   string // SQLite sync journal
	LogDir        string // directory for per-run JSON logs

	// Logging
	LogLevel  string
	LogFormat string
}

// StoreConfig holds WooCommerce and WordPress credentials
type StoreConfig struct {
	URL            string
	ConsumerKey    string
	ConsumerSecret string

	// WordPress application password, required for media uploads.
	// The WooCommerce keys usually cannot write to wp/v2/media.
	WPUsername    string
	WPAppPassword string

	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ImagesDir:     getEnv("IMAGES_DIR", "./images"),
		DryRun:        getEnvAsBool("DRY_RUN", false),
		SkipExisting:  getEnvAsBool("SKIP_EXISTING", true),
		DefaultStatus: getEnv("DEFAULT_STATUS", "publish"),
		StockStatus:   getEnv("DEFAULT_STOCK_STATUS", "instock"),
		JournalPath:   getEnv("JOURNAL_PATH", "woosync.db"),
		LogDir:        getEnv("LOG_DIR", "."),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	storeConfig, err := LoadStoreConfig()
	if err != nil {
		return nil, errors.New("failed to load store configuration: " + err.Error())
	}
	cfg.Store = storeConfig

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStoreConfig loads store credentials from environment variables
func LoadStoreConfig() (*StoreConfig, error) {
	url := strings.TrimRight(os.Getenv("STORE_URL"), "/")
	if url == "" {
		return nil, errors.New("STORE_URL environment variable is required")
	}

	key := os.Getenv("CONSUMER_KEY")
	if key == "" {
		return nil, errors.New("CONSUMER_KEY environment variable is required")
	}

	secret := os.Getenv("CONSUMER_SECRET")
	if secret == "" {
		return nil, errors.New("CONSUMER_SECRET environment variable is required")
	}

	return &StoreConfig{
		URL:            url,
		ConsumerKey:    key,
		ConsumerSecret: secret,
		WPUsername:     os.Getenv("WP_USERNAME"),
		WPAppPassword:  os.Getenv("WP_APP_PASSWORD"),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_S", 30)) * time.Second,
		UploadTimeout:  time.Duration(getEnvAsInt("UPLOAD_TIMEOUT_S", 60)) * time.Second,
	}, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Store == nil {
		return errors.New("store configuration is required")
	}

	switch c.DefaultStatus {
	case "publish", "draft", "pending", "private":
	default:
		return errors.New("default status must be one of publish, draft, pending, private")
	}

	if c.JournalPath == "" {
		return errors.New("journal path cannot be empty")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
