package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the companion client
type Config struct {
	API     APIConfig
	Auth    AuthConfig
	Cart    CartConfig
	Poller  PollerConfig
	UI      UIConfig
	Logging LoggingConfig
}

// APIConfig holds backend connection configuration
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	Token     string
	TokenFile string
	CSRFToken string
}

// CartConfig holds local cart configuration
type CartConfig struct {
	Path           string
	ServiceFeeRate float64
}

// PollerConfig holds notification polling configuration
type PollerConfig struct {
	Interval  time.Duration
	IdleAfter time.Duration
}

// UIConfig holds presentation configuration
type UIConfig struct {
	ToastDuration time.Duration
	Currency      string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables.
// A missing config file is not an error; the client runs on defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if present
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return nil, fmt.Errorf("failed to read config file: %w", err)
				}
			}
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("CANTEEN")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.baseURL", "http://localhost:8000")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.maxRetries", 3)

	// Cart defaults
	v.SetDefault("cart.path", defaultCartPath())
	v.SetDefault("cart.serviceFeeRate", 0.05)

	// Poller defaults
	v.SetDefault("poller.interval", "30s")
	v.SetDefault("poller.idleAfter", "5m")

	// UI defaults
	v.SetDefault("ui.toastDuration", "5s")
	v.SetDefault("ui.currency", "XAF")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// defaultCartPath places the cart snapshot under the user config directory,
// falling back to the working directory when it cannot be resolved.
func defaultCartPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cart.json"
	}
	return dir + "/canteen-companion/cart.json"
}
