// Package config loads server and provider settings from environment
// variables or an optional config file.
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	DBPath  string `mapstructure:"DB_PATH"`

	// Time-tracking provider (Harvest-compatible).
	HarvestBaseURL   string `mapstructure:"HARVEST_BASE_URL"`
	HarvestAccountID string `mapstructure:"HARVEST_ACCOUNT_ID"`
	HarvestToken     string `mapstructure:"HARVEST_TOKEN"`
	HarvestUserID    string `mapstructure:"HARVEST_USER_ID"`
}

// Load reads configuration from config.yaml (current directory or
// ./config) and the environment. Environment variables win.
func Load() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	// In-memory by default: session state is not meant to outlive the
	// process.
	viper.SetDefault("DB_PATH", ":memory:")
	viper.SetDefault("HARVEST_BASE_URL", "")
	viper.SetDefault("HARVEST_ACCOUNT_ID", "")
	viper.SetDefault("HARVEST_TOKEN", "")
	viper.SetDefault("HARVEST_USER_ID", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// HasProvider reports whether provider credentials are configured.
func (c Config) HasProvider() bool {
	return c.HarvestAccountID != "" && c.HarvestToken != ""
}
