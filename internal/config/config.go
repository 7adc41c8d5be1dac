// Package config loads the database configuration from config files and the
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the database configuration
type Config struct {
	DatabaseURL        string
	MaxConnections     int
	MaxIdleConnections int
	Debug              bool
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Find home directory
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	// Set config file paths
	viper.SetConfigName(".alloy")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "alloy"))

	// Set environment variable prefix
	viper.SetEnvPrefix("ALLOY")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("max_connections", 25)
	viper.SetDefault("max_idle_connections", 5)
	viper.SetDefault("debug", false)

	// Try to read config file (ignore if not found)
	_ = viper.ReadInConfig()

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		MaxConnections:     viper.GetInt("max_connections"),
		MaxIdleConnections: viper.GetInt("max_idle_connections"),
		Debug:              viper.GetBool("debug"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = viper.GetString("database_url")
	}

	return cfg, nil
}
