package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	USCF     USCFConfig
	Prizes   PrizesConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// USCFConfig holds US Chess member lookup configuration
type USCFConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MockLookups bool
}

// PrizesConfig holds prize computation configuration
type PrizesConfig struct {
	SectionCacheSize int
	SectionCacheTTL  time.Duration
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "chess-prizes")
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("USCF.BaseURL", "https://api.uschess.org")
	viper.SetDefault("USCF.Timeout", "10s")
	viper.SetDefault("USCF.MockLookups", true)
	viper.SetDefault("Prizes.SectionCacheSize", 256)
	viper.SetDefault("Prizes.SectionCacheTTL", "30s")
}
