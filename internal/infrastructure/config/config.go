// Package config loads application settings from .env files and the
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Log         LogConfig         `mapstructure:"log"`
	CORS        CORSConfig        `mapstructure:"cors"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// StaticDir optionally serves the browser client from disk.
	StaticDir string `mapstructure:"static_dir"`
}

// Addr renders the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig selects the backing store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig holds the translation-oracle settings. An empty API key
// disables the oracle.
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MaintenanceConfig controls the scheduled session-stats consolidation.
type MaintenanceConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// At is the daily run time in HH:MM, server-local.
	At string `mapstructure:"at"`
}

// Load reads configuration from the .env file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.static_dir", "")

	viper.SetDefault("database.driver", "sqlite3")
	viper.SetDefault("database.dsn", "slovicka.db")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("cors.allowed_origins", []string{"*"})

	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "gpt-3.5-turbo")
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("openai.timeout", 15*time.Second)

	viper.SetDefault("maintenance.enabled", false)
	viper.SetDefault("maintenance.at", "03:30")
}
