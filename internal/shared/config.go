package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Environment variables override the file for the Notion credential and
// database id (see [ApplyEnv]), matching how the original deployment was
// configured.
type Config struct {
	Notion   NotionConfig   `toml:"notion"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// NotionConfig contains the upstream Notion API settings.
type NotionConfig struct {
	APIKey     string  `toml:"api_key"`
	DatabaseID string  `toml:"database_id"`
	BaseURL    string  `toml:"base_url"`
	Version    string  `toml:"version"`
	RateLimit  float64 `toml:"rate_limit"`
}

// DatabaseConfig contains snapshot database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides config values from the process environment.
//
// NOTION_API_KEY sets the credential; NOTION_DATABASE_ID or DATABASE_ID sets
// the database identifier, in that precedence.
func ApplyEnv(config *Config) {
	if key := os.Getenv("NOTION_API_KEY"); key != "" {
		config.Notion.APIKey = key
	}
	if id := os.Getenv("NOTION_DATABASE_ID"); id != "" {
		config.Notion.DatabaseID = id
	} else if id := os.Getenv("DATABASE_ID"); id != "" {
		config.Notion.DatabaseID = id
	}
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
