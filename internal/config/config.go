package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	HTTPPort     string `json:"http_port"`
	DatabasePath string `json:"database_path"`
	SeedOnStart  bool   `json:"seed_on_start"`

	JWTKey           string `json:"jwt_key"`
	JWTIssuer        string `json:"jwt_issuer"`
	JWTAudience      string `json:"jwt_audience"`
	JWTExpireMinutes int    `json:"jwt_expire_minutes"`

	// Gemini is used for question interpretation only when a project is set
	GoogleCloudProject  string `json:"google_cloud_project"`
	GoogleCloudLocation string `json:"google_cloud_location"`

	// Gmail credentials enable real email delivery; empty means log-only
	GmailCredentialsPath string `json:"gmail_credentials_path"`
	GmailTokenPath       string `json:"gmail_token_path"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		HTTPPort:            "8080",
		DatabasePath:        "talentoplus.db",
		SeedOnStart:         true,
		JWTIssuer:           "TalentoPlus",
		JWTAudience:         "TalentoPlusUsers",
		JWTExpireMinutes:    120,
		GoogleCloudLocation: "us-central1",
	}
}

// GetConfigPath returns the path to the configuration file
// On Windows: %APPDATA%/TalentoPlus/config.json
// On Unix: ~/.config/TalentoPlus/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		configDir = filepath.Join(os.Getenv("APPDATA"), "TalentoPlus")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "TalentoPlus")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path and the environment
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path, applying env overrides
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overrides file values with environment variables when set
func (c *Config) applyEnv() {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfPresent(&c.HTTPPort, "PORT")
	setIfPresent(&c.DatabasePath, "DATABASE_PATH")
	setIfPresent(&c.JWTKey, "JWT_KEY")
	setIfPresent(&c.JWTIssuer, "JWT_ISSUER")
	setIfPresent(&c.JWTAudience, "JWT_AUDIENCE")
	setIfPresent(&c.GoogleCloudProject, "GOOGLE_CLOUD_PROJECT")
	setIfPresent(&c.GoogleCloudLocation, "GOOGLE_CLOUD_LOCATION")
	setIfPresent(&c.GmailCredentialsPath, "GMAIL_CREDENTIALS_PATH")
	setIfPresent(&c.GmailTokenPath, "GMAIL_TOKEN_PATH")
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http_port is required")
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}

	if c.JWTKey == "" {
		return fmt.Errorf("jwt_key is required")
	}

	if c.GmailCredentialsPath != "" {
		if _, err := os.Stat(c.GmailCredentialsPath); err != nil {
			return fmt.Errorf("gmail credentials file not found: %w", err)
		}
	}

	return nil
}

// GeminiEnabled reports whether the Vertex AI interpreter hook is configured
func (c *Config) GeminiEnabled() bool {
	return c.GoogleCloudProject != ""
}
