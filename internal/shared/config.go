package shared

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// officialClientID is the client id of the official Spotify web app, used
// when no application-specific id is configured.
const officialClientID = "65b708073fc0480ea92a077233ca87bd"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	ClientID   string `toml:"client_id"`
	ClientPort int    `toml:"client_port"`

	// session settings
	Proxy  string `toml:"proxy"`
	APPort int    `toml:"ap_port"`

	Credentials CredentialsConfig `toml:"credentials"`
}

// CredentialsConfig contains the stored login credential pair. Both fields
// may be overridden by SPOTIFY_USERNAME / SPOTIFY_PASSWORD.
type CredentialsConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// DefaultConfig returns a Config with the application defaults.
func DefaultConfig() *Config {
	return &Config{
		ClientID:   officialClientID,
		ClientPort: 8080,
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// A missing file is not an error; defaults are returned instead. Credentials
// from the environment (or a .env file, if present) take precedence over the
// stored pair.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if config.ClientID == "" {
		config.ClientID = officialClientID
	}

	config.loadEnvCredentials()
	return config, nil
}

// loadEnvCredentials overlays credentials from the process environment,
// sourcing a .env file first when one exists.
func (c *Config) loadEnvCredentials() {
	_ = godotenv.Load()

	if username := os.Getenv("SPOTIFY_USERNAME"); username != "" {
		c.Credentials.Username = username
	}
	if password := os.Getenv("SPOTIFY_PASSWORD"); password != "" {
		c.Credentials.Password = password
	}
}

// HasCredentials reports whether a login credential pair is available.
func (c *Config) HasCredentials() bool {
	return c.Credentials.Username != "" && c.Credentials.Password != ""
}
