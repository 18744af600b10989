package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		config := DefaultConfig()
		if config.ClientID != officialClientID {
			t.Errorf("expected the official client id, got %s", config.ClientID)
		}
		if config.ClientPort != 8080 {
			t.Errorf("expected default client port 8080, got %d", config.ClientPort)
		}
	})

	t.Run("Missing File Falls Back To Defaults", func(t *testing.T) {
		config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("expected no error for a missing file, got %v", err)
		}
		if config.ClientID != officialClientID {
			t.Errorf("expected defaults, got %+v", config)
		}
	})

	t.Run("Parses TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
client_id = "custom-id"
client_port = 9090
proxy = "http://localhost:3128"
ap_port = 4070

[credentials]
username = "stored-user"
password = "stored-pass"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.ClientID != "custom-id" || config.ClientPort != 9090 {
			t.Errorf("unexpected config: %+v", config)
		}
		if config.Proxy != "http://localhost:3128" || config.APPort != 4070 {
			t.Errorf("unexpected session settings: %+v", config)
		}
		if config.Credentials.Username != "stored-user" {
			t.Errorf("unexpected credentials: %+v", config.Credentials)
		}
	})

	t.Run("Environment Overrides Stored Credentials", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[credentials]\nusername = \"stored\"\npassword = \"stored\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		t.Setenv("SPOTIFY_USERNAME", "env-user")
		t.Setenv("SPOTIFY_PASSWORD", "env-pass")

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Credentials.Username != "env-user" || config.Credentials.Password != "env-pass" {
			t.Errorf("environment must win, got %+v", config.Credentials)
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("client_id = [broken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("HasCredentials", func(t *testing.T) {
		config := DefaultConfig()
		if config.HasCredentials() {
			t.Error("defaults carry no credentials")
		}
		config.Credentials = CredentialsConfig{Username: "u", Password: "p"}
		if !config.HasCredentials() {
			t.Error("expected credentials to be reported")
		}
	})
}
