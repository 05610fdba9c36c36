package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the wardenctl settings file.
type Config struct {
	APIURL   string `toml:"api_url"`
	Token    string `toml:"token"`
	Username string `toml:"username,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{APIURL: "http://localhost:8080"}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wardenctl.toml"
	}
	return filepath.Join(home, ".config", "warden", "wardenctl.toml")
}

// LoadConfig starts from defaults, overlays the file if it exists, then
// applies WARDEN_API_URL and WARDEN_TOKEN.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if v := os.Getenv("WARDEN_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("WARDEN_TOKEN"); v != "" {
		cfg.Token = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url %q must be an http(s) URL", c.APIURL)
	}
	return nil
}

// Save writes the config with owner-only permissions since it holds a token.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
