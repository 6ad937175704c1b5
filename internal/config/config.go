package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. It is constructed
// once at startup and passed by reference into the components that need it;
// nothing reads ambient globals afterwards.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds the store connection target.
type DatabaseConfig struct {
	URI string `yaml:"uri"`
}

// AuthConfig holds the credential signing key and lifetime.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"-"`
}

// UnmarshalYAML parses token_ttl from a duration string like "2h". An
// absent token_ttl keeps whatever default is already set.
func (a *AuthConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret   string `yaml:"secret"`
		TokenTTL string `yaml:"token_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	a.Secret = raw.Secret
	if raw.TokenTTL != "" {
		ttl, err := time.ParseDuration(raw.TokenTTL)
		if err != nil {
			return fmt.Errorf("invalid auth.token_ttl %q: %w", raw.TokenTTL, err)
		}
		a.TokenTTL = ttl
	}
	return nil
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file, then applies environment
// overrides (PORT, DB_URI, SECRET, TOKEN_TTL). A missing file is not an
// error; defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: 3001},
		Auth:   AuthConfig{TokenTTL: 2 * time.Hour},
		Log:    LogConfig{Level: "info"},
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("signing secret is required (set SECRET or auth.secret)")
	}
	if cfg.Database.URI == "" {
		return nil, fmt.Errorf("store connection target is required (set DB_URI or database.uri)")
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DB_URI"); v != "" {
		c.Database.URI = v
	}
	if v := os.Getenv("SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}
	return nil
}
