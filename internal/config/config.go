// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Amazon      AmazonConfig      `yaml:"amazon"`
	Identity    IdentityConfig    `yaml:"identity"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// AmazonConfig defines Selling Partner API settings.
type AmazonConfig struct {
	ClientID       string              `yaml:"client_id"`
	ClientSecret   string              `yaml:"client_secret"`
	TokenURL       string              `yaml:"token_url"`
	RequestTimeout time.Duration       `yaml:"request_timeout"`
	RefreshTokens  RefreshTokensConfig `yaml:"refresh_tokens"`
}

// RefreshTokensConfig holds the per-region default refresh tokens used when
// a user has no refresh token of their own.
type RefreshTokensConfig struct {
	USEast string `yaml:"us_east"`
	EUWest string `yaml:"eu_west"`
}

// IdentityConfig defines the external identity provider used to
// authenticate inbound requests.
type IdentityConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// CredentialsConfig defines credential cache and refresh behavior.
type CredentialsConfig struct {
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	ExpiryBuffer  time.Duration `yaml:"expiry_buffer"`
	RefreshWindow time.Duration `yaml:"refresh_window"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyAmazonDefaults(&cfg.Amazon)
	applyIdentityDefaults(&cfg.Identity)
	applyCredentialsDefaults(&cfg.Credentials)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyAmazonDefaults(a *AmazonConfig) {
	if a.TokenURL == "" {
		a.TokenURL = "https://api.amazon.com/auth/o2/token"
	}
	if a.RequestTimeout == 0 {
		a.RequestTimeout = 10 * time.Second
	}
}

func applyIdentityDefaults(i *IdentityConfig) {
	if i.Timeout == 0 {
		i.Timeout = 10 * time.Second
	}
}

func applyCredentialsDefaults(c *CredentialsConfig) {
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.ExpiryBuffer == 0 {
		c.ExpiryBuffer = 2 * time.Minute
	}
	if c.RefreshWindow == 0 {
		c.RefreshWindow = 10 * time.Minute
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = 5 * time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	if cfg.Amazon.ClientID == "" {
		errs = append(errs, fmt.Errorf("amazon.client_id is required"))
	}
	if cfg.Amazon.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("amazon.client_secret is required"))
	}
	if cfg.Identity.URL == "" {
		errs = append(errs, fmt.Errorf("identity.url is required"))
	}
	if cfg.Credentials.RefreshWindow <= cfg.Credentials.ExpiryBuffer {
		errs = append(errs, fmt.Errorf(
			"credentials.refresh_window must be greater than credentials.expiry_buffer",
		))
	}

	return errors.Join(errs...)
}
