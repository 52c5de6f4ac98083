// Package config handles loading and validating the ebaynet configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

// Config is the top-level configuration.
type Config struct {
	Ebay    EbayConfig    `yaml:"ebay"`
	Logging LoggingConfig `yaml:"logging"`
}

// EbayConfig defines eBay API settings.
type EbayConfig struct {
	AppID       string        `yaml:"app_id"`
	CertID      string        `yaml:"cert_id"`
	UserToken   string        `yaml:"user_token"`  // used as-is instead of the client credentials flow
	Environment string        `yaml:"environment"` // production, sandbox
	BaseURL     string        `yaml:"base_url"`    // overrides the environment's gateway
	TokenURL    string        `yaml:"token_url"`
	Scopes      []string      `yaml:"scopes"`
	Marketplace string        `yaml:"marketplace"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution, defaulting, and validation.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that apply overrides
// before calling Validate.
func Read(path string) (*Config, error) {
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

	return cfg, nil
}

// Default returns a Config with every default applied and no credentials.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// EnvironmentValue returns the parsed eBay environment. Validate has
// already rejected unknown values for loaded configs.
func (e *EbayConfig) EnvironmentValue() ebay.Environment {
	env, err := ebay.ParseEnvironment(e.Environment)
	if err != nil {
		return ebay.Production
	}
	return env
}

func applyDefaults(cfg *Config) {
	applyEbayDefaults(&cfg.Ebay)
	applyLoggingDefaults(&cfg.Logging)
}

func applyEbayDefaults(e *EbayConfig) {
	if e.Environment == "" {
		e.Environment = "production"
	}
	if e.Timeout == 0 {
		e.Timeout = 30 * time.Second
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

// Validate reports every problem with cfg at once.
func (cfg *Config) Validate() error {
	var errs []error

	if cfg.Ebay.UserToken == "" {
		if cfg.Ebay.AppID == "" {
			errs = append(errs, fmt.Errorf("ebay.app_id is required unless ebay.user_token is set"))
		}
		if cfg.Ebay.CertID == "" {
			errs = append(errs, fmt.Errorf("ebay.cert_id is required unless ebay.user_token is set"))
		}
	}

	if _, err := ebay.ParseEnvironment(cfg.Ebay.Environment); err != nil {
		errs = append(
			errs,
			fmt.Errorf("ebay.environment must be one of: production, sandbox (got %q)", cfg.Ebay.Environment),
		)
	}

	if cfg.Ebay.Timeout < 0 {
		errs = append(errs, fmt.Errorf("ebay.timeout must not be negative"))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
