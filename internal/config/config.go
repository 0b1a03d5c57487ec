package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration decodes "10m" style strings from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Source struct {
		SheetURL string `yaml:"sheet_url" validate:"required,url"`
		// ReferenceYear resolves the sheet's year-less dates. Zero means
		// "the year at load time".
		ReferenceYear int `yaml:"reference_year" validate:"omitempty,gte=2000,lte=2100"`
	} `yaml:"source"`
	Cache struct {
		TTL Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Server struct {
		ListenAddr string `yaml:"listen_addr" validate:"required"`
		Currency   string `yaml:"currency" validate:"required,len=3"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SHEET_URL"); v != "" {
		cfg.Source.SheetURL = v
	}
	if v := os.Getenv("REFERENCE_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse REFERENCE_YEAR: %w", err)
		}
		cfg.Source.ReferenceYear = year
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = Duration(ttl)
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("CURRENCY"); v != "" {
		cfg.Server.Currency = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(10 * time.Minute)
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.Currency == "" {
		cfg.Server.Currency = money.INR
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return err
	}
	if money.GetCurrency(c.Server.Currency) == nil {
		return fmt.Errorf("unknown currency code %q", c.Server.Currency)
	}
	return nil
}
