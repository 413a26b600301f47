// Package config loads pretriage settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sort orders accepted by the triage history search.
const (
	SortDateAsc  = "dataAsc"
	SortDateDesc = "dataDesc"
)

// Config is the root configuration.
type Config struct {
	Service      string             `yaml:"service"`
	Env          string             `yaml:"env"`
	Registration RegistrationConfig `yaml:"registration"`
	History      HistoryConfig      `yaml:"history"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// RegistrationConfig drives patient form preparation.
type RegistrationConfig struct {
	// DefaultLatitude and DefaultLongitude are sent when the device
	// location is unknown.
	DefaultLatitude  float64 `yaml:"default_latitude"`
	DefaultLongitude float64 `yaml:"default_longitude"`
	MinPhoneDigits   int     `yaml:"min_phone_digits"`
}

// HistoryConfig holds triage history search defaults.
type HistoryConfig struct {
	PageSize int    `yaml:"page_size"`
	Sort     string `yaml:"sort"`
}

// MetricsConfig names the Prometheus namespace of the form counters.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

var (
	errServiceRequired    = errors.New("config: service must be set")
	errInvalidEnv         = errors.New("config: env must be one of development, debug, production")
	errInvalidLatitude    = errors.New("config: registration.default_latitude must be within [-90, 90]")
	errInvalidLongitude   = errors.New("config: registration.default_longitude must be within [-180, 180]")
	errInvalidPhoneDigits = errors.New("config: registration.min_phone_digits must be within [1, 11]")
	errInvalidPageSize    = errors.New("config: history.page_size must be positive")
	errInvalidSort        = errors.New("config: history.sort must be dataAsc or dataDesc")
)

// Default returns the settings used by the mobile client.
func Default() Config {
	return Config{
		Service: "pretriage",
		Env:     "production",
		Registration: RegistrationConfig{
			DefaultLatitude:  -23.5505,
			DefaultLongitude: -46.6333,
			MinPhoneDigits:   10,
		},
		History: HistoryConfig{
			PageSize: 50,
			Sort:     SortDateDesc,
		},
		Metrics: MetricsConfig{Namespace: "pretriage"},
	}
}

// Load reads path over Default, applies environment overrides and validates.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Service) == "" {
		return errServiceRequired
	}
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "development", "debug", "production":
	default:
		return errInvalidEnv
	}
	if c.Registration.DefaultLatitude < -90 || c.Registration.DefaultLatitude > 90 {
		return errInvalidLatitude
	}
	if c.Registration.DefaultLongitude < -180 || c.Registration.DefaultLongitude > 180 {
		return errInvalidLongitude
	}
	if c.Registration.MinPhoneDigits < 1 || c.Registration.MinPhoneDigits > 11 {
		return errInvalidPhoneDigits
	}
	if c.History.PageSize <= 0 {
		return errInvalidPageSize
	}
	if c.History.Sort != SortDateAsc && c.History.Sort != SortDateDesc {
		return errInvalidSort
	}
	return nil
}
