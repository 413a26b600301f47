package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvService        = "PRETRIAGE_SERVICE"
	EnvEnvironment    = "PRETRIAGE_ENV"
	EnvMinPhoneDigits = "PRETRIAGE_MIN_PHONE_DIGITS"
	EnvPageSize       = "PRETRIAGE_HISTORY_PAGE_SIZE"
	EnvHistorySort    = "PRETRIAGE_HISTORY_SORT"
)

// ApplyEnv overrides c with set environment variables. Malformed numbers
// fail fast instead of falling back to defaults.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvService); v != "" {
		c.Service = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Env = v
	}
	if v := os.Getenv(EnvMinPhoneDigits); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMinPhoneDigits, v, err)
		}
		c.Registration.MinPhoneDigits = n
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPageSize, v, err)
		}
		c.History.PageSize = n
	}
	if v := os.Getenv(EnvHistorySort); v != "" {
		c.History.Sort = v
	}
	return nil
}
