// Package config loads the command line settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds the settings of the formstate command. Flags override the
// values decoded from the environment.
type Config struct {
	// APIURL is the base URL of the registration API. ENV: FORMSTATE_API_URL
	APIURL string `env:"FORMSTATE_API_URL,default=http://localhost:3333"`
	// Timeout bounds a single submission request. ENV: FORMSTATE_TIMEOUT
	Timeout time.Duration `env:"FORMSTATE_TIMEOUT,default=10s"`
	// FormDir replaces the bundled declarations when set. ENV: FORMSTATE_FORM_DIR
	FormDir string `env:"FORMSTATE_FORM_DIR"`
	// FormID selects the declaration to run. ENV: FORMSTATE_FORM_ID
	FormID string `env:"FORMSTATE_FORM_ID,default=createHospital"`
	// Verbose enables debug logging. ENV: FORMSTATE_VERBOSE
	Verbose bool `env:"FORMSTATE_VERBOSE"`
}

// Load decodes the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a command cannot run without.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("config: api url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: invalid api url %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if c.FormID == "" {
		return errors.New("config: form id is required")
	}
	return nil
}
