package magento

import (
	"errors"
	"strings"
	"time"
)

// Config holds the connection settings for a Magento 2 backend.
type Config struct {
	// BaseURL is the store base URL, e.g. "https://shop.example.com".
	BaseURL string
	// StoreCode selects the store view for REST calls ("default" if empty).
	StoreCode string
	// AdminUsername and AdminPassword are exchanged for an admin token used
	// on catalog search and order endpoints.
	AdminUsername string
	AdminPassword string
	// IntegrationToken, when set, is used instead of the admin username and
	// password (Magento integration access token).
	IntegrationToken string
	// AdminTokenTTL bounds how long a fetched admin token is reused. Magento
	// defaults admin tokens to 4 hours.
	AdminTokenTTL time.Duration
	// Timeout is the HTTP request timeout.
	Timeout time.Duration
}

// Errors for Magento configuration.
var (
	ErrConfigMissingBaseURL     = errors.New("magento: base URL is required")
	ErrConfigMissingCredentials = errors.New("magento: admin credentials or integration token required")
)

// NewConfig creates a configuration with defaults applied.
func NewConfig(baseURL, adminUsername, adminPassword string) *Config {
	return &Config{
		BaseURL:        baseURL,
		StoreCode:      "default",
		AdminUsername:  adminUsername,
		AdminPassword:  adminPassword,
		AdminTokenTTL: 4 * time.Hour,
		Timeout:       30 * time.Second,
	}
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.IntegrationToken == "" && (c.AdminUsername == "" || c.AdminPassword == "") {
		return ErrConfigMissingCredentials
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.StoreCode == "" {
		c.StoreCode = "default"
	}
	if c.AdminTokenTTL <= 0 {
		c.AdminTokenTTL = 4 * time.Hour
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// restPath builds the versioned REST path for the configured store view.
func (c *Config) restPath(path string) string {
	return c.BaseURL + "/rest/" + c.StoreCode + "/V1" + path
}
