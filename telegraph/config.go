package telegraph

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds Telegraph connection settings.
type Config struct {
	// AccessToken authenticates the publishing account. Optional:
	// createAccount and getPage work without one.
	AccessToken string

	// BaseURL is the API endpoint.
	BaseURL string

	// Timeout for API requests.
	Timeout time.Duration

	// UserAgent identifies the client to the service.
	UserAgent string
}

// LoadConfig loads configuration from environment variables:
// TELEGRAPH_ACCESS_TOKEN, TELEGRAPH_API_URL, TELEGRAPH_TIMEOUT and
// TELEGRAPH_USER_AGENT.
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("TELEGRAPH_API_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	} else {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("TELEGRAPH_API_URL is not a valid URL: %q", baseURL)
		}
		baseURL = strings.TrimRight(baseURL, "/")
	}

	timeout := DefaultTimeout
	if t := os.Getenv("TELEGRAPH_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("TELEGRAPH_TIMEOUT is not a valid duration: %q", t)
		}
		timeout = d
	}

	userAgent := os.Getenv("TELEGRAPH_USER_AGENT")
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Config{
		AccessToken: os.Getenv("TELEGRAPH_ACCESS_TOKEN"),
		BaseURL:     baseURL,
		Timeout:     timeout,
		UserAgent:   userAgent,
	}, nil
}

// HasAccessToken returns true if an access token is configured.
func (c *Config) HasAccessToken() bool {
	return c.AccessToken != ""
}

// NewClientFromConfig builds a client from a Config.
func NewClientFromConfig(cfg *Config, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithBaseURL(cfg.BaseURL),
		WithUserAgent(cfg.UserAgent),
		WithTimeout(cfg.Timeout),
	}
	return NewClient(cfg.AccessToken, append(base, opts...)...)
}
