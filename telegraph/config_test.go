package telegraph

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAPH_ACCESS_TOKEN", "")
	t.Setenv("TELEGRAPH_API_URL", "")
	t.Setenv("TELEGRAPH_TIMEOUT", "")
	t.Setenv("TELEGRAPH_USER_AGENT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want %q", cfg.UserAgent, DefaultUserAgent)
	}
	if cfg.HasAccessToken() {
		t.Error("HasAccessToken() = true with no token configured")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("TELEGRAPH_ACCESS_TOKEN", "abc123")
	t.Setenv("TELEGRAPH_API_URL", "https://proxy.example.com/telegraph/")
	t.Setenv("TELEGRAPH_TIMEOUT", "30s")
	t.Setenv("TELEGRAPH_USER_AGENT", "custom/2.0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.HasAccessToken() || cfg.AccessToken != "abc123" {
		t.Errorf("AccessToken = %q, want abc123", cfg.AccessToken)
	}
	if cfg.BaseURL != "https://proxy.example.com/telegraph" {
		t.Errorf("BaseURL = %q, trailing slash must be trimmed", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.UserAgent != "custom/2.0" {
		t.Errorf("UserAgent = %q, want custom/2.0", cfg.UserAgent)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("TELEGRAPH_API_URL", "not a url")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig accepted an invalid TELEGRAPH_API_URL")
	}

	t.Setenv("TELEGRAPH_API_URL", "")
	t.Setenv("TELEGRAPH_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig accepted an invalid TELEGRAPH_TIMEOUT")
	}
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := &Config{
		AccessToken: "tok",
		BaseURL:     "http://localhost:9999",
		Timeout:     5 * time.Second,
		UserAgent:   "cfg/1.0",
	}
	client := NewClientFromConfig(cfg, WithLogger(testLogger()))
	defer client.Close()

	if client.accessToken != "tok" {
		t.Errorf("accessToken = %q", client.accessToken)
	}
	if client.baseURL != "http://localhost:9999" {
		t.Errorf("baseURL = %q", client.baseURL)
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.httpClient.Timeout)
	}
}
