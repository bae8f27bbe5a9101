package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/emsportal/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Addr != ":3000" {
		t.Fatalf("addr default: got %q", cfg.Addr)
	}
	if cfg.Backend.BaseURL != "http://localhost:5205" {
		t.Fatalf("backend url default: got %q", cfg.Backend.BaseURL)
	}
	if cfg.SessionCookie != "ems_session" {
		t.Fatalf("session cookie default: got %q", cfg.SessionCookie)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl default: got %v", cfg.SessionTTL)
	}
	if cfg.StubBackend.Addr != ":5205" {
		t.Fatalf("stub addr default: got %q", cfg.StubBackend.Addr)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	os.Setenv("PORTAL_BACKEND_URL", "http://backend.internal:8080")
	defer os.Unsetenv("PORTAL_BACKEND_URL")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend.internal:8080" {
		t.Fatalf("backend url: got %q", cfg.Backend.BaseURL)
	}
}

func TestLoadConfig_YAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	data := []byte("addr: \":9000\"\nsession_cookie: portal_sid\nbackend:\n  base_url: http://ems:5205\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("addr: got %q", cfg.Addr)
	}
	if cfg.SessionCookie != "portal_sid" {
		t.Fatalf("session cookie: got %q", cfg.SessionCookie)
	}
	if cfg.Backend.BaseURL != "http://ems:5205" {
		t.Fatalf("backend url: got %q", cfg.Backend.BaseURL)
	}
	// untouched keys keep their defaults
	if cfg.StubBackend.Addr != ":5205" {
		t.Fatalf("stub addr: got %q", cfg.StubBackend.Addr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	os.Setenv("PORTAL_ENV", "production")
	defer os.Unsetenv("PORTAL_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	os.Setenv("PORTAL_ENV", "development")
	defer os.Unsetenv("PORTAL_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	os.Setenv("PORTAL_ENV", "development")
	defer os.Unsetenv("PORTAL_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cfg.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail when addr is empty")
	}

	cfg, _ = config.LoadConfig("")
	cfg.Backend.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail when backend base_url is empty")
	}

	cfg, _ = config.LoadConfig("")
	cfg.SessionCookie = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail when session_cookie is empty")
	}
}
