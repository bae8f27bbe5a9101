package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/garnizeh/emsportal/pkg/backend"
)

type Config struct {
	Addr          string         `yaml:"addr"`
	Backend       backend.Config `yaml:"backend"`
	SessionDBPath string         `yaml:"session_db_path"`
	SessionCookie string         `yaml:"session_cookie"`
	SessionTTL    time.Duration  `yaml:"session_ttl"`
	ReadTimeout   time.Duration  `yaml:"read_timeout"`
	WriteTimeout  time.Duration  `yaml:"write_timeout"`
	StubBackend   StubConfig     `yaml:"stub_backend"`
}

// StubConfig configures the bundled development employee backend.
type StubConfig struct {
	Addr          string        `yaml:"addr"`
	DatabasePath  string        `yaml:"database_path"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load() // load .env if present

	cfg := &Config{
		Addr:          getEnv("PORTAL_ADDR", ":3000"),
		SessionDBPath: getEnv("PORTAL_SESSION_DB_PATH", "sessions.db"),
		SessionCookie: getEnv("PORTAL_SESSION_COOKIE", "ems_session"),
		SessionTTL:    24 * time.Hour,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		Backend: backend.Config{
			BaseURL: getEnv("PORTAL_BACKEND_URL", "http://localhost:5205"),
			Timeout: 15 * time.Second,
		},
		StubBackend: StubConfig{
			Addr:          getEnv("PORTAL_STUB_ADDR", ":5205"),
			DatabasePath:  getEnv("PORTAL_STUB_DB_PATH", "employees.db"),
			JWTSecret:     getEnv("PORTAL_STUB_JWT_SECRET", "supersecretkey"),
			TokenDuration: 1 * time.Hour,
			BcryptCost:    0, // 0 means bcrypt.DefaultCost
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that are unsafe outside development. The
// environment is taken from PORTAL_ENV ("development" allows the insecure
// defaults).
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url is required")
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("session_cookie is required")
	}

	env := getEnv("PORTAL_ENV", "development")
	if env != "development" && c.StubBackend.JWTSecret == "supersecretkey" {
		return fmt.Errorf("insecure stub backend jwt_secret in %s environment", env)
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
