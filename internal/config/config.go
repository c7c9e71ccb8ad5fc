package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	libconfig "transitpay/libs/config"
)

// Session storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// DefaultBaseURL is the backend the client talks to when nothing is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 15 * time.Second

// API configures the backend connection.
type API struct {
	BaseURL string        `yaml:"baseURL" env:"TRANSIT_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TRANSIT_API_TIMEOUT"`
}

// Session configures where the login is persisted.
type Session struct {
	Backend       string `yaml:"backend" env:"TRANSIT_SESSION_BACKEND"`
	Path          string `yaml:"path" env:"TRANSIT_SESSION_PATH"`
	DSN           string `yaml:"dsn" env:"TRANSIT_SESSION_DSN"`
	RedisAddr     string `yaml:"redisAddr" env:"TRANSIT_SESSION_REDIS_ADDR"`
	RedisPassword string `yaml:"redisPassword" env:"TRANSIT_SESSION_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redisDB" env:"TRANSIT_SESSION_REDIS_DB"`
	Namespace     string `yaml:"namespace" env:"TRANSIT_SESSION_NAMESPACE"`
	// EncryptionKey enables sealed storage when set. Never read from the YAML file.
	EncryptionKey string `yaml:"-" env:"TRANSIT_SESSION_KEY"`
}

// Log configures libs/logging.
type Log struct {
	Level       string `yaml:"level" env:"LOG_LEVEL"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT"`
}

// Notice configures the notification slot.
type Notice struct {
	TTLSeconds int `yaml:"ttlSeconds" env:"TRANSIT_NOTICE_TTL_SECONDS"`
}

// Metrics configures the request metrics export.
type Metrics struct {
	TextfilePath string `yaml:"textfilePath" env:"TRANSIT_METRICS_TEXTFILE"`
}

// Config is the transitctl configuration loaded from YAML/env.
type Config struct {
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
	Notice  Notice  `yaml:"notice"`
	Metrics Metrics `yaml:"metrics"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		API:     API{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Session: Session{Backend: BackendFile, Namespace: "default"},
		Notice:  Notice{TTLSeconds: 5},
	}
}

// Load reads configuration using the shared config loader. An empty path falls back to
// TRANSIT_CONFIG and then to defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := libconfig.LoadConfig(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalises cfg in place and rejects unusable combinations.
func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid api base url %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.Notice.TTLSeconds <= 0 {
		c.Notice.TTLSeconds = 5
	}
	if c.Session.Namespace == "" {
		c.Session.Namespace = "default"
	}

	c.Session.Backend = strings.ToLower(strings.TrimSpace(c.Session.Backend))
	switch c.Session.Backend {
	case "":
		c.Session.Backend = BackendFile
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.Session.DSN == "" {
			return errors.New("config: postgres session backend requires a dsn")
		}
	case BackendRedis:
		if c.Session.RedisAddr == "" {
			return errors.New("config: redis session backend requires redisAddr")
		}
	default:
		return fmt.Errorf("config: unknown session backend %q", c.Session.Backend)
	}
	return nil
}

// APITimeout returns the per-request timeout, falling back to DefaultTimeout.
func (c *Config) APITimeout() time.Duration {
	if c.API.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.API.Timeout
}

// NoticeTTL converts the configured notice lifetime to a duration.
func (c *Config) NoticeTTL() time.Duration {
	if c.Notice.TTLSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Notice.TTLSeconds) * time.Second
}
