package orbitsdk

import (
	"log/slog"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://127.0.0.1:5678/api"
)

// Config is the configuration for the Orbit client
type Config struct {
	BaseURL   string        // BaseURL of the local service, required, see DefaultConfig
	LogLevel  slog.Level    // LogLevel gates the client's own log records
	Logger    *slog.Logger  // Logger is optional, defaults to slog.Default()
	Timeout   time.Duration // Timeout is optional, zero keeps the HTTP library default
	UserAgent string        // UserAgent is optional
}

// DefaultConfig returns a config pointing at the default local endpoint
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: slog.LevelInfo,
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	return nil
}

func (c *Config) baseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Config) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return OrbitUserAgent
}
