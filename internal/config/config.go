// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Roster   RosterConfig
	Suggest  SuggestConfig
	Session  SessionConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 45s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"45s"`
}

// RosterConfig holds roster intake and grouping settings.
type RosterConfig struct {
	// MaxUploadSize is the maximum roster file or form size in bytes (default: 1MB)
	MaxUploadSize int64 `env:"ROSTER_MAX_UPLOAD_SIZE" default:"1048576"`

	// DefaultTeamSize is the target group size offered on the input page (default: 4)
	DefaultTeamSize int `env:"ROSTER_DEFAULT_TEAM_SIZE" default:"4"`

	// MaxParticipants is the row limit per roster (default: 2000)
	MaxParticipants int `env:"ROSTER_MAX_PARTICIPANTS" default:"2000"`
}

// SuggestConfig holds AI suggestion settings.
type SuggestConfig struct {
	// APIKey is the Gemini API key; suggestions are disabled when empty.
	// Supports both GEMINI_API_KEY and GOOGLE_API_KEY env vars.
	APIKey string `env:"GEMINI_API_KEY" envAlt:"GOOGLE_API_KEY"`

	// Model is the Gemini model name (default: gemini-2.0-flash)
	Model string `env:"SUGGEST_MODEL" default:"gemini-2.0-flash"`

	// Timeout bounds one suggestion including retries (default: 30s)
	Timeout time.Duration `env:"SUGGEST_TIMEOUT" default:"30s"`

	// MaxConcurrent is the maximum number of parallel model calls (default: 4)
	MaxConcurrent int `env:"SUGGEST_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for a model call slot (default: 10s)
	MaxWaitTime time.Duration `env:"SUGGEST_MAX_WAIT_TIME" default:"10s"`

	// MaxAttempts is the number of tries for rate-limited or failed calls (default: 3)
	MaxAttempts int `env:"SUGGEST_MAX_ATTEMPTS" default:"3"`
}

// Enabled reports whether an API key is configured.
func (c *SuggestConfig) Enabled() bool {
	return c.APIKey != ""
}

// SessionConfig holds in-memory workspace settings.
type SessionConfig struct {
	// TTL is how long an untouched workspace is kept (default: 12h)
	TTL time.Duration `env:"SESSION_TTL" default:"12h"`

	// CleanupInterval is how often expired workspaces are dropped (default: 10m)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" default:"10m"`

	// MaxWorkspaces is the number of workspaces kept at once (default: 1000)
	MaxWorkspaces int `env:"SESSION_MAX_WORKSPACES" default:"1000"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// SuggestLimit is requests per minute for suggestion endpoints (default: 20)
	SuggestLimit int `env:"RATE_LIMIT_SUGGEST" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
