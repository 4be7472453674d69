// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Session  SessionConfig
	Rate     RateLimitConfig
	Facility FacilityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StoreConfig holds document store connection settings.
//
// Credentials are deliberately absent: every operation connects with the
// signed-in user's own username and password, supplied at request time.
type StoreConfig struct {
	// URI is the MongoDB connection string without credentials (required)
	// Supports both STORE_URI and MONGO_URI env vars for compatibility
	URI string `env:"STORE_URI" envAlt:"MONGO_URI" required:"true"`

	// Database is the database holding handover records (default: Cylinder_Inventory)
	Database string `env:"STORE_DATABASE" default:"Cylinder_Inventory"`

	// Collection is the collection holding handover records (default: Handover_records)
	Collection string `env:"STORE_COLLECTION" default:"Handover_records"`

	// ConnectTimeout bounds server selection when dialing (default: 5s)
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" default:"5s"`

	// OperationTimeout bounds insert/list/delete calls (default: 30s)
	OperationTimeout time.Duration `env:"STORE_OPERATION_TIMEOUT" default:"30s"`
}

// SessionConfig holds in-memory session settings.
type SessionConfig struct {
	// CookieName is the session cookie name (default: cylinderlog_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"cylinderlog_session"`

	// TTL is how long an idle session survives before the sweeper drops it (default: 12h)
	TTL time.Duration `env:"SESSION_TTL" default:"12h"`

	// CookieSecure marks the session cookie Secure; disable for local HTTP (default: false)
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" default:"false"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// FacilityConfig holds facility list settings.
type FacilityConfig struct {
	// File is an optional YAML file overriding the built-in facility list
	File string `env:"FACILITY_FILE"`
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
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
