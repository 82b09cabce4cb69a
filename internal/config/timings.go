package config

import "time"

// Polling and request timing defaults
const (
	// DefaultRefreshInterval matches the dashboard's auto-refresh period
	DefaultRefreshInterval = 30 * time.Second

	// Outbound requests
	FlightLogRequestTimeout = 15 * time.Second
	TornRequestTimeout      = 30 * time.Second
	SheetWriteTimeout       = 30 * time.Second
	DeployDialTimeout       = 30 * time.Second

	// Name resolution
	NameCacheTTL          = 30 * time.Minute
	NameLookupConcurrency = 5

	// HTTP server
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 60 * time.Second
	ServerShutdownTimeout = 15 * time.Second
)

// HTTPServerTimeouts groups the listener timeouts for the board server
type HTTPServerTimeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

// DefaultHTTPServerTimeouts provides the timeouts used by main
var DefaultHTTPServerTimeouts = HTTPServerTimeouts{
	Read:     ServerReadTimeout,
	Write:    ServerWriteTimeout,
	Idle:     ServerIdleTimeout,
	Shutdown: ServerShutdownTimeout,
}
