// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all runtime configuration defaults.
//
// Usage:
//
//	cfg.MaxResults = defaults.MaxResults
//	poller.Interval = defaults.ConnectionPollInterval
//
// DO NOT use hardcoded values like `MaxResults: 100` anywhere.
// Instead, reference the appropriate constant from this package.
package defaults

import "time"

// Version is the current dms-mcp-server version.
const Version = "1.2.0"

// ServerName is the MCP implementation name advertised to clients.
const ServerName = "aws-dms"

// ============================================================================
// AWS CLIENT SETTINGS
// ============================================================================

const (
	// AWSRegion is the region used when none is configured.
	AWSRegion = "us-east-1"

	// APIRequestsPerSecond paces outgoing DMS control-plane calls so a
	// chatty agent session cannot trip AWS throttling.
	APIRequestsPerSecond = 10

	// APIBurst is the token bucket burst for the gateway rate limiter.
	APIBurst = 5
)

// ============================================================================
// OPERATION TIMEOUTS
// ============================================================================

const (
	// OperationTimeout bounds a single manager operation end to end.
	OperationTimeout = 300 * time.Second

	// OperationTimeoutMin and OperationTimeoutMax bound the configurable
	// range. Values outside the range are a startup error, never clamped.
	OperationTimeoutMin = 30 * time.Second
	OperationTimeoutMax = 3600 * time.Second
)

// ============================================================================
// PAGINATION
// ============================================================================

const (
	// MaxResults is the page size sent as MaxRecords when the caller does
	// not ask for a specific one.
	MaxResults = 100

	// MaxResultsMin and MaxResultsMax bound the configurable default page
	// size. Individual calls may still request larger pages; the remote
	// service enforces its own hard cap.
	MaxResultsMin = 1
	MaxResultsMax = 100
)

// ============================================================================
// CONNECTION TESTING
// ============================================================================

const (
	// ConnectionPollAttempts is the describe_connections poll budget after
	// a test has been initiated. Exhausting it is a soft timeout: the last
	// observed status is returned as-is.
	ConnectionPollAttempts = 12

	// ConnectionPollInterval is the fixed sleep between poll attempts.
	ConnectionPollInterval = 5 * time.Second

	// ConnectionCacheTTL is how long a finished connection-test result is
	// served from memory before a new upstream test is issued.
	ConnectionCacheTTL = 5 * time.Minute
)

// ============================================================================
// LOGGING
// ============================================================================

const (
	// LogLevel is the default log level name.
	LogLevel = "INFO"
)

// ============================================================================
// HTTP TRANSPORT
// ============================================================================

const (
	// HTTPPort is the default port for the streamable-HTTP transport.
	HTTPPort = 8080

	// HealthPath serves the readiness probe on the HTTP transport's mux.
	HealthPath = "/health"

	// MetricsPath serves Prometheus metrics on the HTTP transport's mux.
	MetricsPath = "/metrics"

	// HTTPReadTimeout and HTTPWriteTimeout guard the HTTP transport.
	HTTPReadTimeout  = 30 * time.Second
	HTTPWriteTimeout = 120 * time.Second
)
