package telemetry

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// telemetryLogger wraps slog.Logger to automatically prepend "[Telemetry]" to all messages
type telemetryLogger struct {
	logger *slog.Logger
}

func newTelemetryLogger(logger *slog.Logger) *telemetryLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &telemetryLogger{logger: logger}
}

func (tl *telemetryLogger) Debug(msg string, args ...any) {
	tl.logger.Debug("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Warn(msg string, args ...any) {
	tl.logger.Warn("[Telemetry] "+msg, args...)
}

// Client is the telemetry pipeline for one process: consent decision,
// identities, allowlist, and the asynchronous dispatcher. A disabled client
// is fully inert: no identity I/O, no queue, no network activity.
type Client struct {
	logger      *telemetryLogger
	enabled     bool
	identity    *identityStore
	sessionID   string
	allowlist   *Allowlist
	dispatcher  *dispatcher
	startupOnce sync.Once
}

// NewClient builds a telemetry client from the given configuration. The
// optional customHTTPClient is used by tests to capture transmissions.
// Construction never fails.
func NewClient(logger *slog.Logger, cfg Config, version string, customHTTPClient ...HTTPClient) *Client {
	tl := newTelemetryLogger(logger)

	if !cfg.Enabled() {
		return &Client{
			logger:  tl,
			enabled: false,
		}
	}

	var httpClient HTTPClient
	if len(customHTTPClient) > 0 && customHTTPClient[0] != nil {
		httpClient = customHTTPClient[0]
	} else {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	tr := &transport{
		logger:     tl,
		httpClient: httpClient,
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		version:    version,
	}

	return &Client{
		logger:     tl,
		enabled:    true,
		identity:   newIdentityStore(cfg.StateDir),
		sessionID:  NewSessionID(),
		allowlist:  NewAllowlist(),
		dispatcher: newDispatcher(tl, tr),
	}
}

// IsEnabled reports whether this client collects anything at all.
func (tc *Client) IsEnabled() bool {
	return tc.enabled
}

// SessionID returns the per-process session identifier, or "" when
// telemetry is disabled.
func (tc *Client) SessionID() string {
	return tc.sessionID
}

// NodeID returns the durable node identifier, resolving it on first use.
// Returns "" when telemetry is disabled so a disabled process never touches
// the identity file.
func (tc *Client) NodeID() string {
	if !tc.enabled {
		return ""
	}
	return tc.identity.NodeID()
}

// enqueue hands a shaped event to the dispatcher. Non-blocking.
func (tc *Client) enqueue(ev Event) {
	if tc.dispatcher != nil {
		tc.dispatcher.enqueue(ev)
	}
}

// Flush gives the dispatcher a bounded opportunity to drain buffered
// records, typically once during orderly shutdown. Records still buffered
// when the timeout expires are abandoned; delivery is best effort.
func (tc *Client) Flush(timeout time.Duration) {
	if tc.dispatcher != nil {
		tc.dispatcher.flush(timeout)
	}
}

// Close stops the background worker. Safe to call multiple times.
func (tc *Client) Close() {
	if tc.dispatcher != nil {
		tc.dispatcher.close()
	}
}
