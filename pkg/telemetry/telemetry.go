// Package telemetry provides anonymous usage tracking for the pwshgo host.
//
// All events are processed asynchronously and never block the host. Telemetry
// can be disabled at any time through the PWSHGO_TELEMETRY_OPTOUT environment
// variable, and nothing in this package ever surfaces an error into host
// control flow: every failure mode has a silent fallback.
//
// The system tracks:
// - Application/host type at startup
// - Names of loaded modules, but only when they appear on a fixed allowlist
// - Experimental feature activation, deactivation, and use
// - One startup payload per process (mode plus parameter-usage bitmap)
// - Generic named metrics the host chooses to emit
//
// The system does NOT collect:
// - Command lines, script contents, or user input
// - File contents or paths
// - Module or feature names outside the allowlist (replaced by sentinels)
// - Hostnames, usernames, or any machine-identifying metadata
//
// Files in this package:
// - consent.go: opt-out resolution and environment configuration
// - identity.go: durable node identity and per-process session identity
// - scrub.go: allowlist membership checks and sentinel substitution
// - events.go: typed event constructors (one per telemetry kind)
// - dispatch.go: non-blocking queue, batching worker, bounded flush
// - http.go: batch transmission to the collection endpoint
// - client.go: client lifecycle
// - global.go: package-level fire-and-forget entry points
package telemetry
