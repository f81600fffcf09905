package telemetry

import (
	"log/slog"
	"sync"
	"time"
)

// Global variables for the host-facing fire-and-forget entry points
var (
	globalClient    *Client
	globalOnce      sync.Once
	globalVersion   = "unknown"
	globalDebugMode = false
)

// SetGlobalVersion sets the version for automatic telemetry initialization.
// This should be called by the host before the first report.
func SetGlobalVersion(version string) {
	globalVersion = version
}

// SetGlobalDebugMode sets the debug mode for automatic telemetry
// initialization.
func SetGlobalDebugMode(debug bool) {
	globalDebugMode = debug
}

// GlobalClient returns the process-wide client, initializing it on first
// use.
func GlobalClient() *Client {
	ensureGlobalInitialized()
	return globalClient
}

// ensureGlobalInitialized ensures telemetry is initialized exactly once.
// No explicit setup is needed: the host can just call the Report functions.
func ensureGlobalInitialized() {
	globalOnce.Do(func() {
		cfg := LoadConfig()
		if !IsEnabled() {
			// Force the client inert regardless of what the config says;
			// IsEnabled also covers the test-run guard.
			cfg.OptOut = "1"
		}

		globalClient = NewClient(slog.Default(), cfg, globalVersion)

		if globalDebugMode {
			globalClient.logger.Debug("auto-initialized telemetry", "enabled", globalClient.IsEnabled())
		}
	})
}

// ReportApplicationType records what kind of host application started.
func ReportApplicationType(appType string) {
	GlobalClient().ReportApplicationType(appType)
}

// ReportModuleLoad records a module load by descriptor.
func ReportModuleLoad(mod *ModuleInfo) {
	GlobalClient().ReportModuleLoad(mod)
}

// ReportModuleLoadByName records a module load when only the bare name is
// known.
func ReportModuleLoadByName(name string) {
	GlobalClient().ReportModuleLoadByName(name)
}

// ReportFeatureActivation records an experimental feature being switched on
// or off.
func ReportFeatureActivation(scope FeatureScope, feature string, enabled bool) {
	GlobalClient().ReportFeatureActivation(scope, feature, enabled)
}

// ReportFeatureUse records one use of an experimental feature.
func ReportFeatureUse(feature, detail string) {
	GlobalClient().ReportFeatureUse(feature, detail)
}

// ReportAPIUse records one use of a host API entry point.
func ReportAPIUse(apiName string) {
	GlobalClient().ReportAPIUse(apiName)
}

// ReportSessionOpen records a new host session being created.
func ReportSessionOpen(hostKind string) {
	GlobalClient().ReportSessionOpen(hostKind)
}

// ReportStartup records the startup payload, at most once per process.
func ReportStartup(mode string, paramBitmap uint64) {
	GlobalClient().ReportStartup(mode, paramBitmap)
}

// ReportMetric records a generic named metric with a string payload.
func ReportMetric(name, value string) {
	GlobalClient().ReportMetric(name, value)
}

// Flush gives the global client's dispatcher a bounded opportunity to drain
// before process exit.
func Flush(timeout time.Duration) {
	GlobalClient().Flush(timeout)
}
