package telemetry

import (
	"flag"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/pwshgo/telemetry/pkg/paths"
)

// Build-time telemetry configuration (set via -ldflags)
var (
	TelemetryEndpoint = "https://telemetry.pwshgo.dev/events/v1/track"
	TelemetryAPIKey   = "pub-4c1f8e0a9b2d4e6f8a0c2e4d6b8f0a1c"
)

// Config holds the environment-derived telemetry settings. The zero value
// plus LoadConfig defaults describes a standard installation.
type Config struct {
	// OptOut is the raw opt-out signal. It stays a string so the lenient
	// boolean grammar below applies instead of strict parsing: an
	// unparseable value is treated exactly like an unset one.
	OptOut   string `env:"PWSHGO_TELEMETRY_OPTOUT"`
	Endpoint string `env:"PWSHGO_TELEMETRY_ENDPOINT"`
	APIKey   string `env:"PWSHGO_TELEMETRY_API_KEY"`
	// StateDir is where the durable node identifier lives.
	StateDir string `env:"PWSHGO_TELEMETRY_STATE_DIR"`
}

// LoadConfig reads telemetry settings from the environment, filling in
// build-time defaults. It never fails: a malformed environment yields the
// defaults.
func LoadConfig() Config {
	var cfg Config
	// Parse errors leave the affected fields empty, which the defaulting
	// below already handles.
	_ = env.Parse(&cfg)

	if cfg.Endpoint == "" {
		cfg.Endpoint = TelemetryEndpoint
	}
	if cfg.APIKey == "" {
		cfg.APIKey = TelemetryAPIKey
	}
	if cfg.StateDir == "" {
		cfg.StateDir = paths.GetCacheDir()
	}
	return cfg
}

// Enabled reports whether telemetry collection is enabled for this config.
// The opt-out signal disables telemetry only when it parses as true under
// the lenient grammar; everything else falls through to the default
// (enabled). This resolution never errors.
func (c Config) Enabled() bool {
	if optOut, ok := parseLenientBool(c.OptOut); ok {
		return !optOut
	}
	return true
}

var (
	enabledOnce  sync.Once
	enabledValue bool
)

// IsEnabled resolves the process-wide consent decision once and caches it.
// Every downstream component consults this before doing any work, so a
// disabled process performs no identity I/O and no network activity.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		// Disable telemetry when running under `go test` to prevent HTTP calls
		if flag.Lookup("test.v") != nil {
			enabledValue = false
			return
		}
		enabledValue = LoadConfig().Enabled()
	})
	return enabledValue
}

// parseLenientBool parses the boolean-like grammar accepted by the opt-out
// signal: "1"/"0", "yes"/"no", "true"/"false", case-insensitive. The second
// return value reports whether the input matched the grammar at all.
func parseLenientBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "true":
		return true, true
	case "0", "no", "false":
		return false, true
	}
	return false, false
}
