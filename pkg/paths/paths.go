package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the user's config directory for pwshgo.
// Falls back to temp directory if home directory cannot be determined.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp directory
		return filepath.Join(os.TempDir(), ".pwshgo-config")
	}
	return filepath.Join(homeDir, ".config", "pwshgo")
}

// GetCacheDir returns the user's cache directory for pwshgo (durable
// per-installation state like the telemetry node identifier).
// Falls back to temp directory if home directory cannot be determined.
func GetCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".pwshgo")
	}
	return filepath.Join(homeDir, ".cache", "pwshgo")
}
