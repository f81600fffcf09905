package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Enabled_Grammar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		optOut  string
		enabled bool
	}{
		{"unset", "", true},
		{"one", "1", false},
		{"zero", "0", true},
		{"yes lower", "yes", false},
		{"yes upper", "YES", false},
		{"yes mixed", "Yes", false},
		{"no lower", "no", true},
		{"no upper", "NO", true},
		{"true lower", "true", false},
		{"true upper", "TRUE", false},
		{"true mixed", "True", false},
		{"false lower", "false", true},
		{"false upper", "FALSE", true},
		{"surrounding whitespace", "  true  ", false},
		{"garbage falls through to default", "banana", true},
		{"numeric garbage", "2", true},
		{"partial match", "y", true},
		{"truthy word", "on", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Config{OptOut: tt.optOut}
			assert.Equal(t, tt.enabled, cfg.Enabled())
		})
	}
}

func TestParseLenientBool(t *testing.T) {
	t.Parallel()

	value, ok := parseLenientBool("No")
	assert.True(t, ok)
	assert.False(t, value)

	_, ok = parseLenientBool("")
	assert.False(t, ok)

	_, ok = parseLenientBool("maybe")
	assert.False(t, ok)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	require.NotEmpty(t, cfg.Endpoint)
	require.NotEmpty(t, cfg.APIKey)
	require.NotEmpty(t, cfg.StateDir)
	assert.True(t, cfg.Enabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PWSHGO_TELEMETRY_OPTOUT", "yes")
	t.Setenv("PWSHGO_TELEMETRY_ENDPOINT", "https://collector.example.test/track")
	t.Setenv("PWSHGO_TELEMETRY_STATE_DIR", "/tmp/pwshgo-test-state")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled())
	assert.Equal(t, "https://collector.example.test/track", cfg.Endpoint)
	assert.Equal(t, "/tmp/pwshgo-test-state", cfg.StateDir)
}

func TestIsEnabled_UnderTests(t *testing.T) {
	// The test-run guard keeps the global consent decision off so no test
	// can ever reach the real endpoint through the global client.
	assert.False(t, IsEnabled())
}
