package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(t *testing.T, ev Event, key string) string {
	t.Helper()
	value, ok := ev.Properties.Get(key)
	require.True(t, ok, "property %q missing", key)
	return value
}

func TestNewModuleLoadEvent_Allowlisted(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newModuleLoadEvent(a, "node-1", "session-1", &ModuleInfo{
		Name:    "Microsoft.PowerShell.Utility",
		Version: "2.0",
	})

	assert.Equal(t, EventTypeModuleLoad, ev.Type)
	assert.Equal(t, "node-1", prop(t, ev, "node_id"))
	assert.Equal(t, "session-1", prop(t, ev, "session_id"))
	assert.Equal(t, "Microsoft.PowerShell.Utility", prop(t, ev, "module_name"))
	assert.Equal(t, "2.0", prop(t, ev, "module_version"))
	assert.InDelta(t, 2.0, ev.Measurements["module_version"], 0)
}

func TestNewModuleLoadEvent_Unknown(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newModuleLoadEvent(a, "node-1", "session-1", &ModuleInfo{
		Name:    "MyPrivateTool",
		Version: "3.1",
	})

	assert.Equal(t, AnonymousName, prop(t, ev, "module_name"))
	// An anonymized module never reveals its real version either.
	assert.Equal(t, UnknownVersion, prop(t, ev, "module_version"))
	assert.InDelta(t, 0.0, ev.Measurements["module_version"], 0)
}

func TestNewModuleLoadEvent_NilDescriptor(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newModuleLoadEvent(a, "node-1", "session-1", nil)

	assert.Equal(t, AnonymousName, prop(t, ev, "module_name"))
	assert.Equal(t, UnknownVersion, prop(t, ev, "module_version"))
}

func TestNewModuleLoadEventByName(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")

	known := newModuleLoadEventByName(a, "n", "s", "PSReadLine")
	assert.Equal(t, "PSReadLine", prop(t, known, "module_name"))

	unknown := newModuleLoadEventByName(a, "n", "s", "SecretCorpModule")
	assert.Equal(t, AnonymousName, prop(t, unknown, "module_name"))
}

func TestNewApplicationTypeEvent(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")

	known := newApplicationTypeEvent(a, "n", "s", "serverremotehost")
	assert.Equal(t, "serverremotehost", prop(t, known, "application_type"))

	unknown := newApplicationTypeEvent(a, "n", "s", "my custom embedding")
	assert.Equal(t, UnknownTag, prop(t, unknown, "application_type"))
}

func TestNewFeatureActivationEvent(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")

	on := newFeatureActivationEvent(a, "n", "s", FeatureScopeEngine, "PSCommandWithArgs", true)
	assert.Equal(t, EventTypeFeatureActivation, on.Type)
	assert.Equal(t, "PSCommandWithArgs", prop(t, on, "feature_name"))
	assert.Equal(t, "engine", prop(t, on, "feature_scope"))
	assert.Equal(t, "activate", prop(t, on, "action"))

	off := newFeatureActivationEvent(a, "n", "s", FeatureScopeModule, "SomethingHomegrown", false)
	assert.Equal(t, AnonymousName, prop(t, off, "feature_name"))
	assert.Equal(t, "module", prop(t, off, "feature_scope"))
	assert.Equal(t, "deactivate", prop(t, off, "action"))
}

func TestNewFeatureUseEvent(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newFeatureUseEvent(a, "n", "s", "NotARealFeature", "invoked from profile")

	assert.Equal(t, AnonymousName, prop(t, ev, "feature_name"))
	// The detail channel is free text by contract.
	assert.Equal(t, "invoked from profile", prop(t, ev, "detail"))
}

func TestNewStartupEvent(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newStartupEvent(a, "n", "s", "interactive", 0b1011)

	assert.Equal(t, EventTypeStartup, ev.Type)
	assert.Equal(t, "interactive", prop(t, ev, "startup_mode"))
	assert.InDelta(t, 11.0, ev.Measurements["parameter_bitmap"], 0)
}

func TestNewMetricEvent(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newMetricEvent(a, "n", "s", "parser.cache.hits", "42")

	assert.Equal(t, "parser.cache.hits", prop(t, ev, "metric_name"))
	assert.Equal(t, "42", prop(t, ev, "value"))
}

func TestEventProperties_InsertionOrder(t *testing.T) {
	t.Parallel()

	a := newAllowlist("")
	ev := newModuleLoadEvent(a, "n", "s", &ModuleInfo{Name: "ThreadJob", Version: "2.0"})

	var keys []string
	for pair := ev.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"node_id", "session_id", "module_name", "module_version"}, keys)
}
