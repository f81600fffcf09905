package telemetry

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// The constructors below are the only way events come into existence: every
// governed field passes through the scrubber, the node and session
// identities attach as standard properties, and numeric payloads land on the
// measurement channel. Nil or absent inputs substitute the category's
// sentinel; construction never fails.

// newEvent builds the base record with the standard identity properties.
func newEvent(t EventType, nodeID, sessionID string) Event {
	props := orderedmap.New[string, string]()
	props.Set("node_id", nodeID)
	props.Set("session_id", sessionID)
	return Event{Type: t, Properties: props}
}

func newApplicationTypeEvent(a *Allowlist, nodeID, sessionID, appType string) Event {
	ev := newEvent(EventTypeApplicationType, nodeID, sessionID)
	ev.Properties.Set("application_type", a.Scrub(CategoryApplicationType, appType))
	return ev
}

func newModuleLoadEvent(a *Allowlist, nodeID, sessionID string, mod *ModuleInfo) Event {
	ev := newEvent(EventTypeModuleLoad, nodeID, sessionID)

	name := AnonymousName
	ver := UnknownVersion
	if mod != nil {
		name = a.Scrub(CategoryModuleName, mod.Name)
		// The version only accompanies modules that survived scrubbing
		// verbatim; an anonymized module keeps the version sentinel too.
		if _, allowed := a.modules[name]; allowed {
			ver = a.Scrub(CategoryModuleVersion, mod.Version)
		}
	}
	ev.Properties.Set("module_name", name)
	ev.Properties.Set("module_version", ver)
	if f, err := strconv.ParseFloat(ver, 64); err == nil {
		ev.Measurements = map[string]float64{"module_version": f}
	}
	return ev
}

func newModuleLoadEventByName(a *Allowlist, nodeID, sessionID, name string) Event {
	return newModuleLoadEvent(a, nodeID, sessionID, &ModuleInfo{Name: name, Version: UnknownVersion})
}

func newFeatureActivationEvent(a *Allowlist, nodeID, sessionID string, scope FeatureScope, feature string, enabled bool) Event {
	ev := newEvent(EventTypeFeatureActivation, nodeID, sessionID)
	ev.Properties.Set("feature_name", a.Scrub(CategoryFeatureName, feature))
	ev.Properties.Set("feature_scope", string(scope))
	action := "deactivate"
	if enabled {
		action = "activate"
	}
	ev.Properties.Set("action", action)
	return ev
}

func newFeatureUseEvent(a *Allowlist, nodeID, sessionID, feature, detail string) Event {
	ev := newEvent(EventTypeFeatureUse, nodeID, sessionID)
	ev.Properties.Set("feature_name", a.Scrub(CategoryFeatureName, feature))
	// Detail is free text by contract and carries no governed names.
	ev.Properties.Set("detail", a.Scrub(CategoryRaw, detail))
	return ev
}

func newAPIUseEvent(a *Allowlist, nodeID, sessionID, apiName string) Event {
	ev := newEvent(EventTypeAPIUse, nodeID, sessionID)
	// API names come from the host's own fixed enumeration.
	ev.Properties.Set("api_name", a.Scrub(CategoryRaw, apiName))
	return ev
}

func newSessionOpenEvent(a *Allowlist, nodeID, sessionID, hostKind string) Event {
	ev := newEvent(EventTypeSessionOpen, nodeID, sessionID)
	ev.Properties.Set("host_kind", a.Scrub(CategoryApplicationType, hostKind))
	return ev
}

func newStartupEvent(a *Allowlist, nodeID, sessionID, mode string, paramBitmap uint64) Event {
	ev := newEvent(EventTypeStartup, nodeID, sessionID)
	// Startup modes are a host-validated enumeration.
	ev.Properties.Set("startup_mode", a.Scrub(CategoryRaw, mode))
	ev.Measurements = map[string]float64{"parameter_bitmap": float64(paramBitmap)}
	return ev
}

func newMetricEvent(a *Allowlist, nodeID, sessionID, name, value string) Event {
	ev := newEvent(EventTypeMetric, nodeID, sessionID)
	ev.Properties.Set("metric_name", a.Scrub(CategoryRaw, name))
	ev.Properties.Set("value", a.Scrub(CategoryRaw, value))
	return ev
}

// ReportApplicationType records what kind of host application started.
func (tc *Client) ReportApplicationType(appType string) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newApplicationTypeEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, appType))
}

// ReportModuleLoad records a module load by descriptor. A nil descriptor is
// reported with the anonymous sentinels.
func (tc *Client) ReportModuleLoad(mod *ModuleInfo) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newModuleLoadEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, mod))
}

// ReportModuleLoadByName records a module load when only the bare name is
// known.
func (tc *Client) ReportModuleLoadByName(name string) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newModuleLoadEventByName(tc.allowlist, tc.identity.NodeID(), tc.sessionID, name))
}

// ReportFeatureActivation records an experimental feature being switched on
// or off, either engine-level or module-scoped.
func (tc *Client) ReportFeatureActivation(scope FeatureScope, feature string, enabled bool) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newFeatureActivationEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, scope, feature, enabled))
}

// ReportFeatureUse records one use of an experimental feature with a
// free-text detail string.
func (tc *Client) ReportFeatureUse(feature, detail string) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newFeatureUseEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, feature, detail))
}

// ReportAPIUse records one use of a host API entry point.
func (tc *Client) ReportAPIUse(apiName string) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newAPIUseEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, apiName))
}

// ReportSessionOpen records a new host session being created.
func (tc *Client) ReportSessionOpen(hostKind string) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newSessionOpenEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, hostKind))
}

// ReportStartup records the startup payload. Only the first call per client
// has any effect; later calls are silent no-ops.
func (tc *Client) ReportStartup(mode string, paramBitmap uint64) {
	if !tc.enabled {
		return
	}
	tc.startupOnce.Do(func() {
		tc.enqueue(newStartupEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, mode, paramBitmap))
	})
}

// ReportMetric records a generic named metric with a string payload.
func (tc *Client) ReportMetric(name, value string) {
	if !tc.enabled {
		return
	}
	tc.enqueue(newMetricEvent(tc.allowlist, tc.identity.NodeID(), tc.sessionID, name, value))
}
