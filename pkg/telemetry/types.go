package telemetry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EventType is the closed set of telemetry signal categories the pipeline
// understands. Each type defines which of its fields are free-text and which
// are allowlist-governed.
type EventType string

const (
	EventTypeApplicationType   EventType = "application_type"
	EventTypeModuleLoad        EventType = "module_load"
	EventTypeFeatureActivation EventType = "experimental_feature_activation"
	EventTypeFeatureUse        EventType = "experimental_feature_use"
	EventTypeAPIUse            EventType = "api_use"
	EventTypeSessionOpen       EventType = "session_open"
	EventTypeStartup           EventType = "startup"
	EventTypeMetric            EventType = "metric"
)

// FeatureScope distinguishes engine-level experimental features from
// module-scoped ones.
type FeatureScope string

const (
	FeatureScopeEngine FeatureScope = "engine"
	FeatureScopeModule FeatureScope = "module"
)

// ModuleInfo describes a loaded module. Version is the module's declared
// version in decimal form, e.g. "2.0".
type ModuleInfo struct {
	Name    string
	Version string
}

// Event is a fully scrubbed telemetry record ready for dispatch. Every
// property value has already passed through the scrubber; the dispatcher
// and transport never see raw host-supplied strings.
//
// Properties keep insertion order so records serialize deterministically.
// Measurements carry numeric payloads, which the collection endpoint
// aggregates differently from properties.
type Event struct {
	Type         EventType
	Properties   *orderedmap.OrderedMap[string, string]
	Measurements map[string]float64
}

// EventPayload is the wire form of one record as accepted by the collection
// endpoint.
type EventPayload struct {
	Event          EventType                              `json:"event"`
	EventTimestamp int64                                  `json:"event_timestamp"`
	Source         string                                 `json:"source"`
	Properties     *orderedmap.OrderedMap[string, string] `json:"properties,omitempty"`
	Measurements   map[string]float64                     `json:"measurements,omitempty"`
}
