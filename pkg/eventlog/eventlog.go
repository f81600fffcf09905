// Package eventlog defines the health/lifecycle/audit logging sink the
// pwshgo host writes to. The default sink is a guaranteed no-op: it performs
// no I/O, allocates nothing, and never fails, so hosts that configure no
// logging pay nothing for the calls.
package eventlog

import "log/slog"

// Sink receives structured health, lifecycle, and audit events from the
// host. Implementations must never return errors or panic; the host calls
// these entry points on hot paths and does not check outcomes.
type Sink interface {
	// Lifecycle records an engine state transition, e.g. "startup" or
	// "shutdown", with an optional free-form detail string.
	Lifecycle(state, detail string)
	// Health records a component health observation.
	Health(component, detail string)
	// Audit records a security-relevant action against a target.
	Audit(action, target string)
}

// NopSink discards every event. It is the default when the host configures
// no real sink.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) Lifecycle(string, string) {}
func (NopSink) Health(string, string)    {}
func (NopSink) Audit(string, string)     {}

// SlogSink writes events through a slog.Logger for hosts that want real
// output.
type SlogSink struct {
	logger *slog.Logger
}

var _ Sink = (*SlogSink)(nil)

// NewSlogSink creates a sink backed by the given logger. A nil logger uses
// slog.Default.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Lifecycle(state, detail string) {
	s.logger.Info("engine lifecycle", "state", state, "detail", detail)
}

func (s *SlogSink) Health(component, detail string) {
	s.logger.Info("health", "component", component, "detail", detail)
}

func (s *SlogSink) Audit(action, target string) {
	s.logger.Info("audit", "action", action, "target", target)
}
