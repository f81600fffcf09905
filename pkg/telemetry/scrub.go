package telemetry

import "strconv"

// Category identifies how a telemetry field is governed by the scrubber.
type Category int

const (
	// CategoryRaw marks ungoverned fields (free-form counters,
	// already-validated enumerations); values pass through unchanged.
	CategoryRaw Category = iota
	CategoryModuleName
	CategoryFeatureName
	CategoryApplicationType
	CategoryModuleVersion
)

// Sentinels substituted for values that are not allowed to leave the host.
const (
	// AnonymousName replaces module and feature names absent from the
	// allowlist.
	AnonymousName = "anonymous"
	// UnknownTag replaces tag-like values absent from the allowlist.
	UnknownTag = "n/a"
	// UnknownVersion replaces the version of an anonymized or malformed
	// module descriptor.
	UnknownVersion = "0.0"
	// anonymousPlatform replaces host/role/instance metadata the transport
	// layer populates on outgoing records.
	anonymousPlatform = "na"
)

// platformFields are record metadata keys that could carry machine-identifying
// values. They are overwritten on every outgoing record just before
// transmission, regardless of what populated them.
var platformFields = []string{
	"host",
	"hostname",
	"role_instance",
	"role_name",
	"device_id",
	"ip",
}

// Scrub decides whether a raw value may be reported verbatim. Values on the
// category's allowlist pass unchanged; everything else becomes the
// category's sentinel. The function is total: it never fails, has no side
// effects, and is idempotent (a sentinel scrubs to itself).
//
// This is the single choke point for externally supplied strings. No other
// code path may place a raw value into an outgoing record.
func (a *Allowlist) Scrub(category Category, raw string) string {
	switch category {
	case CategoryModuleName:
		if _, ok := a.modules[raw]; ok {
			return raw
		}
		return AnonymousName
	case CategoryFeatureName:
		if _, ok := a.features[raw]; ok {
			return raw
		}
		return AnonymousName
	case CategoryApplicationType:
		if _, ok := a.applicationTypes[raw]; ok {
			return raw
		}
		return UnknownTag
	case CategoryModuleVersion:
		if isDecimalVersion(raw) {
			return raw
		}
		return UnknownVersion
	default:
		return raw
	}
}

// isDecimalVersion reports whether s is a plain non-negative decimal like
// "2.0". Anything else (pre-release tags, build metadata, garbage) is
// treated as unknown.
func isDecimalVersion(s string) bool {
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= 0
}
