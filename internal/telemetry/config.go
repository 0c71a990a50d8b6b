package telemetry

import (
	"os"
)

var (
	observeEnabled         bool
	persistPayloadsEnabled bool
)

func init() {
	// Read once at process start. Mid-run environment changes have no effect
	// beyond the explicit "1" overrides below.
	observeEnabled = os.Getenv("IMG_OBSERVE_JSON") == "1"
	persistPayloadsEnabled = os.Getenv("IMG_PERSIST_API_PAYLOADS") == "1"
}

// ObserveEnabled reports whether JSONL emission is enabled.
func ObserveEnabled() bool {
	// Preserve startup-evaluated default, but allow tests to enable mid-run
	// via env override.
	if os.Getenv("IMG_OBSERVE_JSON") == "1" {
		return true
	}
	return observeEnabled
}

// PersistPayloadsEnabled reports whether raw upstream payload capture is
// enabled.
func PersistPayloadsEnabled() bool {
	if os.Getenv("IMG_PERSIST_API_PAYLOADS") == "1" {
		return true
	}
	return persistPayloadsEnabled
}
