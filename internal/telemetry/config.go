package telemetry

import (
	"os"
)

var (
	auditModeEnabled      bool
	observeEnabled        bool
	persistSchemasEnabled bool
)

func init() {
	// Read once at process start. Mid-run environment changes have no effect.
	auditModeEnabled = os.Getenv("TBX_AUDIT_MODE") == "1"

	// Observe: default to 1 when audit=1 and TBX_OBSERVE_JSON is unset; honour explicit 0/1.
	if v, ok := os.LookupEnv("TBX_OBSERVE_JSON"); ok {
		observeEnabled = (v == "1")
	} else {
		observeEnabled = auditModeEnabled
	}

	// Schema files: written by default; TBX_PERSIST_SCHEMAS=0 disables.
	if v, ok := os.LookupEnv("TBX_PERSIST_SCHEMAS"); ok {
		persistSchemasEnabled = (v != "0")
	} else {
		persistSchemasEnabled = true
	}
}

// AuditModeEnabled reports whether audit mode was enabled at startup.
func AuditModeEnabled() bool { return auditModeEnabled }

// ObserveEnabled reports whether JSONL emission was enabled at startup,
// considering audit-mode defaults.
func ObserveEnabled() bool {
	// Preserve startup-evaluated default, but allow tests to enable mid-run via env override.
	if os.Getenv("TBX_OBSERVE_JSON") == "1" {
		return true
	}
	return observeEnabled
}

// PersistSchemasEnabled reports whether schema file persistence was enabled
// at startup.
func PersistSchemasEnabled() bool {
	// Allow tests to disable mid-run via env override.
	if os.Getenv("TBX_PERSIST_SCHEMAS") == "0" {
		return false
	}
	return persistSchemasEnabled
}
