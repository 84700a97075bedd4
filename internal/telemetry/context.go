package telemetry

import "context"

// scanIDKey is the context key type used to store a scan ID.
type scanIDKey struct{}

// WithScanID returns a child context that carries the provided scan ID.
// If ctx is nil, context.Background() is used.
func WithScanID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scanIDKey{}, id)
}

// ScanIDFromContext returns the scan ID from ctx, if present.
// Returns "", false if the value is missing or not a non-empty string.
func ScanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v := ctx.Value(scanIDKey{})
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
