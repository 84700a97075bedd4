package toolbox

import (
	"context"
	"os"

	"github.com/petasbytes/go-toolbox/internal/telemetry"
)

// DiscoverFunc registers the tools found at a filesystem path and returns
// them keyed by name. The scan package provides the standard implementation.
type DiscoverFunc func(ctx context.Context, path string) (map[string]*Tool, error)

// Resolve turns a mixed list of identifiers into a concrete tool set.
//
// Each identifier is tried, in precedence order, as: an existing filesystem
// path (file or directory, triggering discover), an exact tool name, an
// exact tag. Anything else is logged as a warning and skipped; resolution of
// the remaining identifiers continues. The result is the union across all
// matched branches, keyed by name.
func (r *Registry) Resolve(ctx context.Context, identifiers []string, discover DiscoverFunc) map[string]*Tool {
	valid := make(map[string]*Tool)
	for _, id := range identifiers {
		if _, err := os.Stat(id); err == nil {
			if discover == nil {
				r.skip(id, "no discoverer configured")
				continue
			}
			found, derr := discover(ctx, id)
			if derr != nil {
				r.skip(id, derr.Error())
			}
			// Merge whatever the scan managed to register.
			for name, t := range found {
				valid[name] = t
			}
			continue
		}
		if t, ok := r.Get(id); ok {
			valid[id] = t
			continue
		}
		if r.HasTag(id) {
			for name, t := range r.ByTag(id) {
				valid[name] = t
			}
			continue
		}
		r.skip(id, "not a tool name, tag, or path")
	}
	return valid
}

func (r *Registry) skip(id, reason string) {
	r.log.Warn("invalid tool identifier, skipped", "identifier", id, "reason", reason)
	telemetry.Emit("identifier_skipped", map[string]any{
		"identifier": id,
		"reason":     reason,
	})
}
