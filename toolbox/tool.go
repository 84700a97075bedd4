package toolbox

import (
	"encoding/json"
)

// Handler executes a tool against JSON-encoded input and returns its textual
// result. Catalog entries may omit it; the registry never invokes handlers.
type Handler func(input json.RawMessage) (string, error)

// Spec is the registration input for one tool.
type Spec struct {
	Name       string   // unique identifier; first registration wins
	Path       string   // source location, informational (project-relative when possible)
	SchemaPath string   // optional override for the generated schema file
	Code       string   // optional raw source text for downstream display/prompting
	Tags       []string // category labels; may be empty
	Source     any      // source object handed to the schema converter
	Include    []string // member filter applied when Source is a container of callables
	Handler    Handler  // optional invocation hook for downstream agents
}

// Tool is one registered unit. Immutable after insertion.
type Tool struct {
	Name       string
	Path       string
	Schema     Schema
	SchemaJSON []byte // schema document plus tool_path, for external consumers
	Code       string
	Tags       []string
	Handler    Handler
}

// HasTag reports whether the tool carries the given tag.
func (t *Tool) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// Status describes the outcome of a Register call.
type Status int

const (
	// StatusRegistered means the tool was stored with a clean schema.
	StatusRegistered Status = iota
	// StatusWarned means the tool was stored but its schema failed the
	// expected-shape check.
	StatusWarned
	// StatusDuplicate means the name was already present and the call was a
	// no-op.
	StatusDuplicate
)

func (s Status) String() string {
	switch s {
	case StatusRegistered:
		return "registered"
	case StatusWarned:
		return "registered_with_warnings"
	case StatusDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Registration reports what a Register call did, so callers can distinguish
// clean registrations from warned or duplicate ones.
type Registration struct {
	Tool     *Tool
	Status   Status
	Warnings []string
}
