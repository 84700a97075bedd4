package toolbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/petasbytes/go-toolbox/internal/schemastore"
	"github.com/petasbytes/go-toolbox/internal/telemetry"
	"github.com/petasbytes/go-toolbox/internal/textstat"
)

// defaultSchemaDir is used when neither Options.SchemaDir nor TBX_SCHEMA_DIR
// is set.
const defaultSchemaDir = "schemas"

// Options configures a Registry.
type Options struct {
	Convert   Converter    // required; produces schema documents from source objects
	SchemaDir string       // directory for generated schema files (default TBX_SCHEMA_DIR or "schemas")
	Logger    *slog.Logger // default slog.Default()
	Strict    bool         // treat schema shape mismatches as registration failures
}

// Registry is the name- and tag-indexed tool store. Construct one per
// process (or per test) with New; mutation happens only through Register.
type Registry struct {
	mu        sync.RWMutex
	convert   Converter
	schemaDir string
	log       *slog.Logger
	strict    bool
	tools     map[string]*Tool
	byTag     map[string]map[string]*Tool
}

// New returns an empty registry.
func New(opts Options) *Registry {
	dir := opts.SchemaDir
	if dir == "" {
		dir = os.Getenv("TBX_SCHEMA_DIR")
	}
	if dir == "" {
		dir = defaultSchemaDir
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		convert:   opts.Convert,
		schemaDir: dir,
		log:       log,
		strict:    opts.Strict,
		tools:     make(map[string]*Tool),
		byTag:     make(map[string]map[string]*Tool),
	}
}

// Register converts, persists, and indexes one tool.
//
// A name that is already present is a silent no-op (StatusDuplicate, first
// registration wins). A converter failure or empty schema drops the tool
// entirely and returns an error; no partial entry is created. A schema that
// fails the expected-shape check is still stored (StatusWarned) unless the
// registry is strict.
func (r *Registry) Register(spec Spec) (*Registration, error) {
	if spec.Name == "" {
		return nil, errors.New("register: tool name cannot be empty")
	}
	if t, ok := r.Get(spec.Name); ok {
		return &Registration{Tool: t, Status: StatusDuplicate}, nil
	}

	if r.convert == nil {
		return nil, fmt.Errorf("register %s: no schema converter configured", spec.Name)
	}
	schema, err := r.convert(spec.Source, spec.Include)
	if err == nil && (schema == nil || schema.Len() == 0) {
		err = errors.New("converter produced an empty schema")
	}
	if err != nil {
		r.log.Error("schema conversion failed", "tool", spec.Name, "err", err)
		telemetry.Emit("conversion_failed", map[string]any{
			"tool":  spec.Name,
			"path":  spec.Path,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("register %s: %w", spec.Name, err)
	}

	js, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("register %s: marshal schema: %w", spec.Name, err)
	}
	js, err = sjson.SetBytes(js, "tool_path", spec.Path)
	if err != nil {
		return nil, fmt.Errorf("register %s: annotate schema: %w", spec.Name, err)
	}
	schema.Set("tool_path", spec.Path)

	warnings := shapeWarnings(js)
	if len(warnings) > 0 {
		if r.strict {
			return nil, fmt.Errorf("register %s: schema shape: %s", spec.Name, strings.Join(warnings, "; "))
		}
		// Non-fatal mismatch; suppressed to debug level.
		r.log.Debug("schema does not conform to the expected shape, using it anyway",
			"tool", spec.Name, "warnings", warnings)
		telemetry.Emit("schema_shape_mismatch", map[string]any{
			"tool":     spec.Name,
			"warnings": warnings,
		})
	}

	if telemetry.PersistSchemasEnabled() {
		schemaPath := spec.SchemaPath
		if schemaPath == "" {
			schemaPath = filepath.Join(r.schemaDir, spec.Name+".yml")
		}
		if err := schemastore.Save(schemaPath, schema); err != nil {
			r.log.Error("schema file write failed", "tool", spec.Name, "path", schemaPath, "err", err)
		} else {
			telemetry.Emit("schema_written", map[string]any{
				"tool": spec.Name,
				"path": schemaPath,
			})
		}
	}

	tool := &Tool{
		Name:       spec.Name,
		Path:       spec.Path,
		Schema:     schema,
		SchemaJSON: js,
		Code:       spec.Code,
		Tags:       append([]string(nil), spec.Tags...),
		Handler:    spec.Handler,
	}

	r.mu.Lock()
	if existing, ok := r.tools[spec.Name]; ok {
		r.mu.Unlock()
		return &Registration{Tool: existing, Status: StatusDuplicate}, nil
	}
	r.tools[spec.Name] = tool
	for _, tag := range tool.Tags {
		m := r.byTag[tag]
		if m == nil {
			m = make(map[string]*Tool)
			r.byTag[tag] = m
		}
		m[tool.Name] = tool
	}
	r.mu.Unlock()

	feat := textstat.Count(tool.Code)
	telemetry.Emit("tool_registered", map[string]any{
		"tool":       tool.Name,
		"path":       tool.Path,
		"tags":       tool.Tags,
		"code_bytes": feat.Bytes,
		"code_lines": feat.Lines,
	})

	status := StatusRegistered
	if len(warnings) > 0 {
		status = StatusWarned
	}
	return &Registration{Tool: tool, Status: status, Warnings: warnings}, nil
}

// shapeWarnings checks the generated schema against the expected structural
// contract: a type, a description, and object-valued parameters/methods.
func shapeWarnings(js []byte) []string {
	var w []string
	if !gjson.GetBytes(js, "type").Exists() {
		w = append(w, `missing "type"`)
	}
	if !gjson.GetBytes(js, "description").Exists() {
		w = append(w, `missing "description"`)
	}
	if p := gjson.GetBytes(js, "parameters"); p.Exists() && !p.IsObject() {
		w = append(w, `"parameters" is not an object`)
	}
	if m := gjson.GetBytes(js, "methods"); m.Exists() && !m.IsObject() {
		w = append(w, `"methods" is not an object`)
	}
	return w
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// HasTag reports whether any registered tool carries the tag.
func (r *Registry) HasTag(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byTag[tag]
	return ok
}

// ByTag returns the tools registered under tag, keyed by name. The returned
// map is a copy; it is empty (not nil) for unknown tags.
func (r *Registry) ByTag(tag string) map[string]*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Tool, len(r.byTag[tag]))
	for name, t := range r.byTag[tag] {
		out[name] = t
	}
	return out
}

// All returns every registered tool keyed by name. The returned map is a copy.
func (r *Registry) All() map[string]*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Tool, len(r.tools))
	for name, t := range r.tools {
		out[name] = t
	}
	return out
}

// TagNames returns the known tags, sorted for deterministic listing.
func (r *Registry) TagNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.byTag))
	for tag := range r.byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// RegisterAll registers a manifest of specs at a defined startup point.
// Failures are joined so one bad spec does not hide the rest.
func RegisterAll(r *Registry, specs []Spec) error {
	var errs []error
	for _, spec := range specs {
		if _, err := r.Register(spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
