package toolbox

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema is the structured document a converter produces for one tool.
// Insertion order is preserved so persisted YAML/JSON keeps the converter's
// key order. The registry treats the contents opaquely apart from a soft
// shape check at registration time.
type Schema = *orderedmap.OrderedMap[string, any]

// NewSchema returns an empty schema document.
func NewSchema() Schema { return orderedmap.New[string, any]() }

// Converter turns a source object into a schema document. A nil document or
// an error means the tool cannot be described and must not be registered.
type Converter func(src any, include []string) (Schema, error)
