// Package schemastore persists generated tool schemas as YAML files.
//
// Persistence model:
//   - One document per tool, written under the tool's name; parent
//     directories are created as needed.
//   - Key order follows the schema document's insertion order.
//   - Write-only from the registry's point of view; Load exists for external
//     tooling and tests.
package schemastore

import (
	"fmt"
	"os"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the schema document to path as YAML, creating parent
// directories as needed.
func Save(path string, doc *orderedmap.OrderedMap[string, any]) error {
	if doc == nil {
		return fmt.Errorf("save %s: nil schema document", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	node, err := yamlNode(doc)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	b, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Load reads a schema file back as a generic map.
func Load(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

// yamlNode converts a schema value into a yaml.Node tree, preserving the
// insertion order of nested ordered maps.
func yamlNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for p := x.Oldest(); p != nil; p = p.Next() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key}
			val, err := yamlNode(p.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, key, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			val, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e})
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, fmt.Errorf("encode %T: %w", v, err)
		}
		return n, nil
	}
}
