// Package provider adapts catalog entries to the Anthropic Messages API.
package provider

import (
	"sort"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/go-toolbox/toolbox"
)

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// defaultMaxTokens caps response length in exported request skeletons.
const defaultMaxTokens = int64(1024)

// MessageParams assembles a ready-to-send request skeleton for a resolved
// tool set: model, token ceiling, and the flattened tool parameters. Callers
// append messages before sending. Zero values fall back to DefaultModel and
// the default token ceiling.
func MessageParams(model anthropic.Model, maxTokens int64, tools map[string]*toolbox.Tool) anthropic.MessageNewParams {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxTokens,
		Tools:     ToolParams(tools),
	}
}

// ToolParams flattens a resolved tool set into Anthropic tool parameters,
// sorted by name so request payloads are deterministic. Description and
// input properties come from each tool's persisted schema JSON.
func ToolParams(tools map[string]*toolbox.Tool) []anthropic.ToolUnionParam {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]anthropic.ToolUnionParam, 0, len(names))
	for _, name := range names {
		t := tools[name]
		desc := gjson.GetBytes(t.SchemaJSON, "description").String()
		props := map[string]any{}
		if p := gjson.GetBytes(t.SchemaJSON, "parameters.properties"); p.IsObject() {
			if m, ok := p.Value().(map[string]any); ok {
				props = m
			}
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(desc),
			InputSchema: anthropic.ToolInputSchemaParam{Properties: props},
		}})
	}
	return out
}
