package tools

import (
	"encoding/json"
	"fmt"

	"github.com/petasbytes/go-toolbox/internal/fsops"
	"github.com/petasbytes/go-toolbox/internal/projpath"
	"github.com/petasbytes/go-toolbox/internal/schemaconv"
	"github.com/petasbytes/go-toolbox/toolbox"
)

type ListFilesInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from (defaults to current directory)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

// defaultListFilesPageSize is the fallback page size when page_size <= 0.
const defaultListFilesPageSize = 200

var ListFilesSpec = toolbox.Spec{
	Name: "list_files",
	Path: projpath.Here(),
	Tags: []string{"filesystem"},
	Source: schemaconv.Typed{
		Description: "List names of files in a directory within the workspace (non-recursive).",
		Input:       ListFilesInput{},
	},
	Handler: ListFiles,
}

// ListFiles lists non-recursive directory entries under the sandbox via fsops
// (already in lexical order) and applies simple paging at the tool layer.
// Defaults:
//   - page: 1 when <= 0
//   - page_size: 200 when <= 0
//
// Contract: returns a JSON-encoded []string.
func ListFiles(input json.RawMessage) (string, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	page := in.Page
	// Default benign inputs for LLM callers to keep behaviour predictable.
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultListFilesPageSize
	}

	namesJSON, err := fsops.ListFiles(in.Path)
	if err != nil {
		return "", err
	}
	var names []string
	if err := json.Unmarshal([]byte(namesJSON), &names); err != nil {
		return "", fmt.Errorf("invalid list_files payload: %w", err)
	}

	start := (page - 1) * pageSize
	// Out-of-range page returns an empty JSON array; keep the output contract.
	if start >= len(names) {
		return "[]", nil
	}
	end := start + pageSize
	if end > len(names) {
		end = len(names)
	}
	paged := names[start:end]

	b, err := json.Marshal(paged)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
