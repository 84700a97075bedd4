// Package safety provides helpers for sandboxed file access by the builtin
// tools.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is a machine-readable error body for surfacing back to the agent as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool_result payloads small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// InitSandboxRoot resolves absolute sandbox roots for read and write operations.
func InitSandboxRoot(readRoot, writeRoot string) (absRead string, absWrite string, err error) {
	// Default readRoot to CWD when empty
	if readRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("getwd: %w", err)
		}
		readRoot = cwd
	}

	// Default writeRoot to readRoot when empty
	if writeRoot == "" {
		writeRoot = readRoot
	}

	// Make absolute
	readRoot, err = filepath.Abs(readRoot)
	if err != nil {
		return "", "", fmt.Errorf("abs(readRoot): %w", err)
	}
	writeRoot, err = filepath.Abs(writeRoot)
	if err != nil {
		return "", "", fmt.Errorf("abs(writeRoot): %w", err)
	}

	// Resolve symlinks where possible so future boundary checks are reliable.
	// If EvalSymlinks fails (e.g., non-existent), fall back to the absolute path as-is.
	if r, err := filepath.EvalSymlinks(readRoot); err == nil {
		readRoot = r
	}
	if w, err := filepath.EvalSymlinks(writeRoot); err == nil {
		writeRoot = w
	}

	return readRoot, writeRoot, nil
}

// resolveUnderRoot cleans relPath, joins it under absRoot, resolves
// symlinks best-effort, and rejects anything escaping the root.
func resolveUnderRoot(absRoot, relPath string) (absPath, rel string, err error) {
	// Reject absolute inputs early
	if filepath.IsAbs(relPath) {
		return "", "", ToolError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "absolute paths are not allowed"}
	}

	// Clean and normalise the provided relative path
	cleaned := filepath.Clean(relPath)
	// Special case: empty means "." (current dir)
	if cleaned == "" {
		cleaned = "."
	}

	// Join to make a candidate under the root
	candidate := filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution.
	// 1) Resolve the whole candidate if it exists.
	// 2) Otherwise, resolve the deepest existing ancestor (the parent dir)
	//    and rejoin the final segment. This reveals escapes via a symlinked parent.
	if resolved, rerr := filepath.EvalSymlinks(candidate); rerr == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, perr := filepath.EvalSymlinks(parent); perr == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	// Boundary check using filepath.Rel (robust against partial prefix matches)
	rel, err = filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", "", ToolError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "requested path resolves outside the sandbox root"}
	}

	return candidate, filepath.ToSlash(rel), nil
}

// underDotDir reports whether rel (slash-separated) is dir or inside dir.
func underDotDir(rel, dir string) bool {
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}

// ValidateRelPath resolves relPath against absRoot and returns an absolute path
// inside the sandbox. It rejects absolute inputs, parent traversal, and symlink
// escapes, and denies reads under .git/ and .toolbox/. On violation, returns a ToolError.
func ValidateRelPath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolveUnderRoot(absRoot, relPath)
	if err != nil {
		return "", err
	}

	// Read denylist: block under .git/ and .toolbox/
	if underDotDir(rel, ".git") || underDotDir(rel, ".toolbox") {
		return "", ToolError{Code: "ERR_DENIED_READ", Message: "reads under .git/ or .toolbox/ are not allowed"}
	}

	return candidate, nil
}

// ValidateWritePath resolves relPath against absRoot for writing. In
// addition to the boundary checks, it denies writes under .git/ and
// .toolbox/ and to module metadata files (go.mod, go.sum) anywhere in the
// tree. On violation, returns a ToolError.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolveUnderRoot(absRoot, relPath)
	if err != nil {
		return "", err
	}

	if underDotDir(rel, ".git") || underDotDir(rel, ".toolbox") {
		return "", ToolError{Code: "ERR_DENIED_WRITE", Message: "writes under .git/ or .toolbox/ are not allowed"}
	}
	switch filepath.Base(rel) {
	case "go.mod", "go.sum":
		return "", ToolError{Code: "ERR_DENIED_WRITE", Message: "writes to module metadata files are not allowed"}
	}

	return candidate, nil
}
