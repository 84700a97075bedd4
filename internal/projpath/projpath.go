// Package projpath resolves the project root and rewrites source paths into
// a portable project-relative form for catalog records.
package projpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

var (
	rootOnce sync.Once
	absRoot  string
	rootErr  error
)

func initRoot() {
	root := os.Getenv("TBX_PROJECT_ROOT")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			rootErr = err
			return
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		rootErr = err
		return
	}
	// Resolve symlinks where possible so containment checks are reliable.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	absRoot = abs
}

// Root returns the cached absolute project root, initialising it once on
// first use from TBX_PROJECT_ROOT (falling back to the working directory).
func Root() (string, error) {
	rootOnce.Do(initRoot)
	return absRoot, rootErr
}

// Rel rewrites an absolute path inside the project tree to a slash-separated
// project-relative form prefixed with the project directory name, e.g.
// /home/x/go-toolbox/tools/read_file.go -> go-toolbox/tools/read_file.go.
// Relative inputs and paths outside the tree are returned unchanged.
func Rel(path string) string {
	root, err := Root()
	if err != nil || !filepath.IsAbs(path) {
		return path
	}
	p := path
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return path
	}
	return filepath.ToSlash(filepath.Join(filepath.Base(root), rel))
}

// Abs resolves a project-relative path (as produced by Rel) back to an
// absolute path under the project root. Absolute inputs are returned as-is.
func Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	p := filepath.FromSlash(path)
	base := filepath.Base(root)
	if p == base {
		return root, nil
	}
	if strings.HasPrefix(p, base+string(filepath.Separator)) {
		p = p[len(base)+1:]
	}
	return filepath.Join(root, p), nil
}

// Here returns the project-relative path of the calling source file.
// Best effort: the compile-time path only maps back to the tree when the
// process runs from a source checkout.
func Here() string {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return ""
	}
	return Rel(file)
}

// IsSourceFile reports whether name is a Go source file eligible for
// scanning.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go")
}
