package fsops

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/petasbytes/go-toolbox/internal/safety"
)

// ListFiles lists non-recursive directory entries for a relative directory
// path under the sandbox. The result is a JSON-encoded []string of names in
// lexical order, with directories suffixed by "/"; callers can page over it
// without re-sorting.
func ListFiles(relDir string) (string, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return "", err
	}

	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidateRelPath(readRoot, relDir)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	// ReadDir order is filesystem-dependent; fix it here so every consumer
	// sees the same sequence.
	sort.Strings(names)

	b, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
