// Package fsops implements sandboxed filesystem operations for the builtin
// tools. Roots come from TBX_READ_ROOT/TBX_WRITE_ROOT, read once.
package fsops

import (
	"io"
	"os"

	"github.com/petasbytes/go-toolbox/internal/safety"
)

// ReadFile reads a regular file addressed by a relative path under the
// sandbox read root. Policy violations surface as ToolError; directories,
// sockets, and other non-regular targets are ERR_NOT_A_FILE.
func ReadFile(relPath string) (string, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return "", err
	}

	absPath, err := safety.ValidateRelPath(readRoot, relPath)
	if err != nil {
		return "", err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", safety.ToolError{Code: "ERR_NOT_A_FILE", Message: "path is not a regular file"}
	}

	b, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
