package tools

import (
	"github.com/petasbytes/go-toolbox/internal/projpath"
	"github.com/petasbytes/go-toolbox/internal/schemaconv"
	"github.com/petasbytes/go-toolbox/toolbox"
)

// Manifest returns the builtin tool specs, in registration order, for the
// startup call to toolbox.RegisterAll.
//
// Handler source text is captured best-effort: it resolves only when the
// process runs from a source checkout, and specs are registered with empty
// code otherwise.
func Manifest() []toolbox.Spec {
	entries := []struct {
		spec toolbox.Spec
		decl string
	}{
		{ReadFileSpec, "ReadFile"},
		{ListFilesSpec, "ListFiles"},
		{EditFileSpec, "EditFile"},
	}
	specs := make([]toolbox.Spec, 0, len(entries))
	for _, e := range entries {
		s := e.spec
		if s.Code == "" {
			s.Code = captureSource(s.Path, e.decl)
		}
		specs = append(specs, s)
	}
	return specs
}

func captureSource(specPath, decl string) string {
	abs, err := projpath.Abs(specPath)
	if err != nil {
		return ""
	}
	src, err := schemaconv.SourceOf(abs, decl)
	if err != nil {
		return ""
	}
	return src
}
