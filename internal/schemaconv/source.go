package schemaconv

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"

	"github.com/petasbytes/go-toolbox/internal/textstat"
)

// maxSourceRunes caps captured declaration text so downstream prompting
// payloads stay predictably small.
const maxSourceRunes = 12_000

// SourceOf returns the source text of the named top-level declaration in
// file. Long declarations are rune-clamped with a trailing marker comment.
func SourceOf(file, decl string) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
	if err != nil {
		return "", err
	}
	for _, d := range f.Decls {
		switch x := d.(type) {
		case *ast.FuncDecl:
			if x.Name.Name == decl {
				return printDecl(fset, x)
			}
		case *ast.GenDecl:
			for _, spec := range x.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == decl {
					return printDecl(fset, x)
				}
			}
		}
	}
	return "", fmt.Errorf("declaration %q not found in %s", decl, file)
}

func printDecl(fset *token.FileSet, d ast.Decl) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, d); err != nil {
		return "", err
	}
	src := buf.String()
	if clamped, did := textstat.ClampRunes(src, maxSourceRunes); did {
		return clamped + "\n// truncated\n", nil
	}
	return src, nil
}
