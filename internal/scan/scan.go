// Package scan discovers tools by parsing Go source files and registering
// the callables they declare.
package scan

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/petasbytes/go-toolbox/internal/projpath"
	"github.com/petasbytes/go-toolbox/internal/schemaconv"
	"github.com/petasbytes/go-toolbox/internal/telemetry"
	"github.com/petasbytes/go-toolbox/toolbox"
)

// DiscoverFile parses one Go source file and registers every exported
// top-level function and struct type it declares. Imported or re-exported
// symbols are never declarations in the file's AST, so only locally defined
// callables are picked up. Scanned declarations are registered without
// captured source text.
//
// Parse failures are returned to the caller. Per-declaration conversion
// failures drop that tool only; the rest of the file still registers.
//
// The returned mapping covers every tool the file defines, including names
// that were already registered (first registration wins).
func DiscoverFile(ctx context.Context, reg *toolbox.Registry, path string) (map[string]*toolbox.Tool, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	relPath := path
	if abs, aerr := filepath.Abs(path); aerr == nil {
		relPath = projpath.Rel(abs)
	}

	registered := make(map[string]*toolbox.Tool)
	for _, decl := range collect(fset, f) {
		if _, err := reg.Register(toolbox.Spec{
			Name:   decl.Name,
			Path:   relPath,
			Source: decl,
		}); err != nil {
			// Conversion failure drops the tool, not the scan; the registry
			// has already logged it.
			continue
		}
		if t, ok := reg.Get(decl.Name); ok {
			registered[decl.Name] = t
		}
	}

	scanID, _ := telemetry.ScanIDFromContext(ctx)
	telemetry.Emit("file_discovered", map[string]any{
		"scan_id": scanID,
		"path":    relPath,
		"tools":   len(registered),
	})
	return registered, nil
}

// DiscoverPath discovers tools at path. A single Go file delegates to
// DiscoverFile; a directory is walked recursively with non-Go files silently
// skipped. A file that fails to parse during a directory walk is skipped and
// reported, and the walk continues.
func DiscoverPath(ctx context.Context, reg *toolbox.Registry, path string) (map[string]*toolbox.Tool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !projpath.IsSourceFile(path) {
			return map[string]*toolbox.Tool{}, nil
		}
		return DiscoverFile(ctx, reg, path)
	}

	scanID, ok := telemetry.ScanIDFromContext(ctx)
	if !ok {
		scanID = fmt.Sprintf("scan-%d", time.Now().UnixNano())
		ctx = telemetry.WithScanID(ctx, scanID)
	}

	found := make(map[string]*toolbox.Tool)
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() || !projpath.IsSourceFile(p) {
			return nil
		}
		tools, ferr := DiscoverFile(ctx, reg, p)
		if ferr != nil {
			slog.Warn("skipping unparsable file", "scan_id", scanID, "path", p, "err", ferr)
			telemetry.Emit("scan_file_skipped", map[string]any{
				"scan_id": scanID,
				"path":    p,
				"error":   ferr.Error(),
			})
			return nil
		}
		for name, t := range tools {
			found[name] = t
		}
		return nil
	})
	if walkErr != nil {
		return found, walkErr
	}
	return found, nil
}

// Discoverer adapts DiscoverPath to the resolver's DiscoverFunc contract.
func Discoverer(reg *toolbox.Registry) toolbox.DiscoverFunc {
	return func(ctx context.Context, path string) (map[string]*toolbox.Tool, error) {
		return DiscoverPath(ctx, reg, path)
	}
}

// collect gathers the exported top-level declarations of a parsed file:
// functions without receivers, and struct types together with their
// same-file exported methods.
func collect(fset *token.FileSet, f *ast.File) []*schemaconv.Decl {
	methods := make(map[string][]*ast.FuncDecl)
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 || !ast.IsExported(fn.Name.Name) {
			continue
		}
		if recv, ok := receiverName(fn.Recv.List[0].Type); ok {
			methods[recv] = append(methods[recv], fn)
		}
	}

	var out []*schemaconv.Decl
	for _, d := range f.Decls {
		switch x := d.(type) {
		case *ast.FuncDecl:
			if x.Recv != nil || !ast.IsExported(x.Name.Name) {
				continue
			}
			out = append(out, &schemaconv.Decl{
				Fset: fset,
				Name: x.Name.Name,
				Doc:  docText(x.Doc),
				Func: x,
			})
		case *ast.GenDecl:
			if x.Tok != token.TYPE {
				continue
			}
			for _, spec := range x.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || !ast.IsExported(ts.Name.Name) {
					continue
				}
				if _, ok := ts.Type.(*ast.StructType); !ok {
					continue
				}
				doc := docText(ts.Doc)
				if doc == "" {
					doc = docText(x.Doc)
				}
				out = append(out, &schemaconv.Decl{
					Fset:    fset,
					Name:    ts.Name.Name,
					Doc:     doc,
					Type:    ts,
					Methods: methods[ts.Name.Name],
				})
			}
		}
	}
	return out
}

func receiverName(e ast.Expr) (string, bool) {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name, true
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name, true
		}
	}
	return "", false
}

func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
