// Package schemaconv converts tool source definitions into schema documents.
//
// Two source shapes are understood:
//   - Typed: a statically declared tool (description + input struct); the
//     input struct is reflected into parameters via invopop/jsonschema.
//   - Decl: a declaration harvested from a parsed Go source file; the
//     signature and parameters are derived from the AST.
package schemaconv

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/petasbytes/go-toolbox/toolbox"
)

// Typed is a statically declared tool definition: a description plus an
// input struct whose fields become the tool's parameters. Field metadata
// comes from the json and jsonschema_description struct tags.
type Typed struct {
	Kind        string // "function" (default) or "class"
	Description string
	Input       any // struct value; nil means the tool takes no input
}

// Decl is a top-level declaration harvested from a parsed source file.
// Exactly one of Func and Type is set.
type Decl struct {
	Fset    *token.FileSet
	Name    string
	Doc     string
	Func    *ast.FuncDecl
	Type    *ast.TypeSpec
	Methods []*ast.FuncDecl // same-file methods of Type
}

// Convert turns a source object into a schema document. include filters
// which members of a container (a type with methods) are kept; it is ignored
// for single callables.
func Convert(src any, include []string) (toolbox.Schema, error) {
	switch s := src.(type) {
	case Typed:
		return convertTyped(s)
	case *Typed:
		return convertTyped(*s)
	case *Decl:
		return convertDecl(s, include)
	case nil:
		return nil, fmt.Errorf("no source object")
	default:
		return nil, fmt.Errorf("unsupported source object %T", src)
	}
}

func convertTyped(t Typed) (toolbox.Schema, error) {
	kind := t.Kind
	if kind == "" {
		kind = "function"
	}
	doc := toolbox.NewSchema()
	doc.Set("type", kind)
	doc.Set("description", t.Description)
	if t.Input != nil {
		params, err := reflectParameters(t.Input)
		if err != nil {
			return nil, err
		}
		doc.Set("parameters", params)
	}
	return doc, nil
}

// reflectParameters derives a parameters object from a Go input struct.
func reflectParameters(v any) (toolbox.Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := reflector.Reflect(v)
	if s == nil {
		return nil, fmt.Errorf("reflect %T: nil schema", v)
	}
	params := toolbox.NewSchema()
	params.Set("type", "object")
	props := toolbox.NewSchema()
	if s.Properties != nil {
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			prop := toolbox.NewSchema()
			if p.Value.Type != "" {
				prop.Set("type", p.Value.Type)
			}
			if p.Value.Description != "" {
				prop.Set("description", p.Value.Description)
			}
			props.Set(p.Key, prop)
		}
	}
	params.Set("properties", props)
	if len(s.Required) > 0 {
		params.Set("required", append([]string(nil), s.Required...))
	}
	return params, nil
}

func convertDecl(d *Decl, include []string) (toolbox.Schema, error) {
	switch {
	case d.Func != nil:
		return funcSchema(d.Fset, d.Func, d.Doc)
	case d.Type != nil:
		return typeSchema(d, include)
	default:
		return nil, fmt.Errorf("declaration %q has neither function nor type", d.Name)
	}
}

func typeSchema(d *Decl, include []string) (toolbox.Schema, error) {
	doc := toolbox.NewSchema()
	doc.Set("type", "class")
	doc.Set("description", d.Doc)

	keep := make(map[string]bool, len(include))
	for _, name := range include {
		keep[name] = true
	}
	methods := toolbox.NewSchema()
	for _, m := range d.Methods {
		if len(include) > 0 && !keep[m.Name.Name] {
			continue
		}
		ms, err := funcSchema(d.Fset, m, docText(m.Doc))
		if err != nil {
			return nil, err
		}
		methods.Set(m.Name.Name, ms)
	}
	doc.Set("methods", methods)
	return doc, nil
}

func funcSchema(fset *token.FileSet, fn *ast.FuncDecl, doc string) (toolbox.Schema, error) {
	s := toolbox.NewSchema()
	s.Set("type", "function")
	s.Set("description", doc)
	sig, err := printSignature(fset, fn)
	if err != nil {
		return nil, err
	}
	s.Set("signature", sig)
	s.Set("parameters", parameterSchema(fset, fn))
	return s, nil
}

// printSignature renders a declaration's type, e.g.
// "(path string, limit int) (string, error)".
func printSignature(fset *token.FileSet, fn *ast.FuncDecl) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, fn.Type); err != nil {
		return "", fmt.Errorf("print signature of %s: %w", fn.Name.Name, err)
	}
	return strings.TrimPrefix(buf.String(), "func"), nil
}

func parameterSchema(fset *token.FileSet, fn *ast.FuncDecl) toolbox.Schema {
	params := toolbox.NewSchema()
	params.Set("type", "object")
	props := toolbox.NewSchema()
	var required []string
	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			jt := jsonType(field.Type)
			gt := exprString(fset, field.Type)
			for _, name := range field.Names {
				prop := toolbox.NewSchema()
				prop.Set("type", jt)
				if gt != "" {
					prop.Set("go_type", gt)
				}
				props.Set(name.Name, prop)
				required = append(required, name.Name)
			}
		}
	}
	params.Set("properties", props)
	if len(required) > 0 {
		params.Set("required", required)
	}
	return params
}

// jsonType maps a Go parameter type expression to a JSON-schema type name.
func jsonType(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			return "string"
		case "bool":
			return "boolean"
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64", "byte", "rune":
			return "integer"
		case "float32", "float64":
			return "number"
		default:
			return "object"
		}
	case *ast.StarExpr:
		return jsonType(t.X)
	case *ast.ArrayType:
		return "array"
	case *ast.Ellipsis:
		return "array"
	default:
		return "object"
	}
}

func exprString(fset *token.FileSet, e ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, e); err != nil {
		return ""
	}
	return buf.String()
}

func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
