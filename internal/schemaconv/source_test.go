package schemaconv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/go-toolbox/internal/schemaconv"
)

func writeSample(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestSourceOf_Function(t *testing.T) {
	path := writeSample(t, `package sample

func Greet(name string) string { return "hi " + name }
`)
	got, err := schemaconv.SourceOf(path, "Greet")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if !strings.HasPrefix(got, "func Greet(") {
		t.Fatalf("unexpected source: %q", got)
	}
	if !strings.Contains(got, `"hi " + name`) {
		t.Fatalf("body missing: %q", got)
	}
}

func TestSourceOf_Type(t *testing.T) {
	path := writeSample(t, `package sample

type Widget struct {
	ID int
}
`)
	got, err := schemaconv.SourceOf(path, "Widget")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if !strings.Contains(got, "type Widget struct") {
		t.Fatalf("unexpected source: %q", got)
	}
}

func TestSourceOf_Missing(t *testing.T) {
	path := writeSample(t, "package sample\n")
	if _, err := schemaconv.SourceOf(path, "Nope"); err == nil {
		t.Fatal("expected error for missing declaration")
	}
}

func TestSourceOf_LongDeclClamped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("package sample\n\nfunc Big() string {\n\treturn \"")
	sb.WriteString(strings.Repeat("x", 20_000))
	sb.WriteString("\"\n}\n")
	path := writeSample(t, sb.String())

	got, err := schemaconv.SourceOf(path, "Big")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if !strings.HasSuffix(got, "// truncated\n") {
		t.Fatalf("expected truncation marker, got tail %q", got[len(got)-40:])
	}
}
