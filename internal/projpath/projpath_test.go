package projpath_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/go-toolbox/internal/projpath"
)

var testRoot string

// The root is resolved once per process, so pin it before any test touches
// the package.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "projpath-*")
	if err != nil {
		os.Exit(1)
	}
	if r, err := filepath.EvalSymlinks(dir); err == nil {
		dir = r
	}
	testRoot = dir
	os.Setenv("TBX_PROJECT_ROOT", testRoot)
	code := m.Run()
	os.RemoveAll(testRoot)
	os.Exit(code)
}

func TestRoot(t *testing.T) {
	got, err := projpath.Root()
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if got != testRoot {
		t.Fatalf("root %q, want %q", got, testRoot)
	}
}

func TestRel_InsideRoot(t *testing.T) {
	base := filepath.Base(testRoot)
	in := filepath.Join(testRoot, "tools", "read_file.go")
	want := base + "/tools/read_file.go"
	if got := projpath.Rel(in); got != want {
		t.Fatalf("Rel(%q) = %q, want %q", in, got, want)
	}
}

func TestRel_RootItself(t *testing.T) {
	if got := projpath.Rel(testRoot); got != filepath.Base(testRoot) {
		t.Fatalf("Rel(root) = %q", got)
	}
}

func TestRel_OutsideRootUnchanged(t *testing.T) {
	in := filepath.Join(filepath.Dir(testRoot), "elsewhere", "x.go")
	if got := projpath.Rel(in); got != in {
		t.Fatalf("Rel(%q) = %q, want unchanged", in, got)
	}
}

func TestRel_RelativeInputUnchanged(t *testing.T) {
	if got := projpath.Rel("tools/x.go"); got != "tools/x.go" {
		t.Fatalf("Rel relative = %q", got)
	}
}

func TestAbs_RoundTrip(t *testing.T) {
	orig := filepath.Join(testRoot, "internal", "scan", "scan.go")
	rel := projpath.Rel(orig)

	back, err := projpath.Abs(rel)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if back != orig {
		t.Fatalf("round trip %q -> %q -> %q", orig, rel, back)
	}
}

func TestAbs_AbsoluteInputUnchanged(t *testing.T) {
	in := filepath.Join(testRoot, "x.go")
	got, err := projpath.Abs(in)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if got != in {
		t.Fatalf("Abs(%q) = %q", in, got)
	}
}

func TestHere(t *testing.T) {
	got := projpath.Here()
	if filepath.Base(got) != "projpath_test.go" {
		t.Fatalf("Here() = %q", got)
	}
}

func TestIsSourceFile(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a.go", true},
		{"dir/b.go", true},
		{"notes.txt", false},
		{"go", false},
	}
	for _, tc := range cases {
		if got := projpath.IsSourceFile(tc.in); got != tc.want {
			t.Fatalf("IsSourceFile(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
