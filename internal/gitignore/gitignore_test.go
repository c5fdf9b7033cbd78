package gitignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	m := Parse("# comment\n\nnode_modules\n  \ndist/\n")
	if got := len(m.patterns); got != 2 {
		t.Fatalf("expected 2 patterns, got %d", got)
	}
}

func TestMatcher_Ignored(t *testing.T) {
	m := Parse("node_modules\ndist/\n/build\n*.log\ndocs/**/drafts\ntmp-*\n")

	tests := []struct {
		name string
		rel  string
		want bool
	}{
		{"exact match", "node_modules", true},
		{"directory prefix", "dist/assets/main.css", true},
		{"leading slash trimmed", "build", true},
		{"segment match at depth", "packages/app/node_modules", true},
		{"segment match nested children", "a/node_modules/b.md", true},
		{"single star stays in segment", "server.log", true},
		{"single star never crosses a slash", "logs/server.log", false},
		{"double star spans segments", "docs/a/b/drafts", true},
		{"double star subtree", "docs/a/drafts/old.md", true},
		{"prefix wildcard", "tmp-cache", true},
		{"not ignored", "docs/guide/intro.md", false},
		{"similar name not ignored", "distribution", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Ignored(tt.rel); got != tt.want {
				t.Errorf("Ignored(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatcher_Deterministic(t *testing.T) {
	// Equivalent exact/prefix/segment patterns must agree regardless of
	// declaration order.
	a := Parse("dist\n*.log\n")
	b := Parse("*.log\ndist\n")
	for _, rel := range []string{"dist", "dist/x.css", "x.log", "keep/dist", "keep.md"} {
		if a.Ignored(rel) != b.Ignored(rel) {
			t.Errorf("order-dependent result for %q", rel)
		}
	}
}

func TestMatcher_NegationIsNoOp(t *testing.T) {
	m := Parse("dist\n!dist/keep.md\n")
	if !m.Ignored("dist/keep.md") {
		t.Error("negated pattern re-included a path; negation must stay a no-op")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() on dir without .gitignore: %v", err)
	}
	if m.Ignored("anything.md") {
		t.Error("empty matcher ignored a path")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("vendor\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !m.Ignored("vendor/module.go") {
		t.Error("pattern from file not applied")
	}
}
