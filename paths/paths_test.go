package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/timatron/tools/paths"
)

func TestUnique(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "report.md")

	if got := paths.Unique(base); got != base {
		t.Errorf("Unique(%q): got %q, want unchanged", base, got)
	}

	touch(t, base)
	want := filepath.Join(dir, "report-1.md")
	if got := paths.Unique(base); got != want {
		t.Errorf("Unique(%q): got %q, want %q", base, got, want)
	}

	touch(t, want)
	want = filepath.Join(dir, "report-2.md")
	if got := paths.Unique(base); got != want {
		t.Errorf("Unique(%q): got %q, want %q", base, got, want)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	if paths.FileExists(path) {
		t.Errorf("FileExists(%q): got true, want false", path)
	}
	touch(t, path)
	if !paths.FileExists(path) {
		t.Errorf("FileExists(%q): got false, want true", path)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
