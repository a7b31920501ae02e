package mdpage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/timatron/tools/mdpage"
)

type testHeader struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Count int    `yaml:"count"`
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	in := testHeader{Title: "Research: OpenAI", Date: "2026-01-15", Count: 3}
	const body = "## Findings\n\nSome text with **bold** and [a link](https://example.com)."

	if err := mdpage.Write(path, in, body); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var out testHeader
	got, err := mdpage.Load(path, &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
	if got != body {
		t.Errorf("Body: got %q, want %q", got, body)
	}
}

func TestWriteLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	if err := mdpage.Write(path, testHeader{Title: "t"}, "body"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		t.Errorf("File does not open with front matter delimiter:\n%s", text)
	}
	if strings.Count(text, "---\n") < 2 {
		t.Errorf("File lacks closing front matter delimiter:\n%s", text)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"no front matter at all",
		"---\nunclosed: yes\n",
		"leading text\n---\nx: 1\n---\nbody",
	}
	for _, input := range tests {
		if _, err := mdpage.Parse([]byte(input), nil); err == nil {
			t.Errorf("Parse(%q): got nil error, want invalid format", input)
		}
	}
}
