package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 50, "short"},
		{strings.Repeat("a", 60), 50, strings.Repeat("a", 50)},
		{strings.Repeat("é", 60), 50, strings.Repeat("é", 50)},
		{"研究テーマの長い説明", 5, "研究テーマ"},
	}
	for _, test := range tests {
		got := clip(test.in, test.n)
		if got != test.want {
			t.Errorf("clip(%q, %d): got %q, want %q", test.in, test.n, got, test.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("clip(%q, %d): produced invalid UTF-8", test.in, test.n)
		}
	}
}
