package openai_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/timatron/tools/openai"
)

func TestReportFilename(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		topic, want string
	}{
		{"Quantum Computing", "quantum-computing-research-2026-01-15.md"},
		{"What's new in Go 1.22?", "whats-new-in-go-122-research-2026-01-15.md"},
		{"  spaced   out  ", "spaced-out-research-2026-01-15.md"},
		{"Café history", "café-history-research-2026-01-15.md"},
		{"日本語のトピック", "日本語のトピック-research-2026-01-15.md"},
		{"?!...", "untitled-research-2026-01-15.md"},
		{strings.Repeat("verylongtopic", 10),
			strings.Repeat("verylongtopic", 10)[:50] + "-research-2026-01-15.md"},
	}
	for _, test := range tests {
		if got := openai.ReportFilename(test.topic, now); got != test.want {
			t.Errorf("ReportFilename(%q): got %q, want %q", test.topic, got, test.want)
		}
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	hdr := openai.ReportHeader{
		Title:      "Research: testing",
		Date:       "2026-01-15",
		Model:      "o3-deep-research",
		Template:   "deep_dive",
		ResponseID: "resp_xyz",
	}
	sources := []openai.Annotation{
		{Title: "First", URL: "https://example.com/1"},
		{URL: "https://example.com/2"},
		{Title: "Dup", URL: "https://example.com/1"},
	}
	if err := openai.WriteReport(path, hdr, "Body text.", sources); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading report: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"response_id: resp_xyz",
		"Body text.",
		"## Sources",
		"1. [First](https://example.com/1)",
		"2. [Untitled](https://example.com/2)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "3. ") {
		t.Errorf("Report kept a duplicate source:\n%s", text)
	}
}

func TestTrackingRoundTrip(t *testing.T) {
	dir := t.TempDir()
	done := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	in := &openai.Tracking{
		ResponseID:      "resp_track1",
		Template:        "market_research",
		Topic:           "widgets",
		Model:           "o3-deep-research",
		SubmittedAt:     time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		CompletedAt:     &done,
		DurationMinutes: 30,
		InputTokens:     1000,
		OutputTokens:    2000,
		TotalTokens:     3000,
		CostUSD:         0.09,
		SourcesCount:    12,
	}
	if err := in.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := openai.LoadTracking(dir, "resp_track1")
	if err != nil {
		t.Fatalf("LoadTracking failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("Tracking round trip (-want, +got):\n%s", diff)
	}
}

func TestCost(t *testing.T) {
	tests := []struct {
		model    string
		in, out  int
		want     float64
	}{
		{"o3-deep-research", 1_000_000, 1_000_000, 50},
		{"o4-mini-deep-research", 1_000_000, 0, 2},
		{"unknown-model", 1_000_000, 1_000_000, 50}, // priced as the default
	}
	for _, test := range tests {
		if got := openai.Cost(test.model, test.in, test.out); got != test.want {
			t.Errorf("Cost(%q, %d, %d): got %v, want %v", test.model, test.in, test.out, got, test.want)
		}
	}
}
