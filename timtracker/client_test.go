package timtracker_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/timatron/tools/timtracker"
)

const weekJSON = `{
  "startDateStr": "2024-03-04",
  "endDateStr": "2024-03-10",
  "days": [
    {"date": "2024-03-04", "sleepHours": 7.5, "exercise": 45,
     "workouts": [{"type": "run", "minutes": 45}]},
    {"date": "2024-03-05", "sleepHours": 6, "dietScore": 8}
  ]
}`

func TestWeeklySummary(t *testing.T) {
	var gotAuth, gotOffset string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOffset = r.URL.Query().Get("offset")
		if r.URL.Path != "/api/weekly-summary" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(weekJSON))
	}))
	defer srv.Close()

	cli := timtracker.NewClient(&timtracker.Config{APIURL: srv.URL, APIKey: "tt-test-key"})
	sum, err := cli.WeeklySummary(context.Background(), 2)
	if err != nil {
		t.Fatalf("WeeklySummary failed: %v", err)
	}
	if gotAuth != "Bearer tt-test-key" {
		t.Errorf("Authorization: got %q, want bearer key", gotAuth)
	}
	if gotOffset != "2" {
		t.Errorf("offset: got %q, want 2", gotOffset)
	}
	if sum.StartDate != "2024-03-04" || sum.EndDate != "2024-03-10" {
		t.Errorf("Dates: got %q to %q", sum.StartDate, sum.EndDate)
	}
	if len(sum.Days) != 2 {
		t.Fatalf("Days: got %d, want 2", len(sum.Days))
	}
	if d := sum.Days[0]; d.SleepHours == nil || *d.SleepHours != 7.5 {
		t.Errorf("Day 0 sleepHours: got %v, want 7.5", d.SleepHours)
	}
	if d := sum.Days[1]; d.Exercise != nil {
		t.Errorf("Day 1 exercise: got %v, want nil", *d.Exercise)
	}
	if len(sum.Raw) == 0 {
		t.Error("Raw payload not preserved")
	}
}

func TestWeeklySummaryUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cli := timtracker.NewClient(&timtracker.Config{APIURL: srv.URL, APIKey: "bogus"})
	if _, err := cli.WeeklySummary(context.Background(), 0); !errors.Is(err, timtracker.ErrUnauthorized) {
		t.Errorf("WeeklySummary: got error %v, want ErrUnauthorized", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if _, err := timtracker.LoadConfig(path); err == nil {
		t.Error("LoadConfig on missing file should fail")
	}

	write := func(text string) {
		if err := os.WriteFile(path, []byte(text), 0600); err != nil {
			t.Fatalf("Writing config: %v", err)
		}
	}

	write(`{"api_key": "your-gpt-api-key-here"}`)
	if _, err := timtracker.LoadConfig(path); err == nil {
		t.Error("LoadConfig with placeholder key should fail")
	}

	write(`{"api_key": "tt-real"}`)
	cfg, err := timtracker.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.APIURL != timtracker.DefaultBaseURL {
		t.Errorf("APIURL: got %q, want default", cfg.APIURL)
	}
	if cfg.APIKey != "tt-real" {
		t.Errorf("APIKey: got %q, want tt-real", cfg.APIKey)
	}
}
