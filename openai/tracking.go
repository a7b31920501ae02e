package openai

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/creachadair/atomicfile"
)

// A Tracking file records what was submitted under a response id, so
// later status and download calls can report elapsed time and usage.
type Tracking struct {
	ResponseID  string    `json:"response_id"`
	Template    string    `json:"template"`
	Topic       string    `json:"topic"`
	Model       string    `json:"model"`
	SubmittedAt time.Time `json:"submitted_at"`
	OutputDir   string    `json:"output_dir,omitempty"`

	// Filled in after download.
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationMinutes float64    `json:"duration_minutes,omitempty"`
	InputTokens     int        `json:"input_tokens,omitempty"`
	OutputTokens    int        `json:"output_tokens,omitempty"`
	TotalTokens     int        `json:"total_tokens,omitempty"`
	CostUSD         float64    `json:"cost_usd,omitempty"`
	SourcesCount    int        `json:"sources_count,omitempty"`
}

// TrackingPath returns the sidecar path for a response id under dir.
func TrackingPath(dir, responseID string) string {
	return filepath.Join(dir, responseID+".json")
}

// LoadTracking reads the tracking sidecar for responseID from dir.
func LoadTracking(dir, responseID string) (*Tracking, error) {
	data, err := os.ReadFile(TrackingPath(dir, responseID))
	if err != nil {
		return nil, err
	}
	var t Tracking
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save writes the tracking sidecar under dir, creating the directory as
// needed. The whole document is rewritten atomically.
func (t *Tracking) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := atomicfile.New(TrackingPath(dir, t.ResponseID), 0644)
	if err != nil {
		return err
	}
	defer f.Cancel()
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	f.Write(data)
	f.Write([]byte("\n"))
	return f.Close()
}
