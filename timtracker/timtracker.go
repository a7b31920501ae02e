// Package timtracker talks to the TimTracker personal health API and
// distills weekly summaries into briefing assessments.
package timtracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultBaseURL is the base URL of the hosted TimTracker API.
const DefaultBaseURL = "https://timtracker-api.vercel.app"

// ErrUnauthorized indicates a 401 response from the API.
var ErrUnauthorized = errors.New("timtracker: authentication failed (check your API key)")

// A Config holds the API location and credentials, read from the local
// config file.
type Config struct {
	APIURL string `json:"api_url"`
	APIKey string `json:"api_key"`
}

// LoadConfig reads the TimTracker config at path. Missing or unconfigured
// files produce an error whose text includes setup instructions.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(`config file not found at %[1]s
Create it with:
  mkdir -p %[2]s
  cat > %[1]s << 'EOF'
  {
    "api_url": %[3]q,
    "api_key": "your-gpt-api-key-here"
  }
  EOF`, path, configParent(path), DefaultBaseURL)
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if cfg.APIKey == "" || cfg.APIKey == "your-gpt-api-key-here" {
		return nil, fmt.Errorf("API key not configured in %s; update the api_key field", path)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultBaseURL
	}
	return &cfg, nil
}

func configParent(path string) string {
	if i := len(path) - len("/config.json"); i > 0 {
		return path[:i]
	}
	return path
}

// A Client issues requests to the TimTracker API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a client from cfg.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL: cfg.APIURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// A WeekSummary is one week of tracked health data. Raw preserves the
// exact JSON payload returned by the API.
type WeekSummary struct {
	StartDate string `json:"startDateStr"`
	EndDate   string `json:"endDateStr"`
	Days      []Day  `json:"days"`

	Raw json.RawMessage `json:"-"`
}

// A Day records the values tracked for a single day. Pointer fields
// distinguish "not recorded" from zero.
type Day struct {
	Date           string    `json:"date,omitempty"`
	SleepHours     *float64  `json:"sleepHours"`
	Exercise       *float64  `json:"exercise"`
	DietScore      *float64  `json:"dietScore"`
	MindfulMinutes *float64  `json:"mindfulMinutes"`
	Workouts       []Workout `json:"workouts,omitempty"`
}

// A Workout is a single logged exercise session.
type Workout struct {
	Type    string  `json:"type"`
	Minutes float64 `json:"minutes,omitempty"`
}

// WeeklySummary fetches the summary for the week offset weeks back from
// the current one.
func (c *Client) WeeklySummary(ctx context.Context, offset int) (*WeekSummary, error) {
	url := fmt.Sprintf("%s/api/weekly-summary?offset=%d", c.baseURL, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	rsp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not connect to API: %w", err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", rsp.StatusCode)
	}

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}
	var sum WeekSummary
	if err := json.Unmarshal(data, &sum); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	sum.Raw = data
	return &sum, nil
}
