// Package gemini is a minimal client for the Gemini generateContent API,
// covering video analysis with a text prompt, plus a parser for the
// structured analysis format the ytnotes prompt asks the model for.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// A Client issues generateContent requests.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// An Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient constructs a Client. Video analysis is slow, so the default
// timeout is generous.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Minute},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// An APIError is a decoded error payload from the API.
type APIError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	State   string `json:"status,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini api error: %s (code=%d)", e.Message, e.Code)
	}
	return fmt.Sprintf("gemini api error (code=%d)", e.Code)
}

// A GenerateRequest is the body of a generateContent call.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// A Content is one turn of model input.
type Content struct {
	Parts []Part `json:"parts"`
}

// A Part is one piece of content: text or a file reference.
type Part struct {
	Text     string    `json:"text,omitempty"`
	FileData *FileData `json:"file_data,omitempty"`
}

// FileData references an external file by URI. YouTube watch URLs are
// accepted directly for video understanding.
type FileData struct {
	FileURI  string `json:"file_uri"`
	MimeType string `json:"mime_type,omitempty"`
}

// A GenerateResponse is the model's reply.
type GenerateResponse struct {
	Candidates    []Candidate    `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata,omitempty"`
}

// A Candidate is one generated completion.
type Candidate struct {
	Content *Content `json:"content,omitempty"`
}

// UsageMetadata reports token consumption.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// Text returns the concatenated text parts of the first candidate.
func (r *GenerateResponse) Text() string {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var buf strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		buf.WriteString(p.Text)
	}
	return buf.String()
}

// GenerateContent calls the named model with req.
func (c *Client) GenerateContent(ctx context.Context, model string, req *GenerateRequest) (*GenerateResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("gemini: API key is empty")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	rsp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(rsp.Body, 1<<20))
		var wrap struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(data, &wrap) == nil && wrap.Error != nil {
			return nil, wrap.Error
		}
		return nil, &APIError{Code: rsp.StatusCode}
	}

	var out GenerateResponse
	if err := json.NewDecoder(rsp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

// AnalyzeVideo asks model to apply prompt to the video at videoURL.
func (c *Client) AnalyzeVideo(ctx context.Context, model, videoURL, prompt string) (*GenerateResponse, error) {
	return c.GenerateContent(ctx, model, &GenerateRequest{
		Contents: []Content{{Parts: []Part{
			{FileData: &FileData{FileURI: videoURL}},
			{Text: prompt},
		}}},
	})
}
