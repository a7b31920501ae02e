// Package openai is a minimal client for the slice of the OpenAI API the
// research tool uses: creating background deep-research responses and
// polling them by id.
package openai

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

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	defaultUA = "timatron-tools/0.1 (+github.com/timatron/tools)"
)

// ErrUnauthorized indicates a 401 response.
var ErrUnauthorized = errors.New("openai: unauthorized (check API key)")

// A Client issues requests to the responses API.
type Client struct {
	apiKey  string
	baseURL string
	ua      string
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

// WithTimeout sets the request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient constructs a Client with a 60 second default timeout.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		ua:      defaultUA,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// An APIError is a decoded error payload from the API.
type APIError struct {
	Status  int    `json:"-"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openai api error: %s (status=%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("openai api error (status=%d)", e.Status)
}

// CreateResponse submits a new response request.
func (c *Client) CreateResponse(ctx context.Context, req *Request) (*Response, error) {
	var rsp Response
	if err := c.do(ctx, http.MethodPost, "/responses", req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// GetResponse retrieves an existing response by id.
func (c *Client) GetResponse(ctx context.Context, id string) (*Response, error) {
	var rsp Response
	if err := c.do(ctx, http.MethodGet, "/responses/"+id, nil, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.apiKey == "" {
		return errors.New("openai: API key is empty")
	}
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.ua)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rsp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		if rsp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		data, _ := io.ReadAll(io.LimitReader(rsp.Body, 1<<20))
		var wrap struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(data, &wrap) == nil && wrap.Error != nil {
			wrap.Error.Status = rsp.StatusCode
			return wrap.Error
		}
		return &APIError{Status: rsp.StatusCode}
	}
	return json.NewDecoder(rsp.Body).Decode(out)
}
