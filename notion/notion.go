// Package notion creates rows in a Notion database through the REST API.
//
// A row is a page whose parent is a data source; see
// https://developers.notion.com/reference/post-page and
// https://developers.notion.com/reference/parent-object.
package notion

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
	// DefaultBaseURL is the production Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// APIVersion is the Notion-Version header sent with every request.
	APIVersion = "2025-09-03"
)

// A Client issues requests to the Notion API.
type Client struct {
	token   string
	baseURL string
	version string
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

// NewClient constructs a Client using the given integration token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		version: APIVersion,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// An APIError is a decoded error payload from the API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notion api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion api error %d", e.Status)
}

// A Parent designates the data source a new page belongs to.
type Parent struct {
	Type         string `json:"type"`
	DataSourceID string `json:"data_source_id"`
}

// DataSourceParent returns a parent referencing the given data source id.
func DataSourceParent(id string) Parent {
	return Parent{Type: "data_source_id", DataSourceID: id}
}

// A Page is the body of a create-page call.
type Page struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
	Children   []Block                  `json:"children,omitempty"`
}

// A CreatedPage is the API's record of a newly created page. Raw
// preserves the exact response payload.
type CreatedPage struct {
	ID  string `json:"id"`
	URL string `json:"url"`

	Raw json.RawMessage `json:"-"`
}

// PublicURL returns a browsable notion.so URL for the page.
func (p *CreatedPage) PublicURL() string {
	if p.URL != "" {
		return p.URL
	}
	return "https://www.notion.so/" + strings.ReplaceAll(p.ID, "-", "")
}

// CreatePage creates a new page under its parent data source.
func (c *Client) CreatePage(ctx context.Context, page *Page) (*CreatedPage, error) {
	if c.token == "" {
		return nil, errors.New("notion: integration token is empty")
	}
	body, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.version)

	rsp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(rsp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		apiErr := &APIError{Status: rsp.StatusCode}
		json.Unmarshal(data, apiErr)
		return nil, apiErr
	}

	var created CreatedPage
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	created.Raw = data
	return &created, nil
}
