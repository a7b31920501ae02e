package notion

import (
	"encoding/json"
	"errors"
	"fmt"
)

// A Payload is the loose JSON document accepted on input by the
// notionpage tool.
type Payload struct {
	Parent struct {
		DataSourceID string `json:"data_source_id"`
	} `json:"parent"`
	Properties      map[string]interface{} `json:"properties"`
	ContentMarkdown string                 `json:"content_markdown"`
}

// ParsePayload decodes and validates a payload document.
func ParsePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	if len(p.Properties) == 0 || p.Properties["Title"] == nil {
		return nil, errors.New("payload must include properties.Title")
	}
	return &p, nil
}

// Page converts the payload into a create-page body. The payload's
// parent wins over dataSourceID when both are set.
func (p *Payload) Page(dataSourceID string) *Page {
	if p.Parent.DataSourceID != "" {
		dataSourceID = p.Parent.DataSourceID
	}
	page := &Page{
		Parent:     DataSourceParent(dataSourceID),
		Properties: Properties(p.Properties),
	}
	if p.ContentMarkdown != "" {
		page.Children = MarkdownBlocks(p.ContentMarkdown)
	}
	return page
}
