package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timatron/tools/openai"
)

func TestCreateResponse(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq openai.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(&openai.Response{
			ID:     "resp_abc123",
			Status: openai.StatusQueued,
			Model:  "o3-deep-research",
		})
	}))
	defer srv.Close()

	cli := openai.NewClient("sk-test", openai.WithBaseURL(srv.URL))
	rsp, err := cli.CreateResponse(context.Background(), &openai.Request{
		Model:      "o3-deep-research",
		Input:      "research prompt",
		Background: true,
		Tools:      []openai.Tool{{Type: openai.ToolWebSearch}},
	})
	if err != nil {
		t.Fatalf("CreateResponse failed: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotPath != "/responses" {
		t.Errorf("Path: got %q, want /responses", gotPath)
	}
	if !gotReq.Background {
		t.Error("Request did not ask for background processing")
	}
	if len(gotReq.Tools) != 1 || gotReq.Tools[0].Type != openai.ToolWebSearch {
		t.Errorf("Tools: got %+v", gotReq.Tools)
	}
	if rsp.ID != "resp_abc123" || rsp.Status != openai.StatusQueued {
		t.Errorf("Response: got id=%q status=%q", rsp.ID, rsp.Status)
	}
}

func TestGetResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses/resp_abc123" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
  "id": "resp_abc123",
  "status": "completed",
  "output": [
    {"type": "reasoning"},
    {"type": "message", "content": [
      {"type": "output_text", "text": "Findings here.",
       "annotations": [
         {"type": "url_citation", "title": "Example", "url": "https://example.com/a"},
         {"type": "url_citation", "title": "Example again", "url": "https://example.com/a"},
         {"type": "url_citation", "url": "https://example.com/b"}
       ]}
    ]}
  ],
  "usage": {"input_tokens": 100, "output_tokens": 250, "total_tokens": 350}
}`))
	}))
	defer srv.Close()

	cli := openai.NewClient("sk-test", openai.WithBaseURL(srv.URL))
	rsp, err := cli.GetResponse(context.Background(), "resp_abc123")
	if err != nil {
		t.Fatalf("GetResponse failed: %v", err)
	}
	text, anns := rsp.OutputText()
	if text != "Findings here." {
		t.Errorf("OutputText: got %q", text)
	}
	if len(anns) != 3 {
		t.Errorf("Annotations: got %d, want 3", len(anns))
	}
	if uniq := openai.DedupSources(anns); len(uniq) != 2 {
		t.Errorf("DedupSources: got %d, want 2", len(uniq))
	}
	if rsp.Usage == nil || rsp.Usage.TotalTokens != 350 {
		t.Errorf("Usage: got %+v", rsp.Usage)
	}
}

func TestOutputTextLastMessage(t *testing.T) {
	rsp := &openai.Response{
		ID:     "resp_multi",
		Status: openai.StatusCompleted,
		Output: []openai.OutputItem{
			{Type: "reasoning"},
			{Type: "message", Content: []openai.ContentPart{
				{Type: "output_text", Text: "Draft findings.",
					Annotations: []openai.Annotation{{URL: "https://example.com/draft"}}},
			}},
			{Type: "message", Content: []openai.ContentPart{
				{Type: "output_text", Text: "Final findings.",
					Annotations: []openai.Annotation{{URL: "https://example.com/final"}}},
			}},
		},
	}
	text, anns := rsp.OutputText()
	if text != "Final findings." {
		t.Errorf("OutputText: got %q, want the last message's text", text)
	}
	if len(anns) != 1 || anns[0].URL != "https://example.com/final" {
		t.Errorf("Annotations: got %+v, want the last message's annotations", anns)
	}
}

func TestAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/responses/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No response found"}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	cli := openai.NewClient("sk-test", openai.WithBaseURL(srv.URL))

	_, err := cli.GetResponse(context.Background(), "missing")
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetResponse: got error %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "No response found" {
		t.Errorf("APIError: got %+v", apiErr)
	}

	if _, err := cli.GetResponse(context.Background(), "other"); !errors.Is(err, openai.ErrUnauthorized) {
		t.Errorf("GetResponse: got error %v, want ErrUnauthorized", err)
	}

	empty := openai.NewClient("", openai.WithBaseURL(srv.URL))
	if _, err := empty.GetResponse(context.Background(), "x"); err == nil {
		t.Error("GetResponse with empty key should fail")
	}
}
