package openai

// Response statuses reported by the API.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// ToolWebSearch enables web search during background research.
const ToolWebSearch = "web_search_preview"

// A Request is the body of a create-response call.
type Request struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Background bool   `json:"background,omitempty"`
	Tools      []Tool `json:"tools,omitempty"`
}

// A Tool names a tool the model may use.
type Tool struct {
	Type string `json:"type"`
}

// A Response is the API's record of a submitted request.
type Response struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Model  string       `json:"model,omitempty"`
	Output []OutputItem `json:"output,omitempty"`
	Usage  *Usage       `json:"usage,omitempty"`
	Error  *Failure     `json:"error,omitempty"`
}

// An OutputItem is one entry of the response output array.
type OutputItem struct {
	Type    string        `json:"type"`
	Content []ContentPart `json:"content,omitempty"`
}

// A ContentPart is one chunk of message content.
type ContentPart struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// An Annotation is a citation attached to output text.
type Annotation struct {
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Usage reports token consumption for a completed response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// A Failure describes why a response failed.
type Failure struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (f *Failure) String() string {
	if f.Code != "" {
		return f.Code + ": " + f.Message
	}
	return f.Message
}

// OutputText returns the text of the final message in the output, along
// with its annotations. Earlier messages are drafts; the last one wins.
// It returns "" if no message text is present.
func (r *Response) OutputText() (string, []Annotation) {
	var text string
	var anns []Annotation
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text, anns = part.Text, part.Annotations
			}
		}
	}
	return text, anns
}
