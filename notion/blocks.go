package notion

import "strings"

// maxTextLen is the Notion API limit on a single rich text content string.
const maxTextLen = 2000

// A RichText is one styled text run.
type RichText struct {
	Type        string      `json:"type"`
	Text        TextContent `json:"text"`
	Annotations Annotations `json:"annotations"`
}

// TextContent is the literal content of a text run.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link"`
}

// A Link is a hyperlink attached to a text run.
type Link struct {
	URL string `json:"url"`
}

// Annotations are the style flags of a text run.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

// Text returns a plain rich text run, clamped to the API content limit.
func Text(content string) RichText {
	if r := []rune(content); len(r) > maxTextLen {
		content = string(r[:maxTextLen])
	}
	return RichText{
		Type:        "text",
		Text:        TextContent{Content: content},
		Annotations: Annotations{Color: "default"},
	}
}

// A Block is one content block of a page. Exactly one of the typed
// fields is set, matching Type.
type Block struct {
	Object           string     `json:"object"`
	Type             string     `json:"type"`
	Heading2         *Heading   `json:"heading_2,omitempty"`
	Paragraph        *Paragraph `json:"paragraph,omitempty"`
	BulletedListItem *Paragraph `json:"bulleted_list_item,omitempty"`
}

// A Heading is the payload of a heading block.
type Heading struct {
	RichText     []RichText `json:"rich_text"`
	Color        string     `json:"color"`
	IsToggleable bool       `json:"is_toggleable"`
}

// A Paragraph is the payload of a paragraph or list item block.
type Paragraph struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color"`
}

// MarkdownBlocks converts simple markdown into Notion blocks. Lines
// beginning with "## " become heading_2, lines beginning with "- "
// become bulleted_list_item, and other non-blank lines become
// paragraphs.
func MarkdownBlocks(md string) []Block {
	var blocks []Block
	for _, line := range strings.Split(strings.TrimSpace(md), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{
				Object: "block",
				Type:   "heading_2",
				Heading2: &Heading{
					RichText: []RichText{Text(strings.TrimSpace(line[3:]))},
					Color:    "default",
				},
			})
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, Block{
				Object: "block",
				Type:   "bulleted_list_item",
				BulletedListItem: &Paragraph{
					RichText: []RichText{Text(strings.TrimSpace(line[2:]))},
					Color:    "default",
				},
			})
		default:
			blocks = append(blocks, Block{
				Object: "block",
				Type:   "paragraph",
				Paragraph: &Paragraph{
					RichText: []RichText{Text(line)},
					Color:    "default",
				},
			})
		}
	}
	return blocks
}
