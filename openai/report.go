package openai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bitbucket.org/creachadair/stringset"
	"github.com/timatron/tools/mdpage"
)

// A ReportHeader is the front matter of a saved research report.
type ReportHeader struct {
	Title      string `yaml:"title"`
	Date       string `yaml:"date"`
	Model      string `yaml:"model"`
	Template   string `yaml:"template"`
	ResponseID string `yaml:"response_id"`
}

var (
	nonWord  = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	wordGaps = regexp.MustCompile(`\s+`)
)

// ReportFilename derives the report file name from the research topic and
// date, e.g. "openai-research-2026-01-15.md".
func ReportFilename(topic string, now time.Time) string {
	slug := nonWord.ReplaceAllString(strings.ToLower(topic), "")
	slug = wordGaps.ReplaceAllString(strings.TrimSpace(slug), "-")
	if r := []rune(slug); len(r) > 50 {
		slug = string(r[:50])
	}
	if slug == "" {
		slug = "untitled"
	}
	return fmt.Sprintf("%s-research-%s.md", slug, now.Format("2006-01-02"))
}

// DedupSources drops annotations without a URL and keeps the first
// annotation for each distinct URL, preserving order.
func DedupSources(anns []Annotation) []Annotation {
	seen := stringset.New()
	var out []Annotation
	for _, a := range anns {
		if a.URL == "" || seen.Contains(a.URL) {
			continue
		}
		seen.Add(a.URL)
		out = append(out, a)
	}
	return out
}

// WriteReport writes the research report to path: YAML front matter, the
// output text, and a numbered Sources section of deduplicated citations.
func WriteReport(path string, hdr ReportHeader, text string, sources []Annotation) error {
	var body strings.Builder
	body.WriteString(text)
	body.WriteString("\n")
	if uniq := DedupSources(sources); len(uniq) != 0 {
		body.WriteString("\n---\n\n## Sources\n\n")
		for i, s := range uniq {
			title := s.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(&body, "%d. [%s](%s)\n", i+1, title, s.URL)
		}
	}
	return mdpage.Write(path, hdr, body.String())
}
