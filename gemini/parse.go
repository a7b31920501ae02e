package gemini

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// An Analysis is the structured result of analyzing one video.
type Analysis struct {
	URL             string
	VideoID         string
	Title           string
	Channel         string
	DurationSeconds int
	Summary         string
	KeyPoints       []KeyPoint
	StaticMoments   []StaticMoment
	DynamicMoments  []DynamicMoment
	Raw             string
	Usage           UsageStats
}

// A KeyPoint is one timestamped takeaway.
type KeyPoint struct {
	Timestamp string
	Text      string
}

// A StaticMoment is best captured as a screenshot (diagrams, slides,
// code on screen).
type StaticMoment struct {
	Timestamp   string
	Seconds     int
	Description string

	ScreenshotPath string // set once a frame has been extracted
}

// A DynamicMoment is best captured as a short clip (demos, animations,
// interactions).
type DynamicMoment struct {
	Timestamp   string
	Seconds     int
	Duration    int // clip length in seconds, clamped to 1-5
	Description string

	GIFPath string // set once extracted
	MP4Path string
}

// UsageStats tracks API usage and timing for a single analysis.
type UsageStats struct {
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	AnalysisTime time.Duration
	MediaTime    time.Duration
}

var (
	titleRE   = regexp.MustCompile(`TITLE:\s*(.+)`)
	channelRE = regexp.MustCompile(`CHANNEL:\s*(.+)`)
	summaryRE = regexp.MustCompile(`(?s)SUMMARY:\s*\n(.*?)(?:\nKEY_POINTS:|\z)`)
	pointsRE  = regexp.MustCompile(`(?s)KEY_POINTS:\s*\n(.*?)(?:\nSTATIC_MOMENTS:|\nVISUAL_MOMENTS:|\z)`)
	staticRE  = regexp.MustCompile(`(?s)STATIC_MOMENTS:\s*\n(.*?)(?:\nDYNAMIC_MOMENTS:|\z)`)
	dynamicRE = regexp.MustCompile(`(?s)DYNAMIC_MOMENTS:\s*\n(.*?)(?:\n---|\z)`)
	visualRE  = regexp.MustCompile(`(?s)VISUAL_MOMENTS:\s*\n(.*?)(?:\n---|\z)`)

	momentLineRE  = regexp.MustCompile(`^\[?(\d{1,2}:\d{2}(?::\d{2})?)\]?\s*[-–—]?\s*(.+)$`)
	dynamicLineRE = regexp.MustCompile(`^\[?(\d{1,2}:\d{2}(?::\d{2})?)\]?\s*\((\d+)s?\)?\s*[-–—]?\s*(.+)$`)
)

// ParseAnalysis parses the structured text response the analysis prompt
// asks for: TITLE, CHANNEL, SUMMARY, KEY_POINTS, STATIC_MOMENTS, and
// DYNAMIC_MOMENTS sections. Responses using the legacy VISUAL_MOMENTS
// section parse as static moments.
func ParseAnalysis(text, videoID string) *Analysis {
	a := &Analysis{VideoID: videoID, Raw: text}

	if m := titleRE.FindStringSubmatch(text); m != nil {
		a.Title = strings.TrimSpace(m[1])
	}
	if m := channelRE.FindStringSubmatch(text); m != nil {
		a.Channel = strings.TrimSpace(m[1])
	}
	if m := summaryRE.FindStringSubmatch(text); m != nil {
		a.Summary = strings.TrimSpace(m[1])
	}

	if m := pointsRE.FindStringSubmatch(text); m != nil {
		for _, line := range sectionLines(m[1]) {
			if pm := momentLineRE.FindStringSubmatch(line); pm != nil {
				a.KeyPoints = append(a.KeyPoints, KeyPoint{Timestamp: pm[1], Text: pm[2]})
			}
		}
	}

	if m := staticRE.FindStringSubmatch(text); m != nil {
		a.StaticMoments = parseStatic(m[1])
	}

	if m := dynamicRE.FindStringSubmatch(text); m != nil {
		for _, line := range sectionLines(m[1]) {
			dm := dynamicLineRE.FindStringSubmatch(line)
			if dm == nil {
				continue
			}
			sec, ok := ParseTimestamp(dm[1])
			if !ok {
				continue
			}
			dur, _ := strconv.Atoi(dm[2])
			a.DynamicMoments = append(a.DynamicMoments, DynamicMoment{
				Timestamp:   dm[1],
				Seconds:     sec,
				Duration:    clampDuration(dur),
				Description: dm[3],
			})
		}
	}

	// Older prompt versions emitted a single VISUAL_MOMENTS section.
	if len(a.StaticMoments) == 0 && len(a.DynamicMoments) == 0 {
		if m := visualRE.FindStringSubmatch(text); m != nil {
			a.StaticMoments = parseStatic(m[1])
		}
	}
	return a
}

func parseStatic(section string) []StaticMoment {
	var out []StaticMoment
	for _, line := range sectionLines(section) {
		m := momentLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sec, ok := ParseTimestamp(m[1])
		if !ok {
			continue
		}
		out = append(out, StaticMoment{
			Timestamp:   m[1],
			Seconds:     sec,
			Description: m[2],
		})
	}
	return out
}

func sectionLines(section string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(section), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func clampDuration(d int) int {
	if d < 1 {
		return 1
	}
	if d > 5 {
		return 5
	}
	return d
}

// ParseTimestamp converts "MM:SS" or "HH:MM:SS" to seconds.
func ParseTimestamp(ts string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	total := 0
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}

// FormatTimestamp renders seconds as MM:SS, or H:MM:SS past an hour.
func FormatTimestamp(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TimestampName renders seconds as "MMmSSs" for use in file names.
func TimestampName(seconds int) string {
	return fmt.Sprintf("%02dm%02ds", seconds/60, seconds%60)
}
