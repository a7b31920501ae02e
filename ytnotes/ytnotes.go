// Program ytnotes analyzes YouTube videos with the Gemini API and
// extracts screenshots and short clips at the moments the analysis
// identifies, writing the result as a front-matter markdown report.
//
// Credentials come from ~/.config/google/profiles.json, with the
// GOOGLE_API_KEY environment variable as a fallback. Media extraction
// shells out to yt-dlp and ffmpeg.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/timatron/tools/gemini"
	"github.com/timatron/tools/mdpage"
	"github.com/timatron/tools/paths"
	"github.com/timatron/tools/profiles"
	"github.com/timatron/tools/youtube"
)

var (
	outDir      = flag.String("output", ".", "Output directory for the report")
	title       = flag.String("title", "YouTube Video Analysis", "Report title")
	extraPrompt = flag.String("prompt", "", "Additional analysis instructions")
	noMedia     = flag.Bool("no-media", false, "Skip screenshot and clip extraction")
	maxShots    = flag.Int("max-screenshots", 5, "Maximum screenshots per video")
	maxClips    = flag.Int("max-clips", 3, "Maximum clips per video")
	model       = flag.String("model", gemini.DefaultModel, "Gemini model to use")
	profile     = flag.String("profile", "", "Credential profile name")
	channel     = flag.String("channel", "", "Analyze recent videos from this channel ID instead of URL arguments")
	limit       = flag.Int("limit", 3, "Number of recent channel videos to analyze (with -channel)")
	attachDir   = flag.String("attachments", paths.Attachments(), "Directory for extracted media files")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %[1]s [options] <url>...
       %[1]s [options] -channel <channel-id> [-limit n]

Analyze YouTube videos with Gemini: summary, timestamped key points,
screenshots of static moments, and GIF+MP4 clips of dynamic moments.
The report is written as markdown with YAML front matter; media files
land in the attachments directory.

Options:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

// analysisPrompt asks the model for the structured sections ParseAnalysis
// understands.
const analysisPrompt = `Analyze this YouTube video and respond in exactly this format:

TITLE: <video title>
CHANNEL: <channel name>
SUMMARY:
<2-4 paragraph summary of the video>
KEY_POINTS:
- [MM:SS] <key takeaway>
- [MM:SS] <key takeaway>
STATIC_MOMENTS:
- [MM:SS] <diagram, slide, code, or other still worth a screenshot>
DYNAMIC_MOMENTS:
- [MM:SS] (Ns) <demo, animation, or interaction worth a short clip, N between 1 and 5>

List up to 10 key points, up to 5 static moments, and up to 3 dynamic
moments, all in chronological order. Use timestamps that are accurate to
the video.`

func main() {
	flag.Parse()

	key, err := profiles.APIKey(profiles.Options{
		Path:        paths.GoogleProfiles(),
		Profile:     *profile,
		EnvVar:      "GOOGLE_API_KEY",
		Placeholder: "YOUR_",
	})
	if err != nil {
		log.Fatalf("Resolving API key: %v", err)
	}

	ctx := context.Background()
	urls := gatherURLs(ctx)
	if len(urls) == 0 {
		log.Fatal("No valid YouTube URLs to analyze")
	}

	prompt := analysisPrompt
	if *extraPrompt != "" {
		prompt += "\n\n## Additional Instructions\n" + *extraPrompt
	}

	client := gemini.NewClient(key)
	dl := youtube.NewDownloader()
	start := time.Now()

	log.Printf("Analyzing %d video(s) with %s", len(urls), *model)
	var analyses []*gemini.Analysis
	for i, url := range urls {
		log.Printf("[%d/%d] Analyzing %s", i+1, len(urls), url)
		a := analyze(ctx, client, url, prompt)
		if !*noMedia && (len(a.StaticMoments) != 0 || len(a.DynamicMoments) != 0) {
			extractMedia(ctx, dl, a)
		}
		analyses = append(analyses, a)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Creating output directory: %v", err)
	}
	name := fmt.Sprintf("youtube-analysis-%s.md", time.Now().Format("2006-01-02"))
	outPath := paths.Unique(filepath.Join(*outDir, name))
	if err := writeReport(outPath, analyses); err != nil {
		log.Fatalf("Writing report: %v", err)
	}

	fmt.Printf("Report saved to: %s\n", outPath)
	printTotals(analyses, time.Since(start))
}

// gatherURLs resolves the videos to analyze, either from the channel
// feed or from the positional arguments. Invalid URLs are skipped with
// a warning.
func gatherURLs(ctx context.Context) []string {
	if *channel != "" {
		vids, err := youtube.LoadChannelFeed(ctx, youtube.ChannelFeedURL(*channel))
		if err != nil {
			log.Fatalf("Loading channel feed: %v", err)
		}
		log.Printf("Channel feed has %d videos", len(vids))
		var urls []string
		for _, v := range vids {
			if len(urls) == *limit {
				break
			}
			urls = append(urls, v.URL)
		}
		return urls
	}

	var urls []string
	for _, url := range flag.Args() {
		if _, ok := youtube.VideoID(url); !ok {
			log.Printf("Warning: invalid YouTube URL, skipping: %s", url)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// analyze runs the Gemini analysis for one video. Failures produce an
// analysis with no content so the report still lists the video.
func analyze(ctx context.Context, client *gemini.Client, url, prompt string) *gemini.Analysis {
	id, _ := youtube.VideoID(url)

	start := time.Now()
	rsp, err := client.AnalyzeVideo(ctx, *model, url, prompt)
	if err != nil {
		log.Printf("Error analyzing video: %v", err)
		return &gemini.Analysis{URL: url, VideoID: id, Usage: gemini.UsageStats{Model: *model}}
	}

	a := gemini.ParseAnalysis(rsp.Text(), id)
	a.URL = url
	a.Usage = gemini.UsageStats{Model: *model, AnalysisTime: time.Since(start)}
	if um := rsp.UsageMetadata; um != nil {
		a.Usage.InputTokens = um.PromptTokenCount
		a.Usage.OutputTokens = um.CandidatesTokenCount
		a.Usage.TotalTokens = um.TotalTokenCount
		if a.Usage.TotalTokens == 0 {
			a.Usage.TotalTokens = um.PromptTokenCount + um.CandidatesTokenCount
		}
	}

	// The model does not always echo the metadata sections; fill the
	// gaps from the watch page.
	if a.Title == "" || a.Channel == "" || a.DurationSeconds == 0 {
		if det, err := youtube.WatchDetails(ctx, id); err == nil {
			if a.Title == "" {
				a.Title = det.Title
			}
			if a.Channel == "" {
				a.Channel = det.Author
			}
			if a.DurationSeconds == 0 {
				a.DurationSeconds = det.LengthSeconds
			}
		}
	}

	log.Printf("Analysis complete: %s", orUntitled(a.Title))
	log.Printf("Key points: %d, static: %d, dynamic: %d",
		len(a.KeyPoints), len(a.StaticMoments), len(a.DynamicMoments))
	log.Printf("Tokens: %d in / %d out | Cost: $%.4f | Time: %.1fs",
		a.Usage.InputTokens, a.Usage.OutputTokens, a.Usage.CostUSD(),
		a.Usage.AnalysisTime.Seconds())
	return a
}

// extractMedia downloads the video to a temp dir and pulls frames for
// static moments and GIF+MP4 clips for dynamic moments. Extraction
// failures skip the moment; the textual analysis survives either way.
func extractMedia(ctx context.Context, dl *youtube.Downloader, a *gemini.Analysis) {
	start := time.Now()
	defer func() { a.Usage.MediaTime = time.Since(start) }()

	tmp, err := os.MkdirTemp("", "ytnotes-")
	if err != nil {
		log.Printf("Creating temp dir: %v", err)
		return
	}
	defer os.RemoveAll(tmp)

	log.Printf("Downloading video for media extraction...")
	dlCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	videoPath, err := dl.Download(dlCtx, a.URL, tmp)
	if err != nil {
		log.Printf("Could not download video, skipping media extraction: %v", err)
		return
	}
	if err := os.MkdirAll(*attachDir, 0755); err != nil {
		log.Printf("Creating attachments directory: %v", err)
		return
	}

	shots := a.StaticMoments
	if len(shots) > *maxShots {
		shots = shots[:*maxShots]
	}
	for i := range shots {
		m := &shots[i]
		name := fmt.Sprintf("yt-%s-%s.png", a.VideoID, gemini.TimestampName(m.Seconds))
		out := filepath.Join(*attachDir, name)
		if err := dl.ExtractFrame(ctx, videoPath, m.Seconds, out); err != nil {
			log.Printf("Failed to extract frame at %s: %v", m.Timestamp, err)
			continue
		}
		m.ScreenshotPath = out
		log.Printf("Screenshot: %s", name)
	}

	clips := a.DynamicMoments
	if len(clips) > *maxClips {
		clips = clips[:*maxClips]
	}
	for i := range clips {
		m := &clips[i]
		base := fmt.Sprintf("yt-%s-%s-%ds", a.VideoID, gemini.TimestampName(m.Seconds), m.Duration)
		gifPath := filepath.Join(*attachDir, base+".gif")
		mp4Path := filepath.Join(*attachDir, base+".mp4")

		if err := dl.ExtractGIF(ctx, videoPath, m.Seconds, m.Duration, gifPath, 480); err != nil {
			log.Printf("Failed to extract GIF at %s: %v", m.Timestamp, err)
		} else {
			m.GIFPath = gifPath
			log.Printf("GIF: %s", filepath.Base(gifPath))
		}
		if err := dl.ExtractMP4(ctx, videoPath, m.Seconds, m.Duration, mp4Path); err != nil {
			log.Printf("Failed to extract MP4 at %s: %v", m.Timestamp, err)
		} else {
			m.MP4Path = mp4Path
			log.Printf("MP4: %s", filepath.Base(mp4Path))
		}
	}
}

type reportHeader struct {
	Title          string `yaml:"title"`
	Date           string `yaml:"date"`
	VideosAnalyzed int    `yaml:"videos_analyzed"`
	Type           string `yaml:"type"`
}

func writeReport(path string, analyses []*gemini.Analysis) error {
	hdr := reportHeader{
		Title:          *title,
		Date:           time.Now().Format("2006-01-02"),
		VideosAnalyzed: len(analyses),
		Type:           "youtube-analysis",
	}
	return mdpage.Write(path, hdr, reportBody(analyses))
}

func reportBody(analyses []*gemini.Analysis) string {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	for i, a := range analyses {
		name := a.Title
		if name == "" {
			name = fmt.Sprintf("Video %d", i+1)
		}
		add("## %s", name)
		add("")
		add("**URL:** %s  ", a.URL)
		if a.Channel != "" {
			add("**Channel:** %s  ", a.Channel)
		}
		if a.DurationSeconds != 0 {
			add("**Duration:** %s", gemini.FormatTimestamp(a.DurationSeconds))
		}
		add("")

		if a.Summary != "" {
			add("### Summary")
			add("")
			add("%s", a.Summary)
			add("")
		}
		if len(a.KeyPoints) != 0 {
			add("### Key Points")
			add("")
			for _, kp := range a.KeyPoints {
				add("- **[%s]** %s", kp.Timestamp, kp.Text)
			}
			add("")
		}

		var shots []gemini.StaticMoment
		for _, m := range a.StaticMoments {
			if m.ScreenshotPath != "" {
				shots = append(shots, m)
			}
		}
		if len(shots) != 0 {
			add("### Screenshots")
			add("")
			for _, m := range shots {
				add("**[%s]** — %s", m.Timestamp, m.Description)
				// Obsidian attachment embed; the vault resolves the name.
				add("![[%s]]", filepath.Base(m.ScreenshotPath))
				add("")
			}
		}

		var clips []gemini.DynamicMoment
		for _, m := range a.DynamicMoments {
			if m.GIFPath != "" {
				clips = append(clips, m)
			}
		}
		if len(clips) != 0 {
			add("### Clips")
			add("")
			for _, m := range clips {
				add("**[%s]** (%ds) — %s", m.Timestamp, m.Duration, m.Description)
				add("![[%s]]", filepath.Base(m.GIFPath))
				if m.MP4Path != "" {
					add("*MP4 available: `%s`*", filepath.Base(m.MP4Path))
				}
				add("")
			}
		}

		if i < len(analyses)-1 {
			add("---")
			add("")
		}
	}
	return strings.Join(lines, "\n")
}

func printTotals(analyses []*gemini.Analysis, total time.Duration) {
	var inTok, outTok, allTok, shots, clips int
	var cost float64
	var analysisTime, mediaTime time.Duration
	for _, a := range analyses {
		inTok += a.Usage.InputTokens
		outTok += a.Usage.OutputTokens
		allTok += a.Usage.TotalTokens
		cost += a.Usage.CostUSD()
		analysisTime += a.Usage.AnalysisTime
		mediaTime += a.Usage.MediaTime
		for _, m := range a.StaticMoments {
			if m.ScreenshotPath != "" {
				shots++
			}
		}
		for _, m := range a.DynamicMoments {
			if m.GIFPath != "" {
				clips++
			}
		}
	}

	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("USAGE STATS")
	fmt.Println("==================================================")
	fmt.Printf("  Model: %s\n", *model)
	fmt.Printf("  Videos analyzed: %d\n", len(analyses))
	fmt.Printf("  Screenshots extracted: %d\n", shots)
	fmt.Printf("  Clips extracted: %d (GIF + MP4 each)\n", clips)
	fmt.Println()
	fmt.Printf("  Input tokens: %d\n", inTok)
	fmt.Printf("  Output tokens: %d\n", outTok)
	fmt.Printf("  Total tokens: %d\n", allTok)
	fmt.Println()
	fmt.Printf("  Analysis time: %.1fs\n", analysisTime.Seconds())
	fmt.Printf("  Media extraction time: %.1fs\n", mediaTime.Seconds())
	fmt.Printf("  Total time: %.1fs\n", total.Seconds())
	fmt.Println()
	fmt.Printf("  Estimated cost: $%.4f\n", cost)
	fmt.Println("==================================================")
}

func orUntitled(s string) string {
	if s == "" {
		return "Untitled"
	}
	return s
}
