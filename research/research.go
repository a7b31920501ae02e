// Program research submits deep research queries to OpenAI's background
// responses API, polls them by response id, and downloads the finished
// report as front-matter markdown.
//
// Credentials come from ~/.config/openai/profiles.json, with the
// OPENAI_API_KEY environment variable as a fallback.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/timatron/tools/openai"
	"github.com/timatron/tools/paths"
	"github.com/timatron/tools/profiles"
)

// placeholderPrefix marks a profiles.json entry that was never filled in.
const placeholderPrefix = "sk-proj-REPLACE"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %[1]s submit -template <name> -topic <topic> [options]
       %[1]s status <response-id> [options]
       %[1]s download <response-id> [options]

Conduct comprehensive, citation-backed research using OpenAI's deep
research API. A submit call returns a response id; research typically
takes 5-30 minutes, after which download writes a markdown report.

Commands:
  submit     Submit a new research query
  status     Check the status of a submitted query
  download   Download completed research results

Run "%[1]s <command> -h" for the options of each command.
`, filepath.Base(os.Args[0]))
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "submit":
		runSubmit(args)
	case "status":
		runStatus(args)
	case "download":
		runDownload(args)
	case "help":
		usage()
	default:
		log.Fatalf("Unknown command %q; run %s help", cmd, filepath.Base(os.Args[0]))
	}
}

func apiKey(profile string) string {
	key, err := profiles.APIKey(profiles.Options{
		Path:        paths.OpenAIProfiles(),
		Profile:     profile,
		EnvVar:      "OPENAI_API_KEY",
		Placeholder: placeholderPrefix,
	})
	if err != nil {
		log.Fatalf("Resolving API key: %v", err)
	}
	return key
}

func checkModel(model string) {
	if _, ok := openai.ModelPricing[model]; !ok {
		var known []string
		for m := range openai.ModelPricing {
			known = append(known, m)
		}
		sort.Strings(known)
		log.Fatalf("Unknown model %q (choose from: %s)", model, strings.Join(known, ", "))
	}
}

func runSubmit(args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	var (
		template = fs.String("template", "company", "Research template: company, person, product, or custom")
		topic    = fs.String("topic", "", "Research topic (required for non-custom templates)")
		query    = fs.String("query", "", "Full custom query (for the custom template)")
		profile  = fs.String("profile", "", "Credential profile name")
		model    = fs.String("model", openai.DefaultModel, "Research model to use")
		outDir   = fs.String("output", ".", "Output directory recorded for the eventual download")
		prompts  = fs.String("prompts", paths.ResearchPrompts(), "Directory of prompt templates")
		tracking = fs.String("tracking", paths.ResearchTracking(), "Directory of tracking files")
	)
	fs.Parse(args)
	checkModel(*model)

	prompt := buildPrompt(*prompts, *template, *topic, *query)
	client := openai.NewClient(apiKey(*profile), openai.WithTimeout(time.Hour))

	log.Printf("Submitting research query (model=%s, template=%s)", *model, *template)
	if *topic != "" {
		log.Printf("Topic: %s", *topic)
	}

	ctx := context.Background()
	rsp, err := client.CreateResponse(ctx, &openai.Request{
		Model:      *model,
		Input:      prompt,
		Background: true,
		Tools:      []openai.Tool{{Type: openai.ToolWebSearch}},
	})
	if err != nil {
		log.Fatalf("Submitting research: %v", err)
	}

	fmt.Println("Research submitted successfully!")
	fmt.Printf("  Response ID: %s\n", rsp.ID)
	fmt.Printf("  Status: %s\n", rsp.Status)
	fmt.Println()
	fmt.Println("To check status:")
	fmt.Printf("  %s status %s\n", filepath.Base(os.Args[0]), rsp.ID)
	fmt.Println()
	fmt.Println("Research typically takes 5-30 minutes.")

	label := *topic
	if label == "" {
		label = clip(*query, 50)
	}
	t := &openai.Tracking{
		ResponseID:  rsp.ID,
		Template:    *template,
		Topic:       label,
		Model:       *model,
		SubmittedAt: time.Now(),
		OutputDir:   *outDir,
	}
	if err := t.Save(*tracking); err != nil {
		log.Fatalf("Saving tracking file: %v", err)
	}
}

// buildPrompt combines the base prompt with the template prompt,
// substituting the topic. The custom template appends the raw query to
// the base prompt instead.
func buildPrompt(dir, template, topic, query string) string {
	base, err := os.ReadFile(filepath.Join(dir, "base.md"))
	if err != nil && template != "custom" {
		log.Fatalf("Base prompt not found at %s", filepath.Join(dir, "base.md"))
	}

	if template == "custom" {
		if query == "" {
			log.Fatal("A non-empty -query is required for the custom template")
		}
		return strings.TrimSpace(string(base) + "\n\n---\n\n" + query)
	}

	if topic == "" {
		log.Fatalf("A non-empty -topic is required for the %s template", template)
	}
	tpath := filepath.Join(dir, template+".md")
	tmpl, err := os.ReadFile(tpath)
	if err != nil {
		log.Fatalf("Template %q not found at %s (available: %s)",
			template, tpath, strings.Join(availableTemplates(dir), ", "))
	}
	body := strings.ReplaceAll(string(tmpl), "{topic}", topic)
	return strings.TrimSpace(string(base) + "\n\n---\n\n" + body)
}

func availableTemplates(dir string) []string {
	var names []string
	matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".md")
		if name != "base" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	var (
		profile  = fs.String("profile", "", "Credential profile name")
		tracking = fs.String("tracking", paths.ResearchTracking(), "Directory of tracking files")
	)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("You must provide exactly one response id")
	}
	id := fs.Arg(0)

	client := openai.NewClient(apiKey(*profile))
	rsp, err := client.GetResponse(context.Background(), id)
	if err != nil {
		log.Fatalf("Checking status: %v", err)
	}

	fmt.Printf("Response ID: %s\n", id)
	fmt.Printf("Status: %s\n", rsp.Status)
	if t, err := openai.LoadTracking(*tracking, id); err == nil {
		fmt.Printf("Elapsed: %d minutes\n", int(time.Since(t.SubmittedAt).Minutes()))
	}

	fmt.Println()
	switch rsp.Status {
	case openai.StatusCompleted:
		fmt.Println("Research complete! To download results:")
		fmt.Printf("  %s download %s\n", filepath.Base(os.Args[0]), id)
	case openai.StatusFailed:
		fmt.Println("Research failed.")
		if rsp.Error != nil {
			fmt.Printf("Error: %s\n", rsp.Error)
		}
	case openai.StatusCancelled:
		fmt.Println("Research was cancelled.")
	default:
		fmt.Println("Still in progress. Check again in a few minutes.")
	}
}

func runDownload(args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	var (
		profile  = fs.String("profile", "", "Credential profile name")
		outDir   = fs.String("output", ".", "Output directory for the report")
		tracking = fs.String("tracking", paths.ResearchTracking(), "Directory of tracking files")
	)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("You must provide exactly one response id")
	}
	id := fs.Arg(0)

	client := openai.NewClient(apiKey(*profile))
	rsp, err := client.GetResponse(context.Background(), id)
	if err != nil {
		log.Fatalf("Downloading results: %v", err)
	}
	if rsp.Status != openai.StatusCompleted {
		log.Fatalf("Research not complete (status: %s)", rsp.Status)
	}

	text, sources := rsp.OutputText()
	if text == "" {
		log.Fatal("No output text found in response")
	}

	t, err := openai.LoadTracking(*tracking, id)
	if err != nil {
		// A download can still proceed without the submit-time sidecar.
		t = &openai.Tracking{ResponseID: id, Topic: "research", Model: openai.DefaultModel}
	}

	now := time.Now()
	var inTok, outTok int
	if rsp.Usage != nil {
		inTok, outTok = rsp.Usage.InputTokens, rsp.Usage.OutputTokens
	}
	cost := openai.Cost(t.Model, inTok, outTok)
	if !t.SubmittedAt.IsZero() {
		t.DurationMinutes = round1(now.Sub(t.SubmittedAt).Minutes())
	}
	t.CompletedAt = &now
	t.InputTokens = inTok
	t.OutputTokens = outTok
	t.TotalTokens = inTok + outTok
	t.CostUSD = round4(cost)
	t.SourcesCount = len(sources)
	if err := t.Save(*tracking); err != nil {
		log.Fatalf("Updating tracking file: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Creating output directory: %v", err)
	}
	outPath := paths.Unique(filepath.Join(*outDir, openai.ReportFilename(t.Topic, now)))
	hdr := openai.ReportHeader{
		Title:      "Research: " + t.Topic,
		Date:       now.Format("2006-01-02"),
		Model:      t.Model,
		Template:   t.Template,
		ResponseID: id,
	}
	if err := openai.WriteReport(outPath, hdr, text, sources); err != nil {
		log.Fatalf("Writing report: %v", err)
	}

	fmt.Println("Research report saved to:")
	fmt.Printf("  %s\n", outPath)
	fmt.Println()
	fmt.Printf("Sources cited: %d\n", len(sources))
	fmt.Println()
	fmt.Println("=== Usage Stats ===")
	fmt.Printf("  Model: %s\n", t.Model)
	fmt.Printf("  Duration: %.1f minutes\n", t.DurationMinutes)
	fmt.Printf("  Input tokens: %d\n", inTok)
	fmt.Printf("  Output tokens: %d\n", outTok)
	fmt.Printf("  Total tokens: %d\n", inTok+outTok)
	fmt.Printf("  Cost: $%.4f\n", cost)
}

func clip(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func round1(v float64) float64 { return float64(int(v*10+0.5)) / 10 }
func round4(v float64) float64 { return float64(int(v*10000+0.5)) / 10000 }
