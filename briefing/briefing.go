// Program briefing fetches the week's health data from TimTracker and
// prints a daily briefing with assessments for sleep, exercise, diet,
// and mindfulness.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/timatron/tools/paths"
	"github.com/timatron/tools/timtracker"
)

var (
	configPath = flag.String("config", paths.TimTrackerConfig(), "TimTracker config file")
	weeksBack  = flag.Int("weeks", 0, "Number of weeks to look back (0 = current week)")
	rawJSON    = flag.Bool("json", false, "Print the raw JSON payload instead of the briefing")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %[1]s [-weeks n] [-json]

Fetch health data from TimTracker and generate a daily briefing with
assessments for sleep, exercise, diet, and mindfulness. The briefing is
written to stdout as markdown.

Options:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	cfg, err := timtracker.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}

	ctx := context.Background()
	sum, err := timtracker.NewClient(cfg).WeeklySummary(ctx, *weeksBack)
	if err != nil {
		log.Fatalf("Fetching weekly summary: %v", err)
	}

	if *rawJSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, sum.Raw, "", "  "); err != nil {
			log.Fatalf("Encoding output: %v", err)
		}
		fmt.Println(buf.String())
		return
	}

	report := timtracker.DefaultTargets.Assess(sum.Days)
	fmt.Println(timtracker.FormatBriefing(sum, report))
}
