// Program notionpage creates a new row (page) in a Notion database by
// calling the Notion REST API directly.
//
// It requires a NOTION_API_KEY environment variable holding a Notion
// integration token; the integration must be shared with the target
// database. The payload is read from stdin or -payload-file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/timatron/tools/notion"
)

// meetingReportsDataSource is the data source (collection) id of the
// meeting reports database, used when the payload names no parent.
const meetingReportsDataSource = "2f2a2ca0-58dd-46d7-9d51-596aa954a03c"

var (
	payloadFile  = flag.String("payload-file", "", "Read the JSON payload from this file instead of stdin")
	dataSourceID = flag.String("data-source-id", meetingReportsDataSource,
		"Data source (collection) ID of the target database")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: echo '<json payload>' | %[1]s
       %[1]s -payload-file report.json

Create a Notion database row from a JSON payload of the form:

  {
    "parent": { "data_source_id": "..." },
    "properties": {
      "Title": "Meeting title",
      "Date": "2026-02-06",
      "Status": "Draft",
      "External attendees": "Name One, Name Two",
      "BLUF": "Bottom line summary.",
      "Action items": "Item one. Item two."
    },
    "content_markdown": "## Attendees\n- ..."
  }

All keys are optional except properties.Title. The created page URL is
printed on success; set NOTION_CREATE_VERBOSE to also dump the raw API
response to stderr.

Options:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	token := os.Getenv("NOTION_API_KEY")
	if token == "" {
		log.Fatal("NOTION_API_KEY is not set. Create an integration at " +
			"https://www.notion.so/my-integrations and share the database with it.")
	}

	data, err := readPayload()
	if err != nil {
		log.Fatalf("Reading payload: %v", err)
	}
	payload, err := notion.ParsePayload(data)
	if err != nil {
		log.Fatalf("Invalid payload: %v", err)
	}

	client := notion.NewClient(token)
	page, err := client.CreatePage(context.Background(), payload.Page(*dataSourceID))
	if err != nil {
		log.Fatalf("Creating page: %v", err)
	}

	fmt.Println(page.PublicURL())
	if os.Getenv("NOTION_CREATE_VERBOSE") != "" {
		fmt.Fprintln(os.Stderr, string(page.Raw))
	}
}

func readPayload() ([]byte, error) {
	if *payloadFile != "" {
		return os.ReadFile(*payloadFile)
	}
	return io.ReadAll(os.Stdin)
}
