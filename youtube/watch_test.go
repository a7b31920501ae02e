package youtube_test

import (
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/timatron/tools/youtube"
)

var doManual = flag.Bool("manual", false, "Run tests that hit youtube.com")

func TestParseWatchPage(t *testing.T) {
	const page = `<html><head><script>
var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"},
"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"Test Video",
"author":"Test Channel","lengthSeconds":"213"},"other":"stuff"};
</script></head><body></body></html>`

	det, err := youtube.ParseWatchPage([]byte(page))
	if err != nil {
		t.Fatalf("ParseWatchPage failed: %v", err)
	}
	if det.ID != "dQw4w9WgXcQ" {
		t.Errorf("ID: got %q, want dQw4w9WgXcQ", det.ID)
	}
	if det.Title != "Test Video" || det.Author != "Test Channel" {
		t.Errorf("Metadata: got title=%q author=%q", det.Title, det.Author)
	}
	if det.LengthSeconds != 213 {
		t.Errorf("LengthSeconds: got %d, want 213", det.LengthSeconds)
	}
}

func TestParseWatchPageErrors(t *testing.T) {
	tests := []struct {
		name, page, want string
	}{
		{"rate limited", `<form class="g-recaptcha">prove you are human</form>`, "rate limit"},
		{"missing video", `<html><body>nothing here</body></html>`, "not found"},
		{"no details", `<html>{"playabilityStatus":{"status":"ERROR"}}</html>`, "no video details"},
	}
	for _, test := range tests {
		_, err := youtube.ParseWatchPage([]byte(test.page))
		if err == nil {
			t.Errorf("%s: ParseWatchPage unexpectedly succeeded", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got error %v, want %q", test.name, err, test.want)
		}
	}
}

func TestWatchDetailsManual(t *testing.T) {
	if !*doManual {
		t.Skip("Skipping network test because -manual=false")
	}
	det, err := youtube.WatchDetails(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("WatchDetails failed: %v", err)
	}
	t.Logf("Video %q by %q (%d seconds)", det.Title, det.Author, det.LengthSeconds)
}
