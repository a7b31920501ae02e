package youtube_test

import (
	"context"
	"testing"
	"time"

	"github.com/timatron/tools/youtube"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
 <title>Test Channel</title>
 <entry>
  <id>yt:video:dQw4w9WgXcQ</id>
  <yt:videoId>dQw4w9WgXcQ</yt:videoId>
  <title>First Video</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"/>
  <published>2026-03-01T12:00:00+00:00</published>
  <media:group>
   <media:title>First Video</media:title>
   <media:description>Episode notes.&lt;br/&gt;More at &lt;a href="https://example.com/notes"&gt;the site&lt;/a&gt;.</media:description>
  </media:group>
 </entry>
 <entry>
  <id>yt:video:AAAAAAAAAAA</id>
  <title>Second Video</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=AAAAAAAAAAA"/>
  <published>2026-02-27T09:30:00+00:00</published>
 </entry>
 <entry>
  <id>upcoming-livestream</id>
  <title>No ID Anywhere</title>
  <link rel="alternate" href="https://www.youtube.com/testchannel/live"/>
 </entry>
</feed>`

func TestParseChannelFeed(t *testing.T) {
	vids, err := youtube.ParseChannelFeed(sampleFeed)
	if err != nil {
		t.Fatalf("ParseChannelFeed failed: %v", err)
	}
	if len(vids) != 2 {
		t.Fatalf("Videos: got %d, want 2", len(vids))
	}

	first := vids[0]
	if first.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("First VideoID: got %q, want dQw4w9WgXcQ", first.VideoID)
	}
	if first.Title != "First Video" {
		t.Errorf("First Title: got %q", first.Title)
	}
	if first.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("First URL: got %q", first.URL)
	}
	if want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC); !first.Published.Equal(want) {
		t.Errorf("First Published: got %v, want %v", first.Published, want)
	}
	if want := "Episode notes.\nMore at the site."; first.Description != want {
		t.Errorf("First Description: got %q, want %q", first.Description, want)
	}
	if len(first.DescLinks) != 1 || first.DescLinks[0] != "https://example.com/notes" {
		t.Errorf("First DescLinks: got %v", first.DescLinks)
	}

	// The second entry has no yt:videoId extension, so the id comes from
	// the link.
	if vids[1].VideoID != "AAAAAAAAAAA" {
		t.Errorf("Second VideoID: got %q, want AAAAAAAAAAA", vids[1].VideoID)
	}
}

func TestChannelFeedURL(t *testing.T) {
	const want = "https://www.youtube.com/feeds/videos.xml?channel_id=UCtest"
	if got := youtube.ChannelFeedURL("UCtest"); got != want {
		t.Errorf("ChannelFeedURL: got %q, want %q", got, want)
	}
}

func TestLoadChannelFeedManual(t *testing.T) {
	if !*doManual {
		t.Skip("Skipping network test because -manual=false")
	}
	url := youtube.ChannelFeedURL("UCBa659QWEk1AI4Tg--mrJ2A") // Tom Scott
	vids, err := youtube.LoadChannelFeed(context.Background(), url)
	if err != nil {
		t.Fatalf("LoadChannelFeed failed: %v", err)
	}
	for _, v := range vids {
		t.Logf("%s: %s", v.VideoID, v.Title)
	}
}
