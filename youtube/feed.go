package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ChannelFeedURL returns the public RSS feed URL for a channel id.
func ChannelFeedURL(channelID string) string {
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + channelID
}

// A FeedVideo is one entry of a channel feed, with its description
// reduced to plain text.
type FeedVideo struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	DescLinks   []string  `json:"descLinks,omitempty"` // URLs embedded in the description
	Published   time.Time `json:"published,omitempty"`
}

// LoadChannelFeed fetches and parses a channel feed from url.
func LoadChannelFeed(ctx context.Context, url string) ([]*FeedVideo, error) {
	p := gofeed.NewParser()
	// Yes, the parser API has the context backward.
	feed, err := p.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return feedVideos(feed)
}

// ParseChannelFeed parses channel feed XML from a string.
func ParseChannelFeed(data string) ([]*FeedVideo, error) {
	feed, err := gofeed.NewParser().ParseString(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return feedVideos(feed)
}

func feedVideos(feed *gofeed.Feed) ([]*FeedVideo, error) {
	var vids []*FeedVideo
	for _, item := range feed.Items {
		v := &FeedVideo{
			Title: item.Title,
			URL:   item.Link,
		}
		v.VideoID = getExtensionField(item.Extensions, "yt", "videoId")
		if v.VideoID == "" {
			// Older feed entries may only carry the id in the link.
			if id, ok := VideoID(item.Link); ok {
				v.VideoID = id
			} else {
				continue
			}
		}
		if v.URL == "" {
			v.URL = WatchURL(v.VideoID)
		}
		if t := item.PublishedParsed; t != nil {
			v.Published = *t
		}

		desc := item.Description
		if desc == "" {
			desc = mediaDescription(item.Extensions)
		}
		if desc != "" {
			if ps, err := parseHTML(desc); err == nil {
				v.Description = ps.Text
				v.DescLinks = ps.Links
			} else {
				v.Description = desc
			}
		}
		vids = append(vids, v)
	}
	return vids, nil
}

func getExtensionField(exts ext.Extensions, ns, name string) string {
	es := exts[ns][name]
	for _, e := range es {
		if e.Name == name {
			return e.Value
		}
	}
	return ""
}

// mediaDescription digs the description out of the media:group extension
// YouTube feeds use instead of a plain item description.
func mediaDescription(exts ext.Extensions) string {
	for _, group := range exts["media"]["group"] {
		for _, d := range group.Children["description"] {
			if d.Value != "" {
				return d.Value
			}
		}
	}
	return ""
}

func parseHTML(s string) (*parsedString, error) {
	tok := html.NewTokenizer(strings.NewReader(s))
	var links []string
	var buf bytes.Buffer
	for tok.Next() != html.ErrorToken {
		next := tok.Token()
		switch next.Type {
		case html.TextToken:
			buf.WriteString(next.Data)
		case html.StartTagToken:
			switch next.DataAtom {
			case atom.A:
				if href, ok := getAttr(next, "href"); ok {
					links = append(links, href)
				}
			case atom.Br:
				buf.WriteString("\n")
			}
		case html.EndTagToken:
			if next.DataAtom == atom.P {
				buf.WriteString("\n")
			}
		case html.SelfClosingTagToken:
			if next.DataAtom == atom.Br {
				buf.WriteString("\n")
			}
		}
	}
	if err := tok.Err(); err != nil && err != io.EOF {
		return nil, err
	}

	// Clean up whitespace on the ends of lines.
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return &parsedString{
		Text:  strings.Join(lines, "\n"),
		Links: links,
	}, nil
}

type parsedString struct {
	Text  string
	Links []string
}

func getAttr(tok html.Token, name string) (string, bool) {
	name = strings.ToLower(name)
	for _, attr := range tok.Attr {
		if strings.ToLower(attr.Key) == name {
			return attr.Val, true
		}
	}
	return "", false
}
