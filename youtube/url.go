// Package youtube provides the YouTube plumbing shared by the ytnotes
// tool: video id extraction, watch-page metadata, channel feeds, and
// yt-dlp/ffmpeg invocations.
package youtube

import "regexp"

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/v/|youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`shorts/([A-Za-z0-9_-]{11})`),
}

// VideoID extracts the 11-character video id from a YouTube URL in
// watch, embed, shorts, or youtu.be form. It reports false if no id
// is found.
func VideoID(rawURL string) (string, bool) {
	for _, pat := range idPatterns {
		if m := pat.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
