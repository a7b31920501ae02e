package youtube

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/timatron/tools/paths"
)

// downloadFormat prefers an mp4 container so ffmpeg can seek it directly.
const downloadFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// A Downloader wraps the yt-dlp and ffmpeg executables.
type Downloader struct {
	// YtdlpPath is the yt-dlp executable; "yt-dlp" from PATH if empty.
	YtdlpPath string
	// FFmpegPath is the ffmpeg executable; "ffmpeg" from PATH if empty.
	FFmpegPath string

	// FrameTimeout and ClipTimeout bound each ffmpeg invocation.
	// Defaults apply when zero.
	FrameTimeout time.Duration
	ClipTimeout  time.Duration
}

// NewDownloader returns a Downloader using executables from PATH.
func NewDownloader() *Downloader {
	return &Downloader{YtdlpPath: "yt-dlp", FFmpegPath: "ffmpeg"}
}

func (d *Downloader) ytdlp() string {
	if d.YtdlpPath != "" {
		return d.YtdlpPath
	}
	return "yt-dlp"
}

func (d *Downloader) ffmpeg() string {
	if d.FFmpegPath != "" {
		return d.FFmpegPath
	}
	return "ffmpeg"
}

// Download fetches the video at url into dir as <video-id>.mp4 and
// returns the file path. Cancel the context to bound the download time.
func (d *Downloader) Download(ctx context.Context, url, dir string) (string, error) {
	id, ok := VideoID(url)
	if !ok {
		return "", fmt.Errorf("no video ID in %q", url)
	}
	out := filepath.Join(dir, id+".mp4")

	cmd := exec.CommandContext(ctx, d.ytdlp(),
		"-f", downloadFormat,
		"-o", out,
		"--no-playlist",
		url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp: %v: %s", err, firstLine(stderr.String()))
	}
	if !paths.FileExists(out) {
		return "", fmt.Errorf("yt-dlp produced no output file for %q", id)
	}
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
