package youtube

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/timatron/tools/paths"
)

// Default extraction timeouts. A single frame is near-instant; clips
// re-encode.
const (
	defaultFrameTimeout = 30 * time.Second
	defaultClipTimeout  = 60 * time.Second
)

func (d *Downloader) frameTimeout() time.Duration {
	if d.FrameTimeout > 0 {
		return d.FrameTimeout
	}
	return defaultFrameTimeout
}

func (d *Downloader) clipTimeout() time.Duration {
	if d.ClipTimeout > 0 {
		return d.ClipTimeout
	}
	return defaultClipTimeout
}

// ExtractFrame writes a single high-quality frame of videoPath at the
// given offset (in seconds) to outPath.
func (d *Downloader) ExtractFrame(ctx context.Context, videoPath string, atSeconds int, outPath string) error {
	return d.runFFmpeg(ctx, d.frameTimeout(), outPath,
		"-y",
		"-ss", strconv.Itoa(atSeconds),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		outPath,
	)
}

// ExtractGIF writes a looping GIF clip of videoPath starting at
// startSeconds for durSeconds, scaled to width pixels.
func (d *Downloader) ExtractGIF(ctx context.Context, videoPath string, startSeconds, durSeconds int, outPath string, width int) error {
	if width <= 0 {
		width = 480
	}
	return d.runFFmpeg(ctx, d.clipTimeout(), outPath,
		"-y",
		"-ss", strconv.Itoa(startSeconds),
		"-t", strconv.Itoa(durSeconds),
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=10,scale=%d:-1:flags=lanczos", width),
		"-loop", "0",
		outPath,
	)
}

// ExtractMP4 writes a silent H.264 clip of videoPath starting at
// startSeconds for durSeconds.
func (d *Downloader) ExtractMP4(ctx context.Context, videoPath string, startSeconds, durSeconds int, outPath string) error {
	return d.runFFmpeg(ctx, d.clipTimeout(), outPath,
		"-y",
		"-ss", strconv.Itoa(startSeconds),
		"-t", strconv.Itoa(durSeconds),
		"-i", videoPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-an",
		outPath,
	)
}

func (d *Downloader) runFFmpeg(ctx context.Context, timeout time.Duration, outPath string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, d.ffmpeg(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %v: %s", err, firstLine(stderr.String()))
	}
	if !paths.FileExists(outPath) {
		return fmt.Errorf("ffmpeg produced no output at %s", outPath)
	}
	return nil
}
