// Package paths records the well-known files and directories shared by
// the timatron tools.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the config directory for the named service,
// conventionally ~/.config/<name>.
func ConfigDir(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", name)
}

// TimTrackerConfig returns the location of the TimTracker API config file.
func TimTrackerConfig() string {
	return filepath.Join(ConfigDir("timtracker"), "config.json")
}

// OpenAIProfiles returns the location of the OpenAI credential profiles.
func OpenAIProfiles() string {
	return filepath.Join(ConfigDir("openai"), "profiles.json")
}

// GoogleProfiles returns the location of the Google credential profiles.
func GoogleProfiles() string {
	return filepath.Join(ConfigDir("google"), "profiles.json")
}

// ResearchPrompts returns the directory holding research prompt templates.
func ResearchPrompts() string {
	return filepath.Join(ConfigDir("openai"), "prompts")
}

// ResearchTracking returns the directory holding per-request tracking files.
func ResearchTracking() string {
	return filepath.Join(ConfigDir("openai"), "tracking")
}

// Attachments returns the default directory for extracted media files.
func Attachments() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "brain", "obsidian", "Timatron", "attachments")
}

// FileExists reports whether the specified file path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Unique returns path if nothing exists there, otherwise the first
// "name-N.ext" variant that does not exist.
func Unique(path string) string {
	if !FileExists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		next := fmt.Sprintf("%s-%d%s", base, i, ext)
		if !FileExists(next) {
			return next
		}
	}
}
