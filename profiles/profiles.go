// Package profiles loads named API credential profiles from a local JSON
// config file of the form:
//
//	{
//	  "default": "personal",
//	  "profiles": {
//	    "personal": {"api_key": "..."},
//	    "work":     {"api_key": "..."}
//	  }
//	}
package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// A Profile is a single named credential entry.
type Profile struct {
	APIKey string `json:"api_key"`
}

// A Config is the contents of a profiles.json file.
type Config struct {
	Default  string             `json:"default"`
	Profiles map[string]Profile `json:"profiles"`
}

// Load reads and decodes the profile config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &cfg, nil
}

// Names returns the profile names in sorted order.
func (c *Config) Names() []string {
	var names []string
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options describes where an API key may be found.
type Options struct {
	Path        string // profiles.json location
	Profile     string // explicit profile name; empty means use the default
	EnvVar      string // environment variable fallback
	Placeholder string // key prefix marking an unconfigured placeholder
}

// APIKey resolves an API key using the priority order: explicit profile,
// then the config's default profile, then the environment variable.
func APIKey(opts Options) (string, error) {
	if cfg, err := Load(opts.Path); err == nil {
		if opts.Profile != "" {
			p, ok := cfg.Profiles[opts.Profile]
			if !ok {
				return "", fmt.Errorf("profile %q not found (available: %s)",
					opts.Profile, strings.Join(cfg.Names(), ", "))
			}
			if !configured(p.APIKey, opts.Placeholder) {
				return "", fmt.Errorf("api key for profile %q is not configured; edit %s",
					opts.Profile, opts.Path)
			}
			return p.APIKey, nil
		}
		if p, ok := cfg.Profiles[cfg.Default]; ok && cfg.Default != "" {
			if !configured(p.APIKey, opts.Placeholder) {
				return "", fmt.Errorf("api key for default profile %q is not configured; edit %s and replace the placeholder",
					cfg.Default, opts.Path)
			}
			return p.APIKey, nil
		}
	} else if opts.Profile != "" {
		return "", fmt.Errorf("profile %q requested but %s could not be read: %w",
			opts.Profile, opts.Path, err)
	}

	if key := os.Getenv(opts.EnvVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf(`no API key found
Option 1: Configure profiles (recommended)
  Edit: %s
Option 2: Set the environment variable
  export %s='...'`, opts.Path, opts.EnvVar)
}

func configured(key, placeholder string) bool {
	if key == "" {
		return false
	}
	return placeholder == "" || !strings.HasPrefix(key, placeholder)
}
