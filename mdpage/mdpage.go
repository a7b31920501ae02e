// Package mdpage reads and writes markdown files with YAML front matter.
package mdpage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creachadair/atomicfile"
	yaml "gopkg.in/yaml.v3"
)

// Write writes a markdown file at path with header encoded as YAML front
// matter followed by body. An existing file at path is replaced atomically.
func Write(path string, header interface{}, body string) error {
	f, err := atomicfile.New(path, 0644)
	if err != nil {
		return err
	}
	defer f.Cancel()
	fmt.Fprintln(f, "---")
	data, err := yaml.Marshal(header)
	if err != nil {
		return err
	}
	f.Write(data)
	fmt.Fprintln(f, "---")
	if body != "" {
		fmt.Fprintln(f, body)
	}
	return f.Close()
}

// Parse splits data into front matter and body, decoding the front matter
// into header. Pass a nil header to skip decoding.
func Parse(data []byte, header interface{}) (body string, err error) {
	chunks := strings.SplitN(string(data), "---\n", 3)
	if len(chunks) != 3 || chunks[0] != "" {
		return "", errors.New("invalid front matter format")
	}
	if header != nil {
		if err := yaml.Unmarshal([]byte(chunks[1]), header); err != nil {
			return "", fmt.Errorf("decoding front matter: %w", err)
		}
	}
	return strings.TrimSpace(chunks[2]), nil
}

// Load reads the markdown file at path and parses it as Parse does.
func Load(path string, header interface{}) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Parse(data, header)
}
