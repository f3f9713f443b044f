// Package fs provides file-based storage for crawl inputs and outputs:
// seed URL lists, site configs, accepted articles, and downloaded PDFs.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lexcrawl/lexcrawl"
)

// ReadSeeds reads a newline-delimited URL list. Blank lines and lines
// starting with # are skipped.
func ReadSeeds(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot read seed file: %v", err)
	}

	var seeds []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, line)
	}
	return seeds, nil
}

// WriteSeeds writes URLs one per line, creating parent directories as
// needed.
func WriteSeeds(path string, urls []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot create seed dir: %v", err)
	}
	var b strings.Builder
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		b.WriteString(u)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot write seed file: %v", err)
	}
	return nil
}
