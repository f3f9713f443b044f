package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/lexcrawl/lexcrawl"
)

// Ensure PDFStore implements lexcrawl.PDFStore at compile time.
var _ lexcrawl.PDFStore = (*PDFStore)(nil)

const maxStemLength = 50

// PDFStore saves PDF payloads to a directory under collision-safe
// filenames derived from the source URL.
type PDFStore struct {
	dir string
}

// NewPDFStore creates a PDFStore writing into dir.
func NewPDFStore(dir string) *PDFStore {
	return &PDFStore{dir: dir}
}

// SavePDF writes the payload and returns the chosen filename and its full
// path. When a file with the derived name already exists, a counter suffix
// is appended.
func (s *PDFStore) SavePDF(ctx context.Context, rawURL string, data []byte) (string, string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", "", lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot create download dir: %v", err)
	}

	filename := safeFilename(rawURL)
	fullPath := filepath.Join(s.dir, filename)

	stem := strings.TrimSuffix(filename, ".pdf")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			break
		}
		filename = fmt.Sprintf("%s_%d.pdf", stem, counter)
		fullPath = filepath.Join(s.dir, filename)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", "", lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot write %s: %v", fullPath, err)
	}
	return filename, fullPath, nil
}

// safeFilename derives a filesystem-safe .pdf filename from a URL. Hosting
// platforms that end paths in /file get the preceding path segment; URLs
// with no usable basename get one derived from a hash of the URL.
func safeFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Sprintf("document_%08x.pdf", xxhash.Sum64String(rawURL))
	}

	var filename string
	if strings.HasSuffix(u.Path, "/file") {
		if parts := pathSegments(u.Path); len(parts) > 0 {
			filename = parts[len(parts)-1] + ".pdf"
		} else {
			filename = "document.pdf"
		}
	} else {
		filename = path.Base(u.Path)
		if filename == "/" || filename == "." {
			filename = ""
		}
	}

	if filename == "" || filename == ".pdf" {
		stem := "document"
		if parts := pathSegments(u.Path); len(parts) > 0 {
			stem = parts[len(parts)-1]
			if len(stem) > maxStemLength {
				stem = stem[:maxStemLength]
			}
		}
		filename = fmt.Sprintf("%s_%08x.pdf", stem, xxhash.Sum64String(rawURL))
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}

	return strings.TrimSpace(strings.Map(sanitizeRune, filename))
}

func pathSegments(p string) []string {
	var parts []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" && seg != "file" {
			parts = append(parts, seg)
		}
	}
	return parts
}

// sanitizeRune keeps alphanumerics and a few safe punctuation characters.
func sanitizeRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.', r == '_', r == '-', r == ' ':
		return r
	}
	return -1
}
