package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/lexcrawl/lexcrawl"
)

// Ensure ArticleFile implements lexcrawl.ArticleWriter at compile time.
var _ lexcrawl.ArticleWriter = (*ArticleFile)(nil)

// ArticleFile appends accepted articles to a JSON Lines file. Writes are
// serialized; the article spider calls WriteArticle from several
// goroutines.
type ArticleFile struct {
	mu sync.Mutex
	f  *os.File
}

// NewArticleFile opens the file for appending, creating it and its parent
// directories as needed.
func NewArticleFile(path string) (*ArticleFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot create article dir: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot open article file: %v", err)
	}
	return &ArticleFile{f: f}, nil
}

// WriteArticle appends one article as a JSON line.
func (w *ArticleFile) WriteArticle(ctx context.Context, article *lexcrawl.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	line, err := json.Marshal(article)
	if err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot encode article: %v", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.f.Write(line); err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot write article: %v", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *ArticleFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
