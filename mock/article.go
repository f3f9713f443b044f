package mock

import (
	"context"

	"github.com/lexcrawl/lexcrawl"
)

var _ lexcrawl.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of lexcrawl.ArticleService.
type ArticleService struct {
	WriteArticleFn func(ctx context.Context, article *lexcrawl.Article) error
	FindArticlesFn func(ctx context.Context, filter lexcrawl.ArticleFilter) ([]*lexcrawl.Article, error)
}

func (s *ArticleService) WriteArticle(ctx context.Context, article *lexcrawl.Article) error {
	return s.WriteArticleFn(ctx, article)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter lexcrawl.ArticleFilter) ([]*lexcrawl.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

var _ lexcrawl.PDFStore = (*PDFStore)(nil)

// PDFStore is a mock implementation of lexcrawl.PDFStore.
type PDFStore struct {
	SavePDFFn func(ctx context.Context, url string, data []byte) (string, string, error)
}

func (s *PDFStore) SavePDF(ctx context.Context, url string, data []byte) (string, string, error) {
	return s.SavePDFFn(ctx, url, data)
}

var _ lexcrawl.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of lexcrawl.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(data []byte) (string, error)
}

func (e *TextExtractor) ExtractText(data []byte) (string, error) {
	return e.ExtractTextFn(data)
}
