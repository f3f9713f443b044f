package lexcrawl_test

import (
	"testing"

	"github.com/lexcrawl/lexcrawl"
	"github.com/stretchr/testify/assert"
)

func TestIsArticleURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"article path", "https://news.example.com/2024/05/big-story", true},
		{"empty URL", "", false},
		{"root path", "https://example.com/", false},
		{"empty path", "https://example.com", false},
		{"category listing", "https://example.com/category/politics/", false},
		{"tag listing", "https://example.com/tag/sports/", false},
		{"author page", "https://example.com/author/jdoe/", false},
		{"pagination", "https://example.com/page/2/", false},
		{"wp admin", "https://example.com/wp-admin/options.php", false},
		{"about page", "https://example.com/about", false},
		{"off-site host", "https://other.org/2024/05/big-story", false},
		{"exclusion is case-insensitive", "https://example.com/CATEGORY/politics/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lexcrawl.IsArticleURL(tt.url, "example.com"))
		})
	}

	t.Run("domain match is substring containment", func(t *testing.T) {
		t.Parallel()

		// Subdomains pass because the host merely has to contain the
		// base domain.
		assert.True(t, lexcrawl.IsArticleURL("https://blog.example.com/post/1", "example.com"))
	})
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", lexcrawl.DomainOf("https://www.example.com/news"))
	assert.Equal(t, "news.example.com", lexcrawl.DomainOf("https://news.example.com/"))
	assert.Empty(t, lexcrawl.DomainOf("://bad"))
}

func TestSiteNameFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example", lexcrawl.SiteNameFor("example.com"))
	assert.Equal(t, "localhost", lexcrawl.SiteNameFor("localhost"))
}
