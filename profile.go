package lexcrawl

// CMSProfile bundles the five ordered candidate lists for one platform
// family. Profiles are immutable package-level data; selection among them
// is mutually exclusive per page via DetectCMS.
type CMSProfile struct {
	CMS          CMS
	ArticleLinks []SelectorCandidate
	Pagination   []SelectorCandidate
	ArticleTitle []SelectorCandidate
	ArticleBody  []SelectorCandidate
	ArticleDate  []SelectorCandidate
}

// Candidates returns the profile's ordered list for a field.
func (p CMSProfile) Candidates(field SelectorField) []SelectorCandidate {
	switch field {
	case FieldArticleLinks:
		return p.ArticleLinks
	case FieldPagination:
		return p.Pagination
	case FieldArticleTitle:
		return p.ArticleTitle
	case FieldArticleBody:
		return p.ArticleBody
	case FieldArticleDate:
		return p.ArticleDate
	}
	return nil
}

// ProfileFor returns the candidate profile for a platform family.
// Unknown tags fall back to the generic profile.
func ProfileFor(cms CMS) CMSProfile {
	switch cms {
	case CMSWordPress:
		return wordpressProfile
	case CMSDrupal:
		return drupalProfile
	case CMSJoomla:
		return joomlaProfile
	case CMSMedium:
		return mediumProfile
	case CMSGhost:
		return ghostProfile
	default:
		return genericProfile
	}
}

// Profiles returns all six profiles, for exhaustive enumeration in tests.
func Profiles() []CMSProfile {
	return []CMSProfile{
		wordpressProfile,
		drupalProfile,
		joomlaProfile,
		mediumProfile,
		ghostProfile,
		genericProfile,
	}
}

var wordpressProfile = CMSProfile{
	CMS: CMSWordPress,
	ArticleLinks: []SelectorCandidate{
		CSSHref("h2.entry-title a"),
		CSSHref("h3.entry-title a"),
		CSSHref("h1.entry-title a"),
		CSSHref("article h2 a"),
		CSSHref("article h3 a"),
		CSSHref(".post-title a"),
		CSSHref(".entry-header a"),
		CSSHref("article.post a[rel='bookmark']"),
		CSSHref(".post .entry-title a"),
		CSSHref(".hentry h2 a"),
		CSSHref(".type-post h2 a"),
		CSSHref(".post-grid article a"),
		CSSHref(".blog-post a.post-link"),
		CSSHref(".posts-list .post-item a"),
		CSSHref("article .post-thumbnail a"),
		CSSHref(".entry-featured-image-url"),
	},
	Pagination: []SelectorCandidate{
		CSSHref("a.next.page-numbers"),
		CSSHref(".nav-previous a"),
		CSSHref(".nav-next a"),
		CSSHref(`a[rel="next"]`),
		CSSHref(".pagination .next"),
		CSSHref(".wp-pagenavi a.nextpostslink"),
		CSSHref(".navigation .nav-links a.next"),
		CSSHref(".nav-links a[rel='next']"),
		CSSHref(`a:contains("Older posts")`),
		CSSHref(`a:contains("Next")`),
		CSSHref(".older-posts a"),
	},
	ArticleTitle: []SelectorCandidate{
		CSSText("h1.entry-title"),
		CSSText("h1.post-title"),
		CSSText("article h1"),
		CSSText("h1.single-title"),
		CSSText(".article-title h1"),
		CSSText("header.entry-header h1"),
		CSSAttr(`meta[property="og:title"]`, "content"),
	},
	ArticleBody: []SelectorCandidate{
		XPathText(`//div[contains(@class, "entry-content")]//p//text()`),
		XPathText(`//div[contains(@class, "post-content")]//p//text()`),
		XPathText(`//div[contains(@class, "article-content")]//p//text()`),
		XPathText(`//article//p//text()`),
		XPathText(`//div[contains(@class, "entry-content")]//li//text()`),
		XPathText(`//div[contains(@class, "entry-content")]//blockquote//text()`),
		XPathText(`//div[contains(@class, "single-content")]//p//text()`),
		XPathText(`//main[contains(@class, "site-main")]//p//text()`),
	},
	ArticleDate: []SelectorCandidate{
		CSSAttr(`meta[property="article:published_time"]`, "content"),
		CSSAttr(`meta[name="publish_date"]`, "content"),
		CSSAttr("time", "datetime"),
		CSSAttr("time.entry-date", "datetime"),
		CSSAttr(".entry-date", "datetime"),
		CSSAttr(".post-date", "datetime"),
		CSSAttr(".published", "datetime"),
		CSSAttr("span.posted-on time", "datetime"),
		CSSAttr(`meta[property="article:published"]`, "content"),
	},
}

var drupalProfile = CMSProfile{
	CMS: CMSDrupal,
	ArticleLinks: []SelectorCandidate{
		CSSHref(".node-title a"),
		CSSHref(".views-field-title a"),
		CSSHref("article h2 a"),
		CSSHref(".field-name-title a"),
		CSSHref(".node-article h2 a"),
	},
	Pagination: []SelectorCandidate{
		CSSHref("li.pager-next a"),
		CSSHref(".pager-next a"),
		CSSHref(`a[rel="next"]`),
		CSSHref(".pagination a.next"),
	},
	ArticleTitle: []SelectorCandidate{
		CSSText("h1.page-title"),
		CSSText(".node-title"),
		CSSText("article h1"),
		CSSAttr(`meta[property="og:title"]`, "content"),
	},
	ArticleBody: []SelectorCandidate{
		XPathText(`//div[contains(@class, "field-type-text-with-summary")]//p//text()`),
		XPathText(`//div[contains(@class, "field-name-body")]//p//text()`),
		XPathText(`//article//p//text()`),
		XPathText(`//div[contains(@class, "node-content")]//p//text()`),
	},
	ArticleDate: []SelectorCandidate{
		CSSAttr(`meta[property="article:published_time"]`, "content"),
		CSSAttr(".submitted time", "datetime"),
		CSSAttr(".field-name-post-date", "datetime"),
		CSSAttr("time", "datetime"),
	},
}

var joomlaProfile = CMSProfile{
	CMS: CMSJoomla,
	ArticleLinks: []SelectorCandidate{
		CSSHref(".item-title a"),
		CSSHref(".blog-item h2 a"),
		CSSHref("article h2 a"),
		CSSHref(".category-list .list-title a"),
	},
	Pagination: []SelectorCandidate{
		CSSHref(".pagination .next a"),
		CSSHref(`a[rel="next"]`),
		CSSHref(".pagenav .pagenav-next a"),
	},
	ArticleTitle: []SelectorCandidate{
		CSSText("h1.page-header"),
		CSSText(".item-page h2"),
		CSSText("article h1"),
	},
	ArticleBody: []SelectorCandidate{
		XPathText(`//div[contains(@class, "item-page")]//p//text()`),
		XPathText(`//article//p//text()`),
		XPathText(`//div[@itemprop="articleBody"]//p//text()`),
	},
	ArticleDate: []SelectorCandidate{
		CSSAttr(`time[itemprop="datePublished"]`, "datetime"),
		CSSAttr(".create", "datetime"),
		CSSAttr(`meta[property="article:published_time"]`, "content"),
	},
}

var mediumProfile = CMSProfile{
	CMS: CMSMedium,
	ArticleLinks: []SelectorCandidate{
		CSSHref("article h2 a"),
		CSSHref("div[data-post-id] a"),
		CSSHref(`.streamItem a[data-action="open-post"]`),
	},
	Pagination: []SelectorCandidate{
		CSSHref(`a:contains("Load more")`),
	},
	ArticleTitle: []SelectorCandidate{
		CSSText("h1"),
		CSSAttr(`meta[property="og:title"]`, "content"),
		CSSText("article h1"),
	},
	ArticleBody: []SelectorCandidate{
		XPathText(`//article//section//p//text()`),
		XPathText(`//div[@class="section-content"]//p//text()`),
	},
	ArticleDate: []SelectorCandidate{
		CSSAttr(`meta[property="article:published_time"]`, "content"),
		CSSAttr("time", "datetime"),
	},
}

var ghostProfile = CMSProfile{
	CMS: CMSGhost,
	ArticleLinks: []SelectorCandidate{
		CSSHref(".post-card-title a"),
		CSSHref("article.post-card a.post-card-content-link"),
		CSSHref(".post-feed article a"),
	},
	Pagination: []SelectorCandidate{
		CSSHref(`link[rel="next"]`),
		CSSHref(".pagination-next"),
		CSSHref(`a[rel="next"]`),
	},
	ArticleTitle: []SelectorCandidate{
		CSSText("h1.post-title"),
		CSSText(".article-title"),
		CSSAttr(`meta[property="og:title"]`, "content"),
	},
	ArticleBody: []SelectorCandidate{
		XPathText(`//div[contains(@class, "post-content")]//p//text()`),
		XPathText(`//article//p//text()`),
	},
	ArticleDate: []SelectorCandidate{
		CSSAttr("time.post-date", "datetime"),
		CSSAttr(`meta[property="article:published_time"]`, "content"),
	},
}

var genericProfile = CMSProfile{
	CMS: CMSGeneric,
	ArticleLinks: []SelectorCandidate{
		CSSHref("article h2 a"),
		CSSHref("article h3 a"),
		CSSHref("article header a"),
		CSSHref(".post h2 a"),
		CSSHref(".article h2 a"),
		CSSHref(".blog-post h2 a"),
		CSSHref(".entry h2 a"),
		CSSHref(".post-title a"),
		CSSHref(".article-title a"),
		CSSHref(".entry-title a"),
		CSSHref(".title a"),
		CSSHref("h2 a"),
		CSSHref("h3 a"),
		CSSHref(".card h2 a"),
		CSSHref(".card-title a"),
		CSSHref(".grid-item a"),
		CSSHref(".post-list article a"),
		CSSHref(".article-list .item a"),
		CSSHref(`article[itemtype*="Article"] a`),
		CSSHref(`div[itemtype*="BlogPosting"] a`),
	},
	Pagination: []SelectorCandidate{
		CSSHref(`a[rel="next"]`),
		CSSHref(`link[rel="next"]`),
		CSSHref(".pagination a.next"),
		CSSHref(".pagination .next a"),
		CSSHref(".pager .next a"),
		CSSHref("a.next"),
		CSSHref(".next-page"),
		CSSHref(`a:contains("Next")`),
		CSSHref(`a:contains("Older")`),
		CSSHref(`a:contains("More")`),
		CSSHref(`a:contains("→")`),
		CSSHref(".nav-next a"),
		CSSHref(".navigation-next"),
		CSSHref(`nav a[aria-label="Next"]`),
		CSSHref(".pagination a:last-child"),
	},
	ArticleTitle: []SelectorCandidate{
		CSSText("h1"),
		CSSText("article h1"),
		CSSText("main h1"),
		CSSText("header h1"),
		CSSText(".article-title"),
		CSSText(".post-title"),
		CSSText(".entry-title"),
		CSSText(".title h1"),
		CSSText(".headline"),
		CSSAttr(`meta[property="og:title"]`, "content"),
		CSSAttr(`meta[name="title"]`, "content"),
		CSSAttr(`meta[property="twitter:title"]`, "content"),
		CSSText(`h1[itemprop="headline"]`),
	},
	ArticleBody: []SelectorCandidate{
		XPathText(`//article//p//text()`),
		XPathText(`//main//p//text()`),
		XPathText(`//div[contains(@class, "content")]//p//text()`),
		XPathText(`//div[contains(@class, "article")]//p//text()`),
		XPathText(`//div[contains(@class, "post")]//p//text()`),
		XPathText(`//div[contains(@class, "entry")]//p//text()`),
		XPathText(`//div[contains(@class, "body")]//p//text()`),
		XPathText(`//div[contains(@class, "text")]//p//text()`),
		XPathText(`//div[@itemprop="articleBody"]//p//text()`),
		XPathText(`//article//li//text()`),
		XPathText(`//article//blockquote//text()`),
		XPathText(`//div[contains(@class, "content")]//li//text()`),
		XPathText(`//p//text()`),
	},
	ArticleDate: []SelectorCandidate{
		CSSAttr(`meta[property="article:published_time"]`, "content"),
		CSSAttr(`meta[property="article:published"]`, "content"),
		CSSAttr(`meta[name="publish_date"]`, "content"),
		CSSAttr(`meta[name="date"]`, "content"),
		CSSAttr(`meta[property="og:updated_time"]`, "content"),
		CSSAttr("time", "datetime"),
		CSSAttr(`time[itemprop="datePublished"]`, "datetime"),
		CSSAttr("time[datetime]", "datetime"),
		CSSAttr(".date", "datetime"),
		CSSAttr(".publish-date", "datetime"),
		CSSAttr(".published", "datetime"),
		CSSAttr(".post-date", "datetime"),
		CSSAttr(".entry-date", "datetime"),
		CSSAttr(".article-date", "datetime"),
		CSSText(".date"),
		CSSText(".published"),
		CSSText(`time[itemprop="datePublished"]`),
	},
}
