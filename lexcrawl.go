// Package lexcrawl provides a targeted-language web corpus crawler.
// It discovers seed sites via search-engine scraping, generates and
// validates extraction configs for arbitrary news/blog sites, crawls
// articles and PDFs, and keeps only content that a language-identification
// model attributes to the target language.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package lexcrawl
