package lexcrawl

import "strings"

// CMS identifies a publishing platform family.
type CMS string

// Supported platform families. CMSGeneric is the fallback when no
// signature matches.
const (
	CMSWordPress CMS = "wordpress"
	CMSDrupal    CMS = "drupal"
	CMSJoomla    CMS = "joomla"
	CMSMedium    CMS = "medium"
	CMSGhost     CMS = "ghost"
	CMSGeneric   CMS = "generic"
)

// cmsSignatures lists markup substrings that identify each platform.
// Order is significant: the first platform with any matching signature
// wins, so more specific platforms are checked before ambiguous ones.
var cmsSignatures = []struct {
	cms        CMS
	signatures []string
}{
	{CMSWordPress, []string{"wp-content", "wordpress"}},
	{CMSDrupal, []string{"drupal.js", "data-drupal-selector"}},
	{CMSJoomla, []string{"joomla-favicon.svg", "com_content"}},
	{CMSGhost, []string{"ghost-search-field", "/ghost/api/"}},
	{CMSMedium, []string{`property="al:android:app_name" content="medium"`}},
}

// DetectCMS classifies page markup into a platform family by scanning for
// signature substrings, case-insensitively. It always returns a tag;
// CMSGeneric when nothing matches.
func DetectCMS(markup string) CMS {
	lower := strings.ToLower(markup)
	for _, entry := range cmsSignatures {
		for _, sig := range entry.signatures {
			if strings.Contains(lower, sig) {
				return entry.cms
			}
		}
	}
	return CMSGeneric
}
