package lexcrawl

import (
	"regexp"
	"strings"
)

// SelectorKind distinguishes how a candidate's matches are turned into
// sample values.
type SelectorKind int

// Selector kinds. The kind is fixed at data-definition time rather than
// sniffed from the expression string at evaluation time.
const (
	// KindCSSText extracts trimmed inner text from CSS matches.
	KindCSSText SelectorKind = iota
	// KindCSSAttr extracts a named attribute value from CSS matches.
	KindCSSAttr
	// KindCSSHref extracts href values from CSS matches, resolving
	// relative URLs against a base URL when one is supplied.
	KindCSSHref
	// KindXPathText evaluates a structural path query and collects
	// matching text nodes.
	KindXPathText
	// KindCSSBare matches elements without extracting sample values.
	KindCSSBare
)

// SelectorCandidate is one ranked extraction rule: an expression plus the
// semantics of what it yields. Candidates are statically defined per CMS
// profile and never mutated at runtime.
type SelectorCandidate struct {
	// Expr is a CSS selector, or a structural path query for KindXPathText.
	Expr string

	// Kind determines extraction semantics.
	Kind SelectorKind

	// Attr is the attribute name for KindCSSAttr.
	Attr string
}

// CSSText returns a candidate extracting inner text from CSS matches.
func CSSText(expr string) SelectorCandidate {
	return SelectorCandidate{Expr: expr, Kind: KindCSSText}
}

// CSSAttr returns a candidate extracting the named attribute from CSS matches.
func CSSAttr(expr, attr string) SelectorCandidate {
	return SelectorCandidate{Expr: expr, Kind: KindCSSAttr, Attr: attr}
}

// CSSHref returns a candidate extracting resolved href values from CSS matches.
func CSSHref(expr string) SelectorCandidate {
	return SelectorCandidate{Expr: expr, Kind: KindCSSHref}
}

// XPathText returns a candidate collecting text nodes from a structural
// path query.
func XPathText(expr string) SelectorCandidate {
	return SelectorCandidate{Expr: expr, Kind: KindXPathText}
}

// String renders the candidate in its persisted form: the CSS expression
// with a "::text" or "::attr(name)" suffix, or the raw path query. This is
// the format stored in site-config files and consumed by crawl drivers.
func (c SelectorCandidate) String() string {
	switch c.Kind {
	case KindCSSText:
		return c.Expr + "::text"
	case KindCSSAttr:
		return c.Expr + "::attr(" + c.Attr + ")"
	case KindCSSHref:
		return c.Expr + "::attr(href)"
	default:
		return c.Expr
	}
}

var attrSuffixRe = regexp.MustCompile(`::attr\((\w+)\)$`)

// ParseSelector recovers a SelectorCandidate from its persisted form.
// Expressions starting with "//" are structural path queries; a trailing
// "::text" or "::attr(name)" selects the extraction kind; anything else is
// a bare CSS match.
func ParseSelector(expr string) (SelectorCandidate, error) {
	if expr == "" {
		return SelectorCandidate{}, Errorf(EINVALID, "empty selector expression")
	}
	if strings.HasPrefix(expr, "//") {
		return XPathText(expr), nil
	}
	if m := attrSuffixRe.FindStringSubmatch(expr); m != nil {
		base := strings.TrimSuffix(expr, m[0])
		if m[1] == "href" {
			return CSSHref(base), nil
		}
		return CSSAttr(base, m[1]), nil
	}
	if strings.HasSuffix(expr, "::text") {
		return CSSText(strings.TrimSuffix(expr, "::text")), nil
	}
	return SelectorCandidate{Expr: expr, Kind: KindCSSBare}, nil
}

// TestResult reports the outcome of executing one candidate against a page.
type TestResult struct {
	// OK is true when the candidate produced at least one usable result.
	OK bool

	// Count is the number of samples collected, except for bare CSS
	// matches where it is the matched element count.
	Count int

	// Samples holds extracted values, capped per kind.
	Samples []string
}

// SelectorField names one of the five config fields a candidate list
// targets. Field-specific validation in the chooser keys off this.
type SelectorField string

// Config fields with candidate lists.
const (
	FieldArticleLinks SelectorField = "articleLinks"
	FieldPagination   SelectorField = "pagination"
	FieldArticleTitle SelectorField = "articleTitle"
	FieldArticleBody  SelectorField = "articleBody"
	FieldArticleDate  SelectorField = "articleDate"
)

// SelectorTester executes a single candidate against page markup.
// Implementations must recover from malformed expressions and report them
// as a failed result rather than an error.
type SelectorTester interface {
	Test(candidate SelectorCandidate, pageHTML string, baseURL string) TestResult
}

// SelectorChooser picks the best working candidate from a ranked list.
// The returned candidate is never empty when the list is non-empty: when no
// candidate passes validation the first candidate is returned with a zero
// count, so every field always has some selector recorded.
type SelectorChooser interface {
	ChooseBest(pageHTML string, candidates []SelectorCandidate, field SelectorField, baseURL, baseDomain string) (SelectorCandidate, int, []string)
}
