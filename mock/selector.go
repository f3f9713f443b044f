package mock

import (
	"github.com/lexcrawl/lexcrawl"
)

var _ lexcrawl.SelectorTester = (*SelectorTester)(nil)

// SelectorTester is a mock implementation of lexcrawl.SelectorTester.
type SelectorTester struct {
	TestFn func(candidate lexcrawl.SelectorCandidate, pageHTML string, baseURL string) lexcrawl.TestResult
}

func (t *SelectorTester) Test(candidate lexcrawl.SelectorCandidate, pageHTML string, baseURL string) lexcrawl.TestResult {
	return t.TestFn(candidate, pageHTML, baseURL)
}

var _ lexcrawl.SelectorChooser = (*SelectorChooser)(nil)

// SelectorChooser is a mock implementation of lexcrawl.SelectorChooser.
type SelectorChooser struct {
	ChooseBestFn func(pageHTML string, candidates []lexcrawl.SelectorCandidate, field lexcrawl.SelectorField, baseURL, baseDomain string) (lexcrawl.SelectorCandidate, int, []string)
}

func (c *SelectorChooser) ChooseBest(pageHTML string, candidates []lexcrawl.SelectorCandidate, field lexcrawl.SelectorField, baseURL, baseDomain string) (lexcrawl.SelectorCandidate, int, []string) {
	return c.ChooseBestFn(pageHTML, candidates, field, baseURL, baseDomain)
}
