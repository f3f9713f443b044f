package mock

import (
	"github.com/lexcrawl/lexcrawl"
)

var _ lexcrawl.LanguageClassifier = (*LanguageClassifier)(nil)

// LanguageClassifier is a mock implementation of lexcrawl.LanguageClassifier.
type LanguageClassifier struct {
	PredictFn func(text string, k int) ([]lexcrawl.Prediction, error)
}

func (c *LanguageClassifier) Predict(text string, k int) ([]lexcrawl.Prediction, error) {
	return c.PredictFn(text, k)
}

var _ lexcrawl.LanguageValidator = (*LanguageValidator)(nil)

// LanguageValidator is a mock implementation of lexcrawl.LanguageValidator.
type LanguageValidator struct {
	ValidateFn func(text string, targetCodes []string, lenient bool) lexcrawl.LanguageDecision
}

func (v *LanguageValidator) Validate(text string, targetCodes []string, lenient bool) lexcrawl.LanguageDecision {
	return v.ValidateFn(text, targetCodes, lenient)
}
