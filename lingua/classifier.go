// Package lingua identifies languages with github.com/pemistahl/lingua-go.
package lingua

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/lexcrawl/lexcrawl"
)

// Classifier adapts a lingua detector to the lexcrawl.LanguageClassifier
// capability. Language codes are lowercase ISO 639-1. The detector is
// built once and safe for concurrent use.
type Classifier struct {
	detector lingua.LanguageDetector
}

var _ lexcrawl.LanguageClassifier = (*Classifier)(nil)

// NewClassifier builds a detector for the given languages, or for every
// language lingua knows when none are given. Models are preloaded so the
// first classification does not pay the loading cost mid-crawl.
func NewClassifier(languages ...lingua.Language) *Classifier {
	var builder lingua.LanguageDetectorBuilder
	if len(languages) == 0 {
		builder = lingua.NewLanguageDetectorBuilder().FromAllLanguages()
	} else {
		builder = lingua.NewLanguageDetectorBuilder().FromLanguages(languages...)
	}
	return &Classifier{
		detector: builder.WithPreloadedLanguageModels().Build(),
	}
}

// Predict returns up to k ranked predictions for the text.
func (c *Classifier) Predict(text string, k int) ([]lexcrawl.Prediction, error) {
	values := c.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "no language predictions for text")
	}
	if k > len(values) {
		k = len(values)
	}

	predictions := make([]lexcrawl.Prediction, 0, k)
	for _, v := range values[:k] {
		predictions = append(predictions, lexcrawl.Prediction{
			Code:       strings.ToLower(v.Language().IsoCode639_1().String()),
			Confidence: v.Value(),
		})
	}
	return predictions, nil
}
