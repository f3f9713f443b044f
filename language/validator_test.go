package language_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/language"
	"github.com/lexcrawl/lexcrawl/mock"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixed returns a classifier that always yields the given predictions.
func fixed(predictions ...lexcrawl.Prediction) *mock.LanguageClassifier {
	return &mock.LanguageClassifier{
		PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
			return predictions, nil
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("empty and whitespace-only text is rejected as empty", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(fixed(), language.WithLogger(discard()))

		assert.Equal(t, lexcrawl.LanguageDecision{Code: "empty"}, v.Validate("", []string{"tl"}, false))
		assert.Equal(t, lexcrawl.LanguageDecision{Code: "empty"}, v.Validate("   \n\t ", []string{"tl"}, false))
	})

	t.Run("length gate boundary", func(t *testing.T) {
		t.Parallel()

		invoked := false
		classifier := &mock.LanguageClassifier{
			PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
				invoked = true
				return []lexcrawl.Prediction{{Code: "tl", Confidence: 0.9}}, nil
			},
		}
		v := language.NewValidator(classifier, language.WithLogger(discard()))

		decision := v.Validate(strings.Repeat("a", 19), []string{"tl"}, false)
		assert.Equal(t, "too_short", decision.Code)
		assert.False(t, invoked)

		decision = v.Validate(strings.Repeat("a", 20), []string{"tl"}, false)
		assert.True(t, invoked)
		assert.True(t, decision.IsTarget)
	})

	t.Run("lenient mode halves the length gate", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(fixed(lexcrawl.Prediction{Code: "tl", Confidence: 0.9}),
			language.WithLogger(discard()))

		assert.Equal(t, "too_short", v.Validate(strings.Repeat("a", 9), []string{"tl"}, true).Code)
		assert.True(t, v.Validate(strings.Repeat("a", 10), []string{"tl"}, true).IsTarget)
	})

	t.Run("target top prediction above threshold is accepted", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(fixed(lexcrawl.Prediction{Code: "tl", Confidence: 0.85}),
			language.WithLogger(discard()))

		decision := v.Validate(strings.Repeat("ito ay pagsubok ", 5), []string{"tl", "fil"}, false)

		assert.Equal(t, lexcrawl.LanguageDecision{IsTarget: true, Code: "tl", Confidence: 0.85}, decision)
	})

	t.Run("decisions are deterministic for identical input", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(fixed(lexcrawl.Prediction{Code: "tl", Confidence: 0.85}),
			language.WithLogger(discard()))
		text := strings.Repeat("ito ay pagsubok ", 5)

		first := v.Validate(text, []string{"tl"}, false)
		second := v.Validate(text, []string{"tl"}, false)

		assert.Equal(t, first, second)
	})

	t.Run("target top prediction below threshold is rejected", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(fixed(lexcrawl.Prediction{Code: "tl", Confidence: 0.3}),
			language.WithLogger(discard()))

		decision := v.Validate(strings.Repeat("a", 40), []string{"tl"}, false)

		assert.Equal(t, lexcrawl.LanguageDecision{IsTarget: false, Code: "tl", Confidence: 0.3}, decision)
	})

	t.Run("lenient mode accepts a target top match at any confidence", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(fixed(lexcrawl.Prediction{Code: "tl", Confidence: 0.01}),
			language.WithLogger(discard()))

		decision := v.Validate(strings.Repeat("a", 40), []string{"tl"}, true)

		assert.True(t, decision.IsTarget)
		assert.Equal(t, 0.01, decision.Confidence)
	})

	t.Run("secondary target prediction short-circuits past the threshold", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(
			fixed(
				lexcrawl.Prediction{Code: "en", Confidence: 0.9},
				lexcrawl.Prediction{Code: "tl", Confidence: 0.55},
			),
			language.WithConfidenceThreshold(0.6),
			language.WithLogger(discard()),
		)

		// 0.55 >= 0.6*0.8, so the second-ranked language wins despite the
		// dominant off-target top prediction.
		decision := v.Validate(strings.Repeat("a", 40), []string{"tl", "fil"}, false)

		assert.Equal(t, lexcrawl.LanguageDecision{IsTarget: true, Code: "tl", Confidence: 0.55}, decision)
	})

	t.Run("secondary prediction below the reduced threshold does not rescue", func(t *testing.T) {
		t.Parallel()

		v := language.NewValidator(
			fixed(
				lexcrawl.Prediction{Code: "en", Confidence: 0.9},
				lexcrawl.Prediction{Code: "tl", Confidence: 0.4},
			),
			language.WithConfidenceThreshold(0.6),
			language.WithLogger(discard()),
		)

		decision := v.Validate(strings.Repeat("a", 40), []string{"tl"}, false)

		assert.Equal(t, lexcrawl.LanguageDecision{IsTarget: false, Code: "en", Confidence: 0.9}, decision)
	})

	t.Run("classifier failure becomes an error decision", func(t *testing.T) {
		t.Parallel()

		classifier := &mock.LanguageClassifier{
			PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
				return nil, lexcrawl.Errorf(lexcrawl.EINTERNAL, "model not loaded")
			},
		}
		v := language.NewValidator(classifier, language.WithLogger(discard()))

		decision := v.Validate(strings.Repeat("a", 40), []string{"tl"}, false)

		assert.Equal(t, lexcrawl.LanguageDecision{Code: "error"}, decision)
	})

	t.Run("long texts are sampled from start, middle and end", func(t *testing.T) {
		t.Parallel()

		var got string
		classifier := &mock.LanguageClassifier{
			PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
				got = text
				return []lexcrawl.Prediction{{Code: "tl", Confidence: 0.9}}, nil
			},
		}
		v := language.NewValidator(classifier,
			language.WithSampleSize(30),
			language.WithLogger(discard()))

		text := strings.Repeat("s", 40) + strings.Repeat("m", 40) + strings.Repeat("e", 40)
		v.Validate(text, []string{"tl"}, false)

		// Three 10-rune chunks joined by single spaces.
		assert.Len(t, got, 32)
		assert.True(t, strings.HasPrefix(got, "ssssssssss"))
		assert.True(t, strings.HasSuffix(got, "eeeeeeeeee"))
		assert.Contains(t, got, "mmmmmmmmmm")
	})

	t.Run("sampling collapses runs of whitespace", func(t *testing.T) {
		t.Parallel()

		var got string
		classifier := &mock.LanguageClassifier{
			PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
				got = text
				return []lexcrawl.Prediction{{Code: "tl", Confidence: 0.9}}, nil
			},
		}
		v := language.NewValidator(classifier, language.WithLogger(discard()))

		v.Validate("one\n\ntwo\t\t three    four words here padded", []string{"tl"}, false)

		assert.Equal(t, "one two three four words here padded", got)
	})
}

func TestValidator_ValidateSamples(t *testing.T) {
	t.Parallel()

	// queued returns a classifier that serves one scripted prediction per
	// call.
	queued := func(script ...lexcrawl.Prediction) *mock.LanguageClassifier {
		i := 0
		return &mock.LanguageClassifier{
			PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
				p := script[i]
				i++
				return []lexcrawl.Prediction{p}, nil
			},
		}
	}

	t.Run("short texts fall back to a single validation", func(t *testing.T) {
		t.Parallel()

		calls := 0
		classifier := &mock.LanguageClassifier{
			PredictFn: func(text string, k int) ([]lexcrawl.Prediction, error) {
				calls++
				return []lexcrawl.Prediction{{Code: "tl", Confidence: 0.9}}, nil
			},
		}
		v := language.NewValidator(classifier, language.WithLogger(discard()))

		decision := v.ValidateSamples(strings.Repeat("a", 40), []string{"tl"})

		assert.Equal(t, 1, calls)
		assert.True(t, decision.IsTarget)
	})

	t.Run("majority language wins with averaged confidence", func(t *testing.T) {
		t.Parallel()

		classifier := queued(
			lexcrawl.Prediction{Code: "tl", Confidence: 0.9},
			lexcrawl.Prediction{Code: "en", Confidence: 0.9},
			lexcrawl.Prediction{Code: "tl", Confidence: 0.7},
		)
		v := language.NewValidator(classifier, language.WithLogger(discard()))

		decision := v.ValidateSamples(strings.Repeat("a", 3000), []string{"tl"})

		require.True(t, decision.IsTarget)
		assert.Equal(t, "tl", decision.Code)
		assert.InDelta(t, 0.8, decision.Confidence, 1e-9)
	})

	t.Run("no accepting sample yields no_valid_samples", func(t *testing.T) {
		t.Parallel()

		classifier := queued(
			lexcrawl.Prediction{Code: "en", Confidence: 0.9},
			lexcrawl.Prediction{Code: "en", Confidence: 0.9},
			lexcrawl.Prediction{Code: "en", Confidence: 0.9},
		)
		v := language.NewValidator(classifier, language.WithLogger(discard()))

		decision := v.ValidateSamples(strings.Repeat("a", 3000), []string{"tl"})

		assert.Equal(t, lexcrawl.LanguageDecision{Code: "no_valid_samples"}, decision)
	})
}
