// Package language decides whether extracted text is in a crawl's target
// language. The decision policy sits on top of an injected
// lexcrawl.LanguageClassifier so the identification model is swappable.
package language

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lexcrawl/lexcrawl"
)

// Default policy parameters.
const (
	DefaultMinTextLength       = 20
	DefaultSampleSize          = 1000
	DefaultConfidenceThreshold = 0.5
)

const (
	topPredictions = 3

	// A secondary prediction in the target language is accepted at this
	// fraction of the confidence threshold, bypassing the primary check.
	secondaryConfidenceFactor = 0.8

	// Lenient mode lowers the threshold by this factor. The comparison is
	// vacuous anyway since lenient target-language top matches always pass.
	lenientThresholdFactor = 0.7

	multiSampleCount = 3
)

// Validator applies the acceptance policy: length gates, positional
// sampling, top-3 classification with a secondary-match short-circuit, and
// threshold comparison. It is stateless apart from its configuration and
// safe for concurrent use.
type Validator struct {
	classifier    lexcrawl.LanguageClassifier
	minTextLength int
	sampleSize    int
	threshold     float64
	logger        *slog.Logger
}

var _ lexcrawl.LanguageValidator = (*Validator)(nil)

// Option configures a Validator.
type Option func(*Validator)

// WithMinTextLength sets the minimum text length, in runes, below which
// validation rejects without consulting the model.
func WithMinTextLength(n int) Option {
	return func(v *Validator) { v.minTextLength = n }
}

// WithSampleSize sets the maximum sample length, in runes, handed to the
// model.
func WithSampleSize(n int) Option {
	return func(v *Validator) { v.sampleSize = n }
}

// WithConfidenceThreshold sets the minimum model confidence for acceptance.
func WithConfidenceThreshold(t float64) Option {
	return func(v *Validator) { v.threshold = t }
}

// WithLogger sets the logger for per-decision diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) { v.logger = logger }
}

// NewValidator returns a Validator using the given classifier.
func NewValidator(classifier lexcrawl.LanguageClassifier, opts ...Option) *Validator {
	v := &Validator{
		classifier:    classifier,
		minTextLength: DefaultMinTextLength,
		sampleSize:    DefaultSampleSize,
		threshold:     DefaultConfidenceThreshold,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate decides whether text is in one of the target languages.
//
// Empty or too-short text is rejected with a sentinel code before the
// model runs; lenient mode halves the length gate. The top prediction
// decides unless an alternate prediction in the target language clears
// 80% of the threshold, which accepts immediately with the alternate's
// language and confidence. Classifier failures surface as an "error"
// decision, never as a Go error.
func (v *Validator) Validate(text string, targetCodes []string, lenient bool) lexcrawl.LanguageDecision {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return lexcrawl.LanguageDecision{Code: "empty"}
	}

	minLength := v.minTextLength
	if lenient {
		minLength /= 2
	}
	if utf8.RuneCountInString(trimmed) < minLength {
		return lexcrawl.LanguageDecision{Code: "too_short"}
	}

	sample := extractSample(trimmed, v.sampleSize)
	if sample == "" {
		return lexcrawl.LanguageDecision{Code: "extraction_failed"}
	}

	predictions, err := v.classifier.Predict(sample, topPredictions)
	if err != nil || len(predictions) == 0 {
		v.logger.Warn("language classification failed", "error", err)
		return lexcrawl.LanguageDecision{Code: "error"}
	}

	targets := make(map[string]bool, len(targetCodes))
	for _, code := range targetCodes {
		targets[code] = true
	}

	top := predictions[0]
	isTarget := targets[top.Code]

	if !isTarget {
		for _, alt := range predictions[1:] {
			if targets[alt.Code] && alt.Confidence >= v.threshold*secondaryConfidenceFactor {
				v.logger.Info("accepted on secondary prediction", "language", alt.Code, "confidence", alt.Confidence)
				return lexcrawl.LanguageDecision{IsTarget: true, Code: alt.Code, Confidence: alt.Confidence}
			}
		}
	}

	threshold := v.threshold
	if lenient {
		threshold *= lenientThresholdFactor
	}

	return lexcrawl.LanguageDecision{
		IsTarget:   isTarget && (top.Confidence >= threshold || lenient),
		Code:       top.Code,
		Confidence: top.Confidence,
	}
}

// ValidateSamples validates long texts by drawing up to three samples at
// fixed positions (start, one-third, two-thirds) and combining the
// decisions: the majority language among accepting samples wins, with the
// average confidence of that language's accepting samples. Texts too short
// to sample three times fall back to a single Validate call.
func (v *Validator) ValidateSamples(text string, targetCodes []string) lexcrawl.LanguageDecision {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < v.minTextLength*multiSampleCount {
		return v.Validate(text, targetCodes, false)
	}

	runes := []rune(text)
	n := len(runes)
	positions := []int{0, n / 3, 2 * n / 3}

	var accepted []lexcrawl.LanguageDecision
	for _, pos := range positions {
		end := min(pos+v.sampleSize, n)
		decision := v.Validate(string(runes[pos:end]), targetCodes, false)
		if decision.IsTarget {
			accepted = append(accepted, decision)
		}
	}
	if len(accepted) == 0 {
		return lexcrawl.LanguageDecision{Code: "no_valid_samples"}
	}

	majority := majorityCode(accepted)
	var sum float64
	count := 0
	for _, d := range accepted {
		if d.Code == majority {
			sum += d.Confidence
			count++
		}
	}
	return lexcrawl.LanguageDecision{IsTarget: true, Code: majority, Confidence: sum / float64(count)}
}

// majorityCode returns the most frequent language among the decisions,
// with ties broken in favor of the earlier sample.
func majorityCode(decisions []lexcrawl.LanguageDecision) string {
	counts := make(map[string]int, len(decisions))
	best := decisions[0].Code
	for _, d := range decisions {
		counts[d.Code]++
		if counts[d.Code] > counts[best] {
			best = d.Code
		}
	}
	return best
}

// extractSample builds a representative sample for classification. The
// text is flattened to single-spaced form; texts longer than sampleSize
// contribute three equal chunks from the start, the middle and the end, so
// front-loaded boilerplate cannot dominate the decision.
func extractSample(text string, sampleSize int) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	runes := []rune(text)
	if len(runes) <= sampleSize {
		return text
	}

	chunk := sampleSize / 3
	start := string(runes[:chunk])
	middlePos := len(runes)/2 - chunk/2
	middle := string(runes[middlePos : middlePos+chunk])
	end := string(runes[len(runes)-chunk:])
	return start + " " + middle + " " + end
}
