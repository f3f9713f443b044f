package lexcrawl

// LanguageDecision is the transient result of validating one text span.
// It is consumed immediately by the crawl driver to accept or discard an
// item; it is never persisted.
type LanguageDecision struct {
	// IsTarget is true when the text was attributed to one of the
	// accepted language codes.
	IsTarget bool

	// Code is the detected language code, or a sentinel such as
	// "empty", "too_short", "error" when no detection happened.
	Code string

	// Confidence is the model's confidence in Code, in [0,1].
	Confidence float64
}

// Prediction is one ranked (language, confidence) pair from the
// language-identification model.
type Prediction struct {
	Code       string
	Confidence float64
}

// LanguageClassifier is the language-identification model capability.
// Predict returns up to k predictions ordered by descending confidence.
type LanguageClassifier interface {
	Predict(text string, k int) ([]Prediction, error)
}

// LanguageValidator applies the acceptance policy on top of a classifier.
// Crawl drivers hold this as an injected capability rather than
// implementing detection themselves.
type LanguageValidator interface {
	// Validate decides whether text is in one of the target languages.
	Validate(text string, targetCodes []string, lenient bool) LanguageDecision
}

// LanguageConfig describes one target language, loaded from the static
// language mapping file and read-only for the lifetime of a crawl job.
type LanguageConfig struct {
	// DisplayName is the human-readable language name.
	DisplayName string `json:"displayName"`

	// DownloadDir is where accepted PDF files for this language are saved.
	DownloadDir string `json:"downloadDirectory"`

	// AcceptedCodes are the language-identifier codes accepted as a match.
	AcceptedCodes []string `json:"acceptedCodes"`
}

// Validate returns an error if the language config is incomplete.
func (c *LanguageConfig) Validate() error {
	if len(c.AcceptedCodes) == 0 {
		return Errorf(EINVALID, "language config requires at least one accepted code")
	}
	return nil
}
