package slog

import (
	"log/slog"
	"time"

	"github.com/lexcrawl/lexcrawl"
)

// Ensure LoggingValidator implements lexcrawl.LanguageValidator.
var _ lexcrawl.LanguageValidator = (*LoggingValidator)(nil)

// LoggingValidator wraps a LanguageValidator with per-decision logging.
type LoggingValidator struct {
	next   lexcrawl.LanguageValidator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next lexcrawl.LanguageValidator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs the decision.
func (v *LoggingValidator) Validate(text string, targetCodes []string, lenient bool) lexcrawl.LanguageDecision {
	begin := time.Now()
	decision := v.next.Validate(text, targetCodes, lenient)
	v.logger.Debug("language decision",
		"language", decision.Code,
		"confidence", decision.Confidence,
		"target", decision.IsTarget,
		"text_length", len(text),
		"lenient", lenient,
		"duration", time.Since(begin),
	)
	return decision
}
