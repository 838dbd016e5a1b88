package app

import (
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer is the trusted external filter pair applied to submitted fields:
// a strict markup stripper for plain-text fields and a URL checker for the
// CTA field.
type Sanitizer struct {
	policy   *bluemonday.Policy
	validate *validator.Validate
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		policy:   bluemonday.StrictPolicy(),
		validate: validator.New(),
	}
}

// Text strips all markup and collapses whitespace runs to single spaces.
func (s *Sanitizer) Text(raw string) string {
	clean := s.policy.Sanitize(raw)
	clean = html.UnescapeString(clean)
	return strings.Join(strings.Fields(clean), " ")
}

// URL trims the input and returns it only if it is an http or https URL.
// Anything else comes back empty rather than erroring: a bad CTA is silently
// dropped. The scheme restriction matters because the CTA lands in a link
// href on the visitor page, so javascript: and data: inputs must not survive.
func (s *Sanitizer) URL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if err := s.validate.Var(trimmed, "http_url"); err != nil {
		return ""
	}
	return trimmed
}
