package app

import (
	"time"

	"yabby-quiz-service/internal/domain"
)

// Submission carries the raw admin form fields before sanitization.
type Submission struct {
	QuizID    string
	Active    bool
	CTAURL    string
	Text      string
	Options   [4]string
	Correct   string
	Reward    string
	UpdatedBy string
}

// Validator turns a submission into a normalized QuizRecord or a list of
// human-readable errors. Inactive submissions are accepted as drafts with no
// completeness checks; active ones must form an answerable quiz.
type Validator struct {
	sanitizer *Sanitizer
	ids       *IDGenerator
	now       func() time.Time
}

func NewValidator(sanitizer *Sanitizer, ids *IDGenerator) *Validator {
	return &Validator{sanitizer: sanitizer, ids: ids, now: time.Now}
}

// NewValidatorWithClock is test-only for deterministic timestamps.
func NewValidatorWithClock(sanitizer *Sanitizer, ids *IDGenerator, now func() time.Time) *Validator {
	return &Validator{sanitizer: sanitizer, ids: ids, now: now}
}

// Validate sanitizes every field, drops empty option slots in place, and
// collects all failing checks rather than stopping at the first. On success
// it returns the record ready to save, with a fresh ID when none was
// submitted.
func (v *Validator) Validate(sub Submission) (domain.QuizRecord, []string) {
	quizID := v.sanitizer.Text(sub.QuizID)
	ctaURL := v.sanitizer.URL(sub.CTAURL)
	text := v.sanitizer.Text(sub.Text)
	correct := v.sanitizer.Text(sub.Correct)
	reward := v.sanitizer.Text(sub.Reward)

	options := make([]string, 0, len(sub.Options))
	for _, raw := range sub.Options {
		if opt := v.sanitizer.Text(raw); opt != "" {
			options = append(options, opt)
		}
	}

	var errs []string
	if sub.Active {
		if correct == "" || !contains(options, correct) {
			errs = append(errs, "Correct answer must match one of the options when the quiz is active.")
		}
		if reward == "" {
			errs = append(errs, "Reward code is required when the quiz is active.")
		}
		if text == "" {
			errs = append(errs, "Question text is required when the quiz is active.")
		}
		if len(options) < 2 {
			errs = append(errs, "At least 2 answer options are required when the quiz is active.")
		}
	}
	if len(errs) > 0 {
		return domain.QuizRecord{}, errs
	}

	if quizID == "" {
		quizID = v.ids.QuizID()
	}
	return domain.QuizRecord{
		ID:     quizID,
		Status: domain.StatusFlag(sub.Active),
		CTAURL: ctaURL,
		Question: domain.Question{
			Text:    text,
			Options: options,
			Correct: correct,
			Reward:  reward,
		},
		Meta: domain.Meta{
			UpdatedBy: sub.UpdatedBy,
			UpdatedAt: v.now(),
		},
	}, nil
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
