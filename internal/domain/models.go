package domain

import (
	"bytes"
	"time"
)

// StatusFlag is the active/inactive marker on a quiz. It marshals as 1/0 to
// stay wire-compatible with collections written by earlier versions, and
// accepts both numeric and boolean JSON on the way in.
type StatusFlag bool

const (
	StatusActive   StatusFlag = true
	StatusInactive StatusFlag = false
)

func (s StatusFlag) MarshalJSON() ([]byte, error) {
	if s {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (s *StatusFlag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "1", "true":
		*s = StatusActive
	default:
		*s = StatusInactive
	}
	return nil
}

// Question is the single multiple-choice question embedded in a quiz.
// Options keep the order they were entered in; display order is shuffled
// client-side and never stored.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
	Reward  string   `json:"reward"`
}

// Meta records who last saved a record and when. Overwritten on every save.
type Meta struct {
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizRecord is the full persisted unit. The ID is assigned on first save and
// immutable afterwards. Inactive records may be incomplete drafts; active
// records satisfy the completeness rules enforced by the validator.
type QuizRecord struct {
	ID       string     `json:"id"`
	Status   StatusFlag `json:"status"`
	CTAURL   string     `json:"ctaUrl"`
	Question Question   `json:"question"`
	Meta     Meta       `json:"_meta"`
}

// Active reports whether the quiz is answerable by visitors.
func (r QuizRecord) Active() bool {
	return bool(r.Status)
}

// Collection is the whole quiz set keyed by quiz ID. It is persisted as a
// single named value; there is no per-record storage.
type Collection map[string]QuizRecord
