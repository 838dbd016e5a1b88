package app

import (
	"context"
	"errors"

	"yabby-quiz-service/internal/domain"
)

// DecisionKind classifies how an embed request should be presented.
type DecisionKind int

const (
	// DecisionNoID means no quiz identifier was supplied.
	DecisionNoID DecisionKind = iota
	// DecisionNotFound means the identifier matches no record.
	DecisionNotFound
	// DecisionClosed means the record exists but is inactive.
	DecisionClosed
	// DecisionLive means the quiz is active and answerable.
	DecisionLive
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionNoID:
		return "no_id"
	case DecisionNotFound:
		return "not_found"
	case DecisionClosed:
		return "closed"
	default:
		return "live"
	}
}

// Payload is the wire contract handed to the client widget, correct answer
// included: answer checking is client-side and the code is not a secret.
type Payload struct {
	UID      string          `json:"uid"`
	CTAURL   *string         `json:"ctaUrl"`
	Question domain.Question `json:"question"`
}

// Decision is the resolver outcome. Payload is set only for DecisionLive.
type Decision struct {
	Kind    DecisionKind
	Payload Payload
}

// Resolver decides between live and closed presentation for an embed. The
// three non-live kinds all render the same closed fragment downstream, so a
// visitor cannot probe which quiz IDs exist.
type Resolver struct {
	repo *Repository
	ids  *IDGenerator
}

func NewResolver(repo *Repository, ids *IDGenerator) *Resolver {
	return &Resolver{repo: repo, ids: ids}
}

// Resolve maps a quiz ID (possibly empty) to a render decision. Each live
// decision carries a fresh per-render instance UID.
func (r *Resolver) Resolve(ctx context.Context, quizID string) (Decision, error) {
	if quizID == "" {
		return Decision{Kind: DecisionNoID}, nil
	}
	record, err := r.repo.GetByID(ctx, quizID)
	if errors.Is(err, domain.ErrQuizNotFound) {
		return Decision{Kind: DecisionNotFound}, nil
	}
	if err != nil {
		return Decision{}, err
	}
	if !record.Active() {
		return Decision{Kind: DecisionClosed}, nil
	}

	var cta *string
	if record.CTAURL != "" {
		url := record.CTAURL
		cta = &url
	}
	return Decision{
		Kind: DecisionLive,
		Payload: Payload{
			UID:      r.ids.EmbedUID(),
			CTAURL:   cta,
			Question: record.Question,
		},
	}, nil
}
