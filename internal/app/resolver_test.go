package app

import (
	"context"
	"testing"
	"time"

	"yabby-quiz-service/internal/domain"
	"yabby-quiz-service/internal/infra/memory"
)

func newTestResolver(t *testing.T, records ...domain.QuizRecord) *Resolver {
	t.Helper()
	repo := NewRepository(memory.NewSettingsStore(), memory.NewCache(), time.Hour)
	for _, record := range records {
		if err := repo.Save(context.Background(), record.ID, record); err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}
	return NewResolver(repo, NewIDGenerator())
}

func TestResolveNoID(t *testing.T) {
	r := newTestResolver(t)

	decision, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.Kind != DecisionNoID {
		t.Fatalf("expected NoID, got %v", decision.Kind)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t)

	decision, err := r.Resolve(context.Background(), "quiz_unknown")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.Kind != DecisionNotFound {
		t.Fatalf("expected NotFound, got %v", decision.Kind)
	}
}

func TestResolveClosed(t *testing.T) {
	draft := sampleRecord("quiz_draft")
	draft.Status = domain.StatusInactive
	r := newTestResolver(t, draft)

	decision, err := r.Resolve(context.Background(), "quiz_draft")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.Kind != DecisionClosed {
		t.Fatalf("expected Closed, got %v", decision.Kind)
	}
}

func TestResolveLivePayload(t *testing.T) {
	r := newTestResolver(t, sampleRecord("quiz_live"))

	decision, err := r.Resolve(context.Background(), "quiz_live")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.Kind != DecisionLive {
		t.Fatalf("expected Live, got %v", decision.Kind)
	}
	p := decision.Payload
	if p.UID == "" {
		t.Fatalf("expected instance uid")
	}
	if p.CTAURL == nil || *p.CTAURL != "https://example.com/claim" {
		t.Fatalf("unexpected cta %v", p.CTAURL)
	}
	if p.Question.Correct != "4" || p.Question.Reward != "WIN100" {
		t.Fatalf("payload must carry the full question, got %+v", p.Question)
	}
}

func TestResolveLiveNoCTAMarshalsNull(t *testing.T) {
	record := sampleRecord("quiz_nocta")
	record.CTAURL = ""
	r := newTestResolver(t, record)

	decision, err := r.Resolve(context.Background(), "quiz_nocta")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.Payload.CTAURL != nil {
		t.Fatalf("expected nil cta, got %v", *decision.Payload.CTAURL)
	}
}

// The same quiz embedded twice on one page must get distinct instance ids.
func TestResolveUIDFreshPerRender(t *testing.T) {
	r := newTestResolver(t, sampleRecord("quiz_live"))

	first, err := r.Resolve(context.Background(), "quiz_live")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := r.Resolve(context.Background(), "quiz_live")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first.Payload.UID == second.Payload.UID {
		t.Fatalf("expected fresh uid per render, got %q twice", first.Payload.UID)
	}
}
