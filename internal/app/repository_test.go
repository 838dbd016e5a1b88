package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"yabby-quiz-service/internal/domain"
	"yabby-quiz-service/internal/infra/memory"
)

type countingStore struct {
	inner *memory.SettingsStore
	gets  int
}

func (s *countingStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	s.gets++
	return s.inner.Get(ctx, name)
}

func (s *countingStore) Set(ctx context.Context, name string, value []byte) error {
	return s.inner.Set(ctx, name, value)
}

func sampleRecord(id string) domain.QuizRecord {
	return domain.QuizRecord{
		ID:     id,
		Status: domain.StatusActive,
		CTAURL: "https://example.com/claim",
		Question: domain.Question{
			Text:    "What is 2 + 2?",
			Options: []string{"3", "4"},
			Correct: "4",
			Reward:  "WIN100",
		},
		Meta: domain.Meta{UpdatedBy: "admin", UpdatedAt: fixedTime()},
	}
}

func TestRepositoryGetAllUsesCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{inner: memory.NewSettingsStore()}
	repo := NewRepository(store, memory.NewCache(), time.Hour)

	if err := repo.Save(ctx, "quiz_a", sampleRecord("quiz_a")); err != nil {
		t.Fatalf("save: %v", err)
	}

	before := store.gets
	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("get all: %v", err)
	}
	afterFirst := store.gets
	if afterFirst <= before {
		t.Fatalf("expected a durable read on cache miss")
	}

	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("get all: %v", err)
	}
	if store.gets != afterFirst {
		t.Fatalf("expected cache hit, store reads went %d -> %d", afterFirst, store.gets)
	}
}

func TestRepositoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	now := fixedTime()
	cache := memory.NewCacheWithClock(func() time.Time { return now })
	store := &countingStore{inner: memory.NewSettingsStore()}
	repo := NewRepository(store, cache, time.Hour)

	if err := repo.Save(ctx, "quiz_a", sampleRecord("quiz_a")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("get all: %v", err)
	}
	afterPrime := store.gets

	now = now.Add(2 * time.Hour)
	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("get all: %v", err)
	}
	if store.gets <= afterPrime {
		t.Fatalf("expected durable reload after TTL expiry")
	}
}

func TestRepositorySaveInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.NewSettingsStore(), memory.NewCache(), time.Hour)

	if err := repo.Save(ctx, "quiz_a", sampleRecord("quiz_a")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	updated := sampleRecord("quiz_a")
	updated.Question.Reward = "WIN200"
	if err := repo.Save(ctx, "quiz_a", updated); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByID(ctx, "quiz_a")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Question.Reward != "WIN200" {
		t.Fatalf("read stale record after save: reward=%q", got.Question.Reward)
	}
}

func TestRepositorySaveReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.NewSettingsStore(), memory.NewCache(), time.Hour)

	record := sampleRecord("quiz_rt")
	if err := repo.Save(ctx, record.ID, record); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}

	wantJSON, _ := json.Marshal(record)
	gotJSON, _ := json.Marshal(got)
	if string(wantJSON) != string(gotJSON) {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", wantJSON, gotJSON)
	}
}

func TestRepositoryGetByIDUnknown(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.NewSettingsStore(), memory.NewCache(), time.Hour)

	if _, err := repo.GetByID(ctx, "quiz_nope"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestRepositoryDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.NewSettingsStore(), memory.NewCache(), time.Hour)

	if err := repo.Save(ctx, "quiz_a", sampleRecord("quiz_a")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "quiz_missing"); err != nil {
		t.Fatalf("deleting unknown id should be a no-op, got %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected collection unchanged, got %d records", len(all))
	}

	if err := repo.Delete(ctx, "quiz_a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "quiz_a"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected record gone, got %v", err)
	}
}

// Mutations must re-read the durable store, not the cache, or a write landed
// by another process between cache fills would be silently dropped.
func TestRepositorySaveIgnoresStaleCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSettingsStore()
	repo := NewRepository(store, memory.NewCache(), time.Hour)

	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("prime empty cache: %v", err)
	}

	// Simulate an out-of-band write that the cache has not seen.
	outOfBand := domain.Collection{"quiz_b": sampleRecord("quiz_b")}
	raw, _ := json.Marshal(outOfBand)
	if err := store.Set(ctx, "yabby_quiz_all", raw); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if err := repo.Save(ctx, "quiz_c", sampleRecord("quiz_c")); err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected out-of-band record preserved, got %v", all)
	}
}
