package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"yabby-quiz-service/internal/domain"
)

const (
	// settingQuizAll is the durable setting name holding the whole collection.
	settingQuizAll = "yabby_quiz_all"
	// cacheKeyQuizAll is the transient cache key in front of it.
	cacheKeyQuizAll = "yabby_quiz_all_cache"
)

// Store is the durable named-value collaborator (Postgres in production,
// memory in tests).
type Store interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Set(ctx context.Context, name string, value []byte) error
}

// Cache is the short-TTL byte cache collaborator (Redis in production).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Repository owns the quiz collection lifecycle. Reads go through the cache
// with a fixed TTL; every write invalidates the cache before touching the
// durable store, so the cache never outlives the last successful write.
//
// Mutations re-read the durable store, not the cache, to avoid applying an
// upsert on top of a stale snapshot. The full-collection read-then-write is
// still last-writer-wins under concurrent admin edits; that is a known and
// accepted limit of this single-admin tool, kept deliberately.
type Repository struct {
	store Store
	cache Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func NewRepository(store Store, cache Cache, ttl time.Duration) *Repository {
	return &Repository{store: store, cache: cache, ttl: ttl}
}

// GetAll returns the quiz collection, from cache when a live entry exists.
// Cache read failures degrade to a durable load; they never fail the call.
func (r *Repository) GetAll(ctx context.Context) (domain.Collection, error) {
	if raw, ok, err := r.cache.Get(ctx, cacheKeyQuizAll); err == nil && ok {
		if all, err := unmarshalCollection(raw); err == nil {
			return all, nil
		}
	}

	result, err, _ := r.sf.Do(settingQuizAll, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, ok, err := r.cache.Get(ctx, cacheKeyQuizAll); err == nil && ok {
			if all, err := unmarshalCollection(raw); err == nil {
				return all, nil
			}
		}

		all, err := r.loadDurable(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(all); err == nil {
			_ = r.cache.Set(ctx, cacheKeyQuizAll, raw, r.ttl)
		}
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Collection), nil
}

// GetByID looks a quiz up within GetAll.
func (r *Repository) GetByID(ctx context.Context, id string) (domain.QuizRecord, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	record, ok := all[id]
	if !ok {
		return domain.QuizRecord{}, domain.ErrQuizNotFound
	}
	return record, nil
}

// SaveAll invalidates the cache, then persists the full collection. The
// invalidation must land before the durable write so no reader can cache a
// pre-write snapshot after SaveAll returns.
func (r *Repository) SaveAll(ctx context.Context, all domain.Collection) error {
	if err := r.cache.Delete(ctx, cacheKeyQuizAll); err != nil {
		return fmt.Errorf("invalidate quiz cache: %w", err)
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal quiz collection: %w", err)
	}
	if err := r.store.Set(ctx, settingQuizAll, raw); err != nil {
		return fmt.Errorf("persist quiz collection: %w", err)
	}
	return nil
}

// Save upserts a single record, re-reading the durable store first.
func (r *Repository) Save(ctx context.Context, id string, record domain.QuizRecord) error {
	all, err := r.loadDurable(ctx)
	if err != nil {
		return err
	}
	all[id] = record
	return r.SaveAll(ctx, all)
}

// Delete removes a record if present. Deleting an unknown ID is a no-op,
// not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	all, err := r.loadDurable(ctx)
	if err != nil {
		return err
	}
	delete(all, id)
	return r.SaveAll(ctx, all)
}

func (r *Repository) loadDurable(ctx context.Context) (domain.Collection, error) {
	raw, ok, err := r.store.Get(ctx, settingQuizAll)
	if err != nil {
		return nil, fmt.Errorf("load quiz collection: %w", err)
	}
	if !ok {
		return domain.Collection{}, nil
	}
	return unmarshalCollection(raw)
}

func unmarshalCollection(raw []byte) (domain.Collection, error) {
	all := domain.Collection{}
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("unmarshal quiz collection: %w", err)
	}
	return all, nil
}
