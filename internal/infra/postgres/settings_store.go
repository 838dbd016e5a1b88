package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SettingsStore persists named JSON values in the settings table. It is the
// durable half of the storage pair; the cache layer sits in front of it.
type SettingsStore struct {
	pool *pgxpool.Pool
}

func NewSettingsStore(pool *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{pool: pool}
}

func (s *SettingsStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE name=$1`, name).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get setting %q: %w", name, err)
	}
	return raw, true, nil
}

func (s *SettingsStore) Set(ctx context.Context, name string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (name, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`,
		name, string(value))
	if err != nil {
		return fmt.Errorf("set setting %q: %w", name, err)
	}
	return nil
}
