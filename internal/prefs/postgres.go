package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/pokeview/internal/db"
)

// PostgresStore keeps preferences in the preferences table through the
// statements registered by package db.
type PostgresStore struct {
	pool *db.Pool
}

// NewPostgresStore wraps a pool created by db.New.
func NewPostgresStore(pool *db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, clientID string) (Preferences, error) {
	var p Preferences
	err := s.pool.QueryRow(ctx, db.StmtPreferencesGet, clientID).Scan(&p.Theme, &p.Language)
	if errors.Is(err, pgx.ErrNoRows) {
		return Preferences{}, ErrNotFound
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("postgres: load preferences: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Save(ctx context.Context, clientID string, p Preferences) error {
	if _, err := s.pool.Exec(ctx, db.StmtPreferencesUpsert, clientID, p.Theme, p.Language); err != nil {
		return fmt.Errorf("postgres: save preferences: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.HealthCheck(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
