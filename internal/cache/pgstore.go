package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getTranslationSQL   = `SELECT translated FROM translation_cache WHERE hash = $1`
	listTranslationsSQL = `SELECT hash, source, translated FROM translation_cache`
)

// PGStore reads the translation_cache table owned by the host.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a store backed by pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Connect opens and pings a PostgreSQL pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	return pool, nil
}

func (s *PGStore) Get(ctx context.Context, hash string) (string, error) {
	var translated string
	err := s.pool.QueryRow(ctx, getTranslationSQL, hash).Scan(&translated)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query translation: %w", err)
	}
	return translated, nil
}

func (s *PGStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, listTranslationsSQL)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
	if err != nil {
		return nil, fmt.Errorf("collect translations: %w", err)
	}
	return entries, nil
}
