package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/vestige/internal/game/actor"
)

// CompendiumRepository serves reference skill entries grouped by collection.
type CompendiumRepository struct {
	db *pgxpool.Pool
}

// NewCompendiumRepository creates a CompendiumRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCompendiumRepository(db *pgxpool.Pool) *CompendiumRepository {
	return &CompendiumRepository{db: db}
}

// Collection returns every entry in the named collection ordered by name.
//
// Postcondition: An unknown collection yields an empty slice.
func (r *CompendiumRepository) Collection(ctx context.Context, name string) ([]actor.CompendiumEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, area, governing, difficulty
		FROM compendium_entries WHERE collection = $1 ORDER BY name ASC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("querying compendium %q: %w", name, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (actor.CompendiumEntry, error) {
		var e actor.CompendiumEntry
		err := row.Scan(&e.Name, &e.Area, &e.Governing, &e.Difficulty)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning compendium %q: %w", name, err)
	}
	return entries, nil
}

// Upsert inserts or replaces entries in a collection, keyed by name.
//
// Precondition: every entry must have a non-empty Name.
// Postcondition: Returns the number of entries written.
func (r *CompendiumRepository) Upsert(ctx context.Context, collection string, entries []actor.CompendiumEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		if e.Name == "" {
			return 0, fmt.Errorf("compendium %q: entry with empty name", collection)
		}
		batch.Queue(`
			INSERT INTO compendium_entries (collection, name, area, governing, difficulty)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (collection, name) DO UPDATE
			SET area = EXCLUDED.area, governing = EXCLUDED.governing,
			    difficulty = EXCLUDED.difficulty, updated_at = NOW()`,
			collection, e.Name, e.Area, e.Governing, e.Difficulty)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("upserting compendium %q: %w", collection, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing compendium %q: %w", collection, err)
	}
	return len(entries), nil
}
