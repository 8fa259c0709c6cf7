package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/vestige/internal/game/actor"
)

// ErrActorNotFound is returned when an actor lookup yields no results or an
// embedded item names a missing parent.
var ErrActorNotFound = errors.New("actor not found")

// ActorRepository stores character sheets and their embedded items in the
// actors table. The system payload is kept as JSONB.
type ActorRepository struct {
	db *pgxpool.Pool
}

// NewActorRepository creates an ActorRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewActorRepository(db *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{db: db}
}

// CreateActor inserts a top-level actor.
//
// Precondition: a.Name must be non-empty.
// Postcondition: Returns the record with a fresh UUID and CreatedAt set.
func (r *ActorRepository) CreateActor(ctx context.Context, a actor.Actor) (*actor.Record, error) {
	data, err := json.Marshal(a.System)
	if err != nil {
		return nil, fmt.Errorf("encoding actor system: %w", err)
	}

	var rec actor.Record
	err = r.db.QueryRow(ctx, `
		INSERT INTO actors (id, name, kind, data)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, name, kind, created_at`,
		uuid.NewString(), a.Name, a.Type, data,
	).Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting actor: %w", err)
	}
	return &rec, nil
}

// CreateEmbedded inserts items owned by parentID in a single transaction.
//
// Precondition: parentID must reference an existing actor.
// Postcondition: Either every item is stored and returned in order, or none
// is; a missing parent yields ErrActorNotFound.
func (r *ActorRepository) CreateEmbedded(ctx context.Context, parentID string, items []actor.Item) ([]actor.Record, error) {
	if _, err := uuid.Parse(parentID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrActorNotFound, parentID)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]actor.Record, 0, len(items))
	for _, it := range items {
		data, err := json.Marshal(it.System)
		if err != nil {
			return nil, fmt.Errorf("encoding item %q: %w", it.Name, err)
		}
		var rec actor.Record
		err = tx.QueryRow(ctx, `
			INSERT INTO actors (id, parent_id, name, kind, data)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id::text, name, kind, created_at`,
			uuid.NewString(), parentID, it.Name, it.Type, data,
		).Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.CreatedAt)
		if err != nil {
			if isForeignKeyError(err) {
				return nil, fmt.Errorf("%w: %s", ErrActorNotFound, parentID)
			}
			return nil, fmt.Errorf("inserting item %q: %w", it.Name, err)
		}
		out = append(out, rec)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing items: %w", err)
	}
	return out, nil
}

// GetActor loads a top-level actor by id.
//
// Postcondition: Returns the actor or ErrActorNotFound.
func (r *ActorRepository) GetActor(ctx context.Context, id string) (*actor.Actor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrActorNotFound
	}
	var (
		a    actor.Actor
		data []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, kind, data FROM actors WHERE id = $1 AND parent_id IS NULL`,
		id,
	).Scan(&a.Name, &a.Type, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("querying actor: %w", err)
	}
	if err := json.Unmarshal(data, &a.System); err != nil {
		return nil, fmt.Errorf("decoding actor system: %w", err)
	}
	return &a, nil
}

// ListEmbedded returns the items owned by parentID in insertion order.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ActorRepository) ListEmbedded(ctx context.Context, parentID string) ([]actor.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, kind, data FROM actors
		WHERE parent_id = $1 ORDER BY created_at ASC, name ASC`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := make([]actor.Item, 0)
	for rows.Next() {
		var (
			it   actor.Item
			data []byte
		)
		if err := rows.Scan(&it.Name, &it.Type, &data); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		if err := json.Unmarshal(data, &it.System); err != nil {
			return nil, fmt.Errorf("decoding item %q: %w", it.Name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
