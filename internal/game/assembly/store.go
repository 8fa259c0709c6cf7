package assembly

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go

import (
	"context"

	"github.com/cory-johannsen/vestige/internal/game/actor"
)

// ActorStore persists character sheets and their embedded items.
type ActorStore interface {
	// CreateActor stores a new actor and returns its record.
	CreateActor(ctx context.Context, a actor.Actor) (*actor.Record, error)
	// CreateEmbedded attaches items to the actor identified by parentID.
	CreateEmbedded(ctx context.Context, parentID string, items []actor.Item) ([]actor.Record, error)
}

// SkillCompendium serves reference skill entries grouped by collection name.
type SkillCompendium interface {
	Collection(ctx context.Context, name string) ([]actor.CompendiumEntry, error)
}
