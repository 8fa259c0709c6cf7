package wizard

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks -source=services.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/internal/game/assembly"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// DiceRoller evaluates a dice expression and returns its total.
type DiceRoller interface {
	RollDice(ctx context.Context, expr string) (int, error)
}

// StateStore persists opaque wizard snapshots by namespace and key.
type StateStore interface {
	// Get returns the stored value and whether it exists.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
}

// Services is the explicit set of collaborators a wizard uses.
// State and Compendium may be nil; autosave and compendium lookups are then skipped.
type Services struct {
	Tables     *ruleset.Tables
	Dice       DiceRoller
	Actors     assembly.ActorStore
	Compendium assembly.SkillCompendium
	State      StateStore
	Logger     *zap.Logger
}

// DefaultBaseline is the starting value of every primary attribute.
const DefaultBaseline = 50

// DefaultStateNamespace is the namespace autosave writes to.
const DefaultStateNamespace = "vestige-character-creator"

// Options tunes a wizard. Zero values select the defaults.
type Options struct {
	// Baseline is the starting value of every primary; nil selects DefaultBaseline.
	Baseline             *int
	StateNamespace       string
	CompendiumCollection string
}

func (o Options) withDefaults() Options {
	if o.Baseline == nil {
		b := DefaultBaseline
		o.Baseline = &b
	}
	if o.StateNamespace == "" {
		o.StateNamespace = DefaultStateNamespace
	}
	if o.CompendiumCollection == "" {
		o.CompendiumCollection = assembly.DefaultCompendiumCollection
	}
	return o
}
