// Package assembly turns a validated character draft into a stored character
// sheet: it applies benefit and burden effects, builds the actor payload and
// attaches one skill item per selected skill.
package assembly

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/internal/game/actor"
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// DefaultCompendiumCollection is the compendium collection consulted for skill metadata.
const DefaultCompendiumCollection = "skills"

// ErrCreateActor is returned when the actor store fails to create the sheet.
var ErrCreateActor = errors.New("creating actor")

// ErrIncompleteDraft is returned when the draft references unknown path entries.
var ErrIncompleteDraft = errors.New("draft is incomplete")

// Sheet summarizes the final numbers written to the actor.
type Sheet struct {
	Name             string
	Profession       string
	Upbringing       string
	Primary          character.Primary
	Secondary        character.Secondary
	DamageResistance int
	Initiative       int
	Resources        int
	Skills           []string
}

// Result reports what Assemble produced.
type Result struct {
	Actor         actor.Record
	Skills        []actor.Record
	SkippedSkills []string
	Warnings      []string
	Sheet         Sheet
}

// Assembler creates character sheets.
type Assembler struct {
	tables     *ruleset.Tables
	actors     ActorStore
	compendium SkillCompendium
	collection string
	logger     *zap.Logger
}

// NewAssembler creates an Assembler. A nil compendium disables compendium lookups.
//
// Precondition: tables, actors and logger must be non-nil.
func NewAssembler(tables *ruleset.Tables, actors ActorStore, compendium SkillCompendium, logger *zap.Logger) *Assembler {
	return &Assembler{
		tables:     tables,
		actors:     actors,
		compendium: compendium,
		collection: DefaultCompendiumCollection,
		logger:     logger,
	}
}

// WithCollection returns a copy of a that reads skill metadata from the named collection.
func (a *Assembler) WithCollection(name string) *Assembler {
	c := *a
	c.collection = name
	return &c
}

// Assemble builds and stores the sheet for d.
//
// Precondition: d has passed every step's validation.
// Postcondition: d is not modified. If the actor cannot be created no skills
// are attempted and the error wraps ErrCreateActor. Skill failures are logged
// and listed in SkippedSkills; the actor is not rolled back.
func (a *Assembler) Assemble(ctx context.Context, d *character.Draft) (*Result, error) {
	p, ok := a.tables.Profession(d.Path.Profession)
	if !ok {
		return nil, fmt.Errorf("%w: unknown profession %q", ErrIncompleteDraft, d.Path.Profession)
	}
	u, ok := a.tables.Upbringing(d.Path.Upbringing)
	if !ok {
		return nil, fmt.Errorf("%w: unknown upbringing %q", ErrIncompleteDraft, d.Path.Upbringing)
	}

	s := applyEffects(a.tables, d)
	for _, w := range s.warnings {
		a.logger.Warn("attribute clamped during assembly", zap.String("detail", w))
	}

	sheet := a.buildActor(d, p, u, s)
	rec, err := a.actors.CreateActor(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrCreateActor, sheet.Name, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w %q: store returned no record", ErrCreateActor, sheet.Name)
	}
	a.logger.Info("character actor created", zap.String("actor_id", rec.ID), zap.String("name", rec.Name))

	res := &Result{
		Actor:    *rec,
		Warnings: s.warnings,
		Sheet: Sheet{
			Name:             sheet.Name,
			Profession:       p.Name,
			Upbringing:       u.Name,
			Primary:          s.primary,
			Secondary:        s.secondary,
			DamageResistance: s.damageResistance,
			Initiative:       s.initiative,
			Resources:        s.resources,
		},
	}

	meta := a.compendiumMeta(ctx)
	for _, sel := range d.AllSkills() {
		item := a.skillItem(sel, meta)
		created, err := a.actors.CreateEmbedded(ctx, rec.ID, []actor.Item{item})
		if err != nil {
			a.logger.Warn("failed to add skill",
				zap.String("actor_id", rec.ID),
				zap.String("skill", item.Name),
				zap.Error(err),
			)
			res.SkippedSkills = append(res.SkippedSkills, item.Name)
			continue
		}
		res.Skills = append(res.Skills, created...)
		res.Sheet.Skills = append(res.Sheet.Skills, item.Name)
	}
	return res, nil
}

func (a *Assembler) buildActor(d *character.Draft, p *ruleset.Profession, u *ruleset.Upbringing, s stats) actor.Actor {
	name := d.Name
	if name == "" {
		name = d.Details.History.Identity
	}
	if name == "" {
		name = "New Character"
	}

	primary := make(map[string]actor.AttributeValue, len(character.PrimaryIDs))
	for _, attr := range a.tables.PrimaryAttributes() {
		v, _ := s.primary.Get(attr.ID)
		primary[attr.ID] = actor.AttributeValue{Value: v, Label: attr.Name}
	}
	derived := make(map[string]actor.DerivedValue, len(character.SecondaryIDs))
	for _, attr := range a.tables.SecondaryAttributes() {
		v, _ := s.secondary.Get(attr.ID)
		derived[attr.ID] = actor.DerivedValue{Value: v, Max: v, Label: attr.Name}
	}

	return actor.Actor{
		Name: name,
		Type: actor.TypeCharacter,
		System: actor.System{
			PrimaryAttributes: primary,
			DerivedAttributes: derived,
			DamageResistance:  s.damageResistance,
			Initiative:        s.initiative,
			Resources:         s.resources,
			Equipment:         equipmentHTML(a.tables, p, s.resources),
			Notes:             notesHTML(a.tables, d, p, u),
			Biography:         biographyHTML(d),
			Path:              actor.PathInfo{Profession: p.Name, Upbringing: u.Name},
		},
	}
}

// compendiumMeta fetches the skill collection once per assembly.
//
// Postcondition: Returns nil when no compendium is configured or the fetch fails.
func (a *Assembler) compendiumMeta(ctx context.Context) map[string]actor.CompendiumEntry {
	if a.compendium == nil {
		return nil
	}
	entries, err := a.compendium.Collection(ctx, a.collection)
	if err != nil {
		a.logger.Warn("skill compendium unavailable, using built-in skill table",
			zap.String("collection", a.collection),
			zap.Error(err),
		)
		return nil
	}
	meta := make(map[string]actor.CompendiumEntry, len(entries))
	for _, e := range entries {
		meta[e.Name] = e
	}
	return meta
}

// skillItem resolves area and governing attribute from the compendium, then
// the built-in table, then the table defaults.
func (a *Assembler) skillItem(sel character.SkillSelection, meta map[string]actor.CompendiumEntry) actor.Item {
	area, governing := a.tables.SkillMeta(sel.Name)
	difficulty := "average"
	if e, ok := meta[ruleset.BaseSkillName(sel.Name)]; ok {
		if e.Area != "" {
			area = e.Area
		}
		if e.Governing != "" {
			governing = e.Governing
		}
		if e.Difficulty != "" {
			difficulty = e.Difficulty
		}
	}
	return actor.Item{
		Name: sel.DisplayName(),
		Type: actor.TypeSkill,
		System: actor.SkillSystem{
			Area:            area,
			Governing:       governing,
			Difficulty:      difficulty,
			Specializations: []string{},
			IsType:          sel.RequireType,
			PossibleTypes:   []string{},
			Prerequisites:   []string{},
		},
	}
}
