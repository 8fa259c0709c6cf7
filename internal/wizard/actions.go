package wizard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/game/validation"
)

// RollAttributes rolls every primary attribute with the table roll expression.
//
// Postcondition: On any dice failure the draft is unchanged and the error wraps ErrDice.
func (w *Wizard) RollAttributes(ctx context.Context) (View, error) {
	err := w.attributeAction(ctx, "roll", func(d *character.Draft) error {
		expr := w.svc.Tables.RollExpression()
		var rolled character.Primary
		for _, id := range character.PrimaryIDs {
			v, err := w.svc.Dice.RollDice(ctx, expr)
			if err != nil {
				w.logger.Warn("attribute roll failed", zap.String("attribute", id), zap.Error(err))
				return fmt.Errorf("%w: %w", ErrDice, err)
			}
			rolled.Set(id, character.ClampAttribute(v))
		}
		d.Attributes.Primary = rolled
		return nil
	})
	return w.View(), err
}

// AssignArray assigns the standard array, one value per primary attribute.
//
// Precondition: values has exactly one entry per primary id.
// Postcondition: Returns a *ValidationError unless the values are a permutation of the standard array.
func (w *Wizard) AssignArray(ctx context.Context, values map[string]int) (View, error) {
	err := w.attributeAction(ctx, "array", func(d *character.Draft) error {
		want := w.svc.Tables.StandardArray()
		got := make([]int, 0, len(values))
		for _, id := range character.PrimaryIDs {
			v, ok := values[id]
			if !ok {
				return invalid(StepAttributes, fmt.Sprintf("Assign a value to %s", ruleset.Abbrev(id)))
			}
			got = append(got, v)
		}
		if len(values) != len(character.PrimaryIDs) || !samePermutation(want, got) {
			return invalid(StepAttributes, fmt.Sprintf("Assign each standard array value (%s) exactly once", joinInts(w.svc.Tables.StandardArray())))
		}
		for id, v := range values {
			d.Attributes.Primary.Set(id, v)
		}
		return nil
	})
	return w.View(), err
}

// SetAttribute sets one primary attribute from free text. Non-numeric input
// sets 0; numeric input is clamped to the legal range.
func (w *Wizard) SetAttribute(ctx context.Context, id, raw string) (View, error) {
	err := w.attributeAction(ctx, "set", func(d *character.Draft) error {
		id = strings.ToLower(strings.TrimSpace(id))
		if !d.Attributes.Primary.Set(id, character.ParseAttributeValue(raw)) {
			return invalid(StepAttributes, fmt.Sprintf("Unknown attribute: %s", id))
		}
		return nil
	})
	return w.View(), err
}

// SetName sets the character name.
func (w *Wizard) SetName(ctx context.Context, name string) (View, error) {
	err := w.attributeAction(ctx, "name", func(d *character.Draft) error {
		d.Name = strings.TrimSpace(name)
		return nil
	})
	return w.View(), err
}

// attributeAction applies fn to a working copy during the attributes step,
// recomputes secondaries, commits and autosaves.
func (w *Wizard) attributeAction(ctx context.Context, op string, fn func(d *character.Draft) error) error {
	return w.guard(ctx, op, func() error {
		if w.step != StepAttributes {
			return fmt.Errorf("%w: %s during %s", ErrWrongStep, op, w.step)
		}
		work := w.draft.Clone()
		if err := fn(work); err != nil {
			return err
		}
		work.Recompute()
		w.commit(StepAttributes, work)
		w.autosave(ctx)
		return nil
	})
}

// SelectProfession chooses a profession on the path step, refusing one whose
// core-attribute requirement is not met.
//
// Postcondition: On refusal the previous selection is kept and a *ValidationError is returned.
func (w *Wizard) SelectProfession(ctx context.Context, id string) (View, error) {
	err := w.guard(ctx, "profession", func() error {
		if w.step != StepPath {
			return fmt.Errorf("%w: profession during %s", ErrWrongStep, w.step)
		}
		p, ok := w.svc.Tables.Profession(strings.TrimSpace(id))
		if !ok {
			return invalid(StepPath, fmt.Sprintf("Unknown profession: %s", id))
		}
		if err := validation.CheckProfession(w.draft, p); err != nil {
			w.logger.Debug("profession refused", zap.String("profession", p.ID), zap.Error(err))
			return invalid(StepPath, err.Error())
		}
		work := w.draft.Clone()
		work.Path.Profession = p.ID
		w.commit(StepPath, work)
		w.autosave(ctx)
		return nil
	})
	return w.View(), err
}

func samePermutation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]int(nil), a...)
	y := append([]int(nil), b...)
	sort.Ints(x)
	sort.Ints(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
