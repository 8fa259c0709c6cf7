// Package wizard drives character creation through its ordered steps,
// validating each transition and assembling the finished sheet.
//
// A Wizard is owned by one session. Operations are serialized by a busy flag:
// while one is in flight every other operation fails fast with ErrBusy.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/internal/game/assembly"
	"github.com/cory-johannsen/vestige/internal/game/character"
)

// Wizard is one in-progress character creation.
type Wizard struct {
	svc       Services
	opts      Options
	assembler *assembly.Assembler
	logger    *zap.Logger

	mu     sync.Mutex
	busy   bool
	step   Step
	draft  *character.Draft
	result *assembly.Result
}

// Start opens a new wizard on the attributes step with a fresh draft.
//
// Precondition: svc.Tables, svc.Dice, svc.Actors and svc.Logger must be non-nil.
// Postcondition: Returns the wizard and its first view, or an error wrapping ErrConfiguration.
func Start(ctx context.Context, svc Services, opts Options) (*Wizard, View, error) {
	if svc.Tables == nil || svc.Dice == nil || svc.Actors == nil || svc.Logger == nil {
		return nil, View{}, configError("tables, dice, actor store and logger are required")
	}
	opts = opts.withDefaults()
	w := &Wizard{
		svc:       svc,
		opts:      opts,
		assembler: assembly.NewAssembler(svc.Tables, svc.Actors, svc.Compendium, svc.Logger).WithCollection(opts.CompendiumCollection),
		logger:    svc.Logger.With(zap.String("component", "wizard")),
		step:      StepAttributes,
		draft:     character.NewDraft(*opts.Baseline),
	}
	w.logger.Info("character creation started", zap.Int("baseline", *opts.Baseline))
	return w, w.View(), nil
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() *character.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Result returns the assembly result once the wizard is complete, else nil.
func (w *Wizard) Result() *assembly.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// View renders the current step.
func (w *Wizard) View() View {
	w.mu.Lock()
	step, d := w.step, w.draft.Clone()
	w.mu.Unlock()
	return w.render(step, d)
}

func (w *Wizard) render(step Step, d *character.Draft) View {
	def, _ := definition(step)
	v := View{
		Step:  step,
		Title: def.title,
		Index: position(step) + 1,
		Total: len(steps),
		Draft: d,
	}
	if def.view != nil {
		def.view(w, d, &v)
	}
	return v
}

// Submit merges in into a working copy of the draft and validates it. On
// success the draft is replaced and the wizard advances; submitting the final
// details assembles the character.
//
// Postcondition: On a *ValidationError the draft and step are unchanged.
func (w *Wizard) Submit(ctx context.Context, in Input) (View, error) {
	err := w.guard(ctx, "submit", func() error {
		if in == nil || in.forStep() != w.step {
			return fmt.Errorf("%w: submit for %s", ErrWrongStep, w.step)
		}
		def, _ := definition(w.step)
		work := w.draft.Clone()
		def.merge(w, work, in)
		if res := def.rules(w.svc.Tables).Run(work); !res.OK() {
			w.logger.Debug("step validation failed",
				zap.Stringer("step", w.step),
				zap.Strings("problems", res.Errors),
			)
			return invalid(w.step, res.Errors...)
		}
		if w.step == StepFinalDetails {
			return w.complete(ctx, work)
		}
		next, _ := neighbour(w.step, 1)
		return w.transition(ctx, next, work)
	})
	return w.View(), err
}

// Back returns to the previous step without validating. The draft is kept as is.
func (w *Wizard) Back(ctx context.Context) (View, error) {
	err := w.guard(ctx, "back", func() error {
		if w.step == StepComplete {
			return fmt.Errorf("%w: character already created", ErrWrongStep)
		}
		prev, ok := neighbour(w.step, -1)
		if !ok {
			return fmt.Errorf("%w: already at the first step", ErrWrongStep)
		}
		return w.transition(ctx, prev, w.draft.Clone())
	})
	return w.View(), err
}

// transition runs the target step's enter hook on d and commits. When the hook
// reports missing reference data the wizard lands one step before target.
func (w *Wizard) transition(ctx context.Context, target Step, d *character.Draft) error {
	def, _ := definition(target)
	if def.enter != nil {
		if err := def.enter(w, d); err != nil {
			fallback, _ := neighbour(target, -1)
			w.logger.Error("configuration error entering step",
				zap.Stringer("step", target),
				zap.Stringer("fallback", fallback),
				zap.Error(err),
			)
			w.commit(fallback, d)
			w.autosave(ctx)
			if errors.Is(err, ErrConfiguration) {
				return ErrConfiguration
			}
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}
	w.commit(target, d)
	w.logger.Debug("step entered", zap.Stringer("step", target))
	w.autosave(ctx)
	return nil
}

func (w *Wizard) complete(ctx context.Context, d *character.Draft) error {
	res, err := w.assembler.Assemble(ctx, d)
	if err != nil {
		w.logger.Error("character assembly failed", zap.String("name", d.Name), zap.Error(err))
		w.commit(StepFinalDetails, d)
		w.autosave(ctx)
		return fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}
	w.mu.Lock()
	w.result = res
	w.mu.Unlock()
	w.commit(StepComplete, d)
	w.logger.Info("character created",
		zap.String("name", res.Sheet.Name),
		zap.String("actor_id", res.Actor.ID),
		zap.Int("skills", len(res.Skills)),
		zap.Int("skipped_skills", len(res.SkippedSkills)),
	)
	return nil
}

func (w *Wizard) commit(step Step, d *character.Draft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = step
	w.draft = d
}

// guard runs fn as one serialized operation. A panic in fn is logged, the
// current state is autosaved, and ErrUnexpected is returned.
func (w *Wizard) guard(ctx context.Context, op string, fn func() error) (err error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	w.busy = true
	w.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("wizard operation panicked",
				zap.String("op", op),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			w.autosave(ctx)
			err = ErrUnexpected
		}
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()
	return fn()
}
