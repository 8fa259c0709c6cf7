package wizard

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/internal/game/character"
)

// snapshot is the autosave payload.
type snapshot struct {
	Step  Step             `json:"step"`
	Draft *character.Draft `json:"draft"`
}

// StateKey returns the autosave key for a character name.
func StateKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "unnamed"
	}
	return "state-" + name
}

// autosave writes the current step and draft. Failures are logged only.
func (w *Wizard) autosave(ctx context.Context) {
	if w.svc.State == nil {
		return
	}
	w.mu.Lock()
	snap := snapshot{Step: w.step, Draft: w.draft.Clone()}
	w.mu.Unlock()
	if snap.Step == StepComplete {
		return
	}
	key := StateKey(snap.Draft.Name)
	data, err := json.Marshal(snap)
	if err != nil {
		w.logger.Warn("encoding wizard state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := w.svc.State.Set(ctx, w.opts.StateNamespace, key, data); err != nil {
		w.logger.Warn("saving wizard state", zap.String("key", key), zap.Error(err))
	}
}

// Restore loads the state saved for name, if any, and resumes at its step.
// The restored step's enter hook runs; if reference data is missing the wizard
// lands one step earlier.
//
// Postcondition: Returns false and leaves the wizard unchanged when nothing
// usable was found or the wizard is busy.
func (w *Wizard) Restore(ctx context.Context, name string) bool {
	restored := false
	err := w.guard(ctx, "restore", func() error {
		if w.svc.State == nil || w.step == StepComplete {
			return nil
		}
		key := StateKey(name)
		data, found, err := w.svc.State.Get(ctx, w.opts.StateNamespace, key)
		if err != nil {
			w.logger.Warn("loading wizard state", zap.String("key", key), zap.Error(err))
			return nil
		}
		if !found {
			return nil
		}
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil || snap.Draft == nil || snap.Step == StepComplete {
			w.logger.Warn("discarding unusable wizard state", zap.String("key", key), zap.Error(err))
			return nil
		}
		snap.Draft.Normalize()
		restored = true
		w.logger.Info("wizard state restored", zap.String("key", key), zap.Stringer("step", snap.Step))
		return w.transition(ctx, snap.Step, snap.Draft)
	})
	if err != nil {
		w.logger.Warn("restore finished with error", zap.Error(err))
	}
	return restored
}
