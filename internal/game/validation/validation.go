// Package validation runs per-step rule sets over a character draft and
// collects every problem found.
package validation

import (
	"fmt"

	"github.com/cory-johannsen/vestige/internal/game/character"
)

// UnexpectedMessage replaces the output of a rule that panicked.
const UnexpectedMessage = "An unexpected error occurred during validation"

// Rule inspects a draft and returns nil when it passes.
// A rule may report several problems by returning errors.Join of them.
//
// Precondition: Rules must not mutate the draft.
type Rule func(d *character.Draft) error

// RuleSet is an ordered list of rules for one creation step.
type RuleSet []Rule

// Result collects the human-readable problems reported by a RuleSet.
type Result struct {
	Errors []string
}

// OK reports whether no rule failed.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Run evaluates every rule in order without short-circuiting.
//
// Precondition: d must be non-nil.
// Postcondition: d is unchanged; Errors holds one message per reported problem.
func (rs RuleSet) Run(d *character.Draft) Result {
	var res Result
	for _, rule := range rs {
		res.Errors = append(res.Errors, runRule(rule, d)...)
	}
	return res
}

func runRule(rule Rule, d *character.Draft) (msgs []string) {
	defer func() {
		if r := recover(); r != nil {
			msgs = []string{UnexpectedMessage}
		}
	}()
	return messages(rule(d))
}

// messages flattens joined errors into individual messages.
func messages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, messages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

func problem(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
