package validation

import (
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// CheckProfession enforces the profession's core-attribute minimum.
//
// Precondition: p must be non-nil.
// Postcondition: Returns nil when the draft's core attribute meets p.MinimumCore().
func CheckProfession(d *character.Draft, p *ruleset.Profession) error {
	current, _ := d.Attributes.Primary.Get(p.CoreAttribute)
	if minimum := p.MinimumCore(); current < minimum {
		return problem("%s requires %s of %d or higher (current: %d)", p.Name, ruleset.Abbrev(p.CoreAttribute), minimum, current)
	}
	return nil
}

// BenefitLimit returns how many non-automatic benefits the draft may hold:
// the profession limit plus one when an upbringing benefit was taken on the path step.
//
// Postcondition: Returns 0 for an unknown profession.
func BenefitLimit(t *ruleset.Tables, d *character.Draft) int {
	p, ok := t.Profession(d.Path.Profession)
	if !ok {
		return 0
	}
	limit := p.BenefitLimit()
	if u, ok := t.Upbringing(d.Path.Upbringing); ok && len(u.UpbringingBenefits) > 0 && d.Path.EasyBenefit != "" {
		limit++
	}
	return limit
}

// BurdenRequirement returns the exact number of burdens, automatic included,
// the draft must carry.
func BurdenRequirement(t *ruleset.Tables, d *character.Draft) int {
	n := 0
	if p, ok := t.Profession(d.Path.Profession); ok {
		n = p.Burdens.Count
	}
	if u, ok := t.Upbringing(d.Path.Upbringing); ok {
		n += u.ExtraBurdens
	}
	return n
}

// AllowedBenefits returns the ids the draft may hold: profession options and
// grants, the upbringing's extended pool and the chosen upbringing benefit.
func AllowedBenefits(t *ruleset.Tables, d *character.Draft) map[string]bool {
	var lists [][]string
	if p, ok := t.Profession(d.Path.Profession); ok {
		lists = append(lists, p.Benefits.Options, p.Benefits.Automatic)
	}
	if u, ok := t.Upbringing(d.Path.Upbringing); ok {
		lists = append(lists, u.BenefitOptions)
		if d.Path.EasyBenefit != "" && u.OffersBenefit(d.Path.EasyBenefit) {
			lists = append(lists, []string{d.Path.EasyBenefit})
		}
	}
	return setOf(lists...)
}

// AllowedBurdens returns the burden ids the draft may hold.
func AllowedBurdens(t *ruleset.Tables, d *character.Draft) map[string]bool {
	var lists [][]string
	if p, ok := t.Profession(d.Path.Profession); ok {
		lists = append(lists, p.Burdens.Options, p.Burdens.Automatic)
	}
	if u, ok := t.Upbringing(d.Path.Upbringing); ok {
		lists = append(lists, u.BurdenOptions)
	}
	return setOf(lists...)
}

func setOf(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, l := range lists {
		for _, v := range l {
			set[v] = true
		}
	}
	return set
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func hasDuplicates(list []string) bool {
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		if seen[v] {
			return true
		}
		seen[v] = true
	}
	return false
}
