package assembly

import (
	"fmt"

	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// effect is the numeric consequence of holding a benefit or burden.
// choosePrimary applies its value to the primary named in Benefits.Choices.
type effect struct {
	primary       map[string]int
	secondary     map[string]int
	choosePrimary int
	dr            int
	initiative    int
	resources     int
	resourceFloor int
}

var benefitEffects = map[string]effect{
	"keenMind":      {primary: map[string]int{"ins": 5}},
	"peakPhysique":  {choosePrimary: 5},
	"ironWill":      {secondary: map[string]int{"grt": 5}},
	"ironBody":      {dr: 1},
	"quickReflexes": {initiative: 1},
	"affluent":      {resources: 15, resourceFloor: 45},
}

var burdenEffects = map[string]effect{
	"insecure": {secondary: map[string]int{"grt": -5}},
}

// stats is the working state of an assembly after effects are applied.
type stats struct {
	primary          character.Primary
	secondary        character.Secondary
	damageResistance int
	initiative       int
	resources        int
	warnings         []string
}

// applyEffects computes final attributes and combat values for d without
// touching it. Primary deltas are applied and clamped before secondaries are
// derived; secondary deltas are applied after derivation.
//
// Precondition: d.Path.Profession names a profession in t.
func applyEffects(t *ruleset.Tables, d *character.Draft) stats {
	var s stats
	s.primary = d.Attributes.Primary
	secondaryDelta := map[string]int{}
	resourceFloor := 0

	if p, ok := t.Profession(d.Path.Profession); ok {
		s.resources = p.Resources
	}

	apply := func(e effect, id string) {
		for attr, delta := range e.primary {
			s.primary.Add(attr, delta)
		}
		if e.choosePrimary != 0 {
			s.primary.Add(d.Benefits.Choices[id], e.choosePrimary)
		}
		for attr, delta := range e.secondary {
			secondaryDelta[attr] += delta
		}
		s.damageResistance += e.dr
		s.initiative += e.initiative
		s.resources += e.resources
		if e.resourceFloor > resourceFloor {
			resourceFloor = e.resourceFloor
		}
	}

	for _, id := range heldBenefits(d) {
		if e, ok := benefitEffects[id]; ok {
			apply(e, id)
		}
	}
	for _, id := range dedupe(d.AllBurdens()) {
		if e, ok := burdenEffects[id]; ok {
			apply(e, id)
		}
	}
	if u, ok := t.Upbringing(d.Path.Upbringing); ok {
		if u.AttributeBonus != 0 {
			s.primary.Add(d.Path.BonusAttribute, u.AttributeBonus)
		}
		if u.GritPenalty != 0 {
			secondaryDelta["grt"] += u.GritPenalty
		}
	}
	if s.resources < resourceFloor {
		s.resources = resourceFloor
	}

	for _, id := range character.PrimaryIDs {
		v, _ := s.primary.Get(id)
		if c := character.ClampAttribute(v); c != v {
			s.warnings = append(s.warnings, fmt.Sprintf("%s clamped from %d to %d", ruleset.Abbrev(id), v, c))
			s.primary.Set(id, c)
		}
	}

	s.secondary = character.Derive(s.primary)
	for _, id := range character.SecondaryIDs {
		if delta := secondaryDelta[id]; delta != 0 {
			s.secondary.Add(id, delta)
		}
	}
	// Poise follows the adjusted grit.
	s.secondary.POI = character.Poise(s.primary.INS, s.secondary.GRT) + secondaryDelta["poi"]
	return s
}

// heldBenefits returns every benefit the draft holds, including the upbringing
// benefit chosen on the path step, without duplicates.
func heldBenefits(d *character.Draft) []string {
	all := d.AllBenefits()
	if d.Path.EasyBenefit != "" {
		all = append(all, d.Path.EasyBenefit)
	}
	return dedupe(all)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ResourceRating returns the resource rating the draft will have once assembled.
func ResourceRating(t *ruleset.Tables, d *character.Draft) int {
	return applyEffects(t, d).resources
}
