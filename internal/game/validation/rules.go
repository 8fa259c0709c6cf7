package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// peakPhysique is the one benefit that needs an attribute choice recorded in Benefits.Choices.
const peakPhysique = "peakPhysique"

// AttributeRules validates the attributes step.
func AttributeRules() RuleSet {
	return RuleSet{
		func(d *character.Draft) error {
			p := d.Attributes.Primary
			if p.VGR == 0 || p.GRC == 0 || p.INS == 0 || p.PRS == 0 {
				return errors.New("Please set all attributes before continuing")
			}
			return nil
		},
		func(d *character.Draft) error {
			var errs []error
			for _, id := range character.PrimaryIDs {
				v, _ := d.Attributes.Primary.Get(id)
				if v < character.MinAttribute || v > character.MaxAttribute {
					errs = append(errs, problem("%s must be between %d and %d", ruleset.Abbrev(id), character.MinAttribute, character.MaxAttribute))
				}
			}
			return errors.Join(errs...)
		},
	}
}

// PathRules validates the profession and upbringing step.
//
// Precondition: t must be non-nil.
func PathRules(t *ruleset.Tables) RuleSet {
	return RuleSet{
		func(d *character.Draft) error {
			if d.Path.Profession == "" || d.Path.Upbringing == "" {
				return errors.New("Please select both profession and upbringing")
			}
			return nil
		},
		func(d *character.Draft) error {
			var errs []error
			if d.Path.Profession != "" {
				if _, ok := t.Profession(d.Path.Profession); !ok {
					errs = append(errs, problem("Unknown profession: %s", d.Path.Profession))
				}
			}
			if d.Path.Upbringing != "" {
				if _, ok := t.Upbringing(d.Path.Upbringing); !ok {
					errs = append(errs, problem("Unknown upbringing: %s", d.Path.Upbringing))
				}
			}
			return errors.Join(errs...)
		},
		func(d *character.Draft) error {
			p, ok := t.Profession(d.Path.Profession)
			if !ok {
				return nil
			}
			return CheckProfession(d, p)
		},
		func(d *character.Draft) error {
			u, ok := t.Upbringing(d.Path.Upbringing)
			if !ok {
				if d.Path.EasyBenefit != "" {
					return problem("%s is not available without an upbringing that offers it", benefitName(t, d.Path.EasyBenefit))
				}
				return nil
			}
			if d.Path.EasyBenefit != "" && !u.OffersBenefit(d.Path.EasyBenefit) {
				return problem("%s is not an upbringing benefit for %s", benefitName(t, d.Path.EasyBenefit), u.Name)
			}
			return nil
		},
		func(d *character.Draft) error {
			u, ok := t.Upbringing(d.Path.Upbringing)
			if !ok || u.AttributeBonus == 0 {
				return nil
			}
			if d.Path.BonusAttribute == "" {
				return problem("Please choose an attribute to receive the %s upbringing bonus", u.Name)
			}
			if !t.IsPrimary(d.Path.BonusAttribute) {
				return problem("%s is not a primary attribute", d.Path.BonusAttribute)
			}
			return nil
		},
	}
}

// BenefitBurdenRules validates the benefits and burdens step.
//
// Precondition: t must be non-nil and the draft's path must already be valid.
func BenefitBurdenRules(t *ruleset.Tables) RuleSet {
	return RuleSet{
		func(d *character.Draft) error {
			p, ok := t.Profession(d.Path.Profession)
			if !ok {
				return problem("Unknown profession: %s", d.Path.Profession)
			}
			auto := setOf(p.Benefits.Automatic)
			chosen := 0
			for _, id := range d.Benefits.Starting {
				if !auto[id] {
					chosen++
				}
			}
			if limit := BenefitLimit(t, d); chosen > limit {
				return problem("Cannot select more than %d benefits", limit)
			}
			return nil
		},
		func(d *character.Draft) error {
			if hasDuplicates(d.AllBenefits()) {
				return errors.New("Cannot select the same benefit multiple times")
			}
			return nil
		},
		func(d *character.Draft) error {
			allowed := AllowedBenefits(t, d)
			var invalid []string
			for _, id := range d.Benefits.Starting {
				if !allowed[id] {
					invalid = append(invalid, id)
				}
			}
			if len(invalid) > 0 {
				return problem("Invalid benefits selected: %s", strings.Join(invalid, ", "))
			}
			return nil
		},
		func(d *character.Draft) error {
			if !contains(d.AllBenefits(), peakPhysique) {
				return nil
			}
			switch d.Benefits.Choices[peakPhysique] {
			case "vgr", "grc":
				return nil
			}
			return problem("Please choose VGR or GRC for %s", benefitName(t, peakPhysique))
		},
		func(d *character.Draft) error {
			if want := BurdenRequirement(t, d); len(d.Burdens.Starting) != want {
				return problem("Must select exactly %d burden(s)", want)
			}
			return nil
		},
		func(d *character.Draft) error {
			if hasDuplicates(d.AllBurdens()) {
				return errors.New("Cannot select the same burden multiple times")
			}
			return nil
		},
		func(d *character.Draft) error {
			allowed := AllowedBurdens(t, d)
			var invalid []string
			for _, id := range d.Burdens.Starting {
				if !allowed[id] {
					invalid = append(invalid, id)
				}
			}
			if len(invalid) > 0 {
				return problem("Invalid burdens selected: %s", strings.Join(invalid, ", "))
			}
			return nil
		},
	}
}

// SkillRules validates the skills step.
//
// Precondition: t must be non-nil.
func SkillRules(t *ruleset.Tables) RuleSet {
	return RuleSet{
		func(d *character.Draft) error {
			p, ok := t.Profession(d.Path.Profession)
			if !ok {
				return problem("Unknown profession: %s", d.Path.Profession)
			}
			var errs []error
			for _, slot := range p.ProfessionalSkills {
				sel, found := findSkill(d.Skills.Professional, slot.Name)
				if !found {
					errs = append(errs, problem("Missing required skill: %s", slot.Name))
					continue
				}
				if slot.RequireType && strings.TrimSpace(sel.Type) == "" {
					errs = append(errs, problem("Type required for %s", slot.Name))
				}
			}
			return errors.Join(errs...)
		},
		func(d *character.Draft) error {
			p, ok := t.Profession(d.Path.Profession)
			if !ok {
				return nil
			}
			if len(d.Skills.Elective) != p.Electives.Count {
				return problem("Must select %d elective skills", p.Electives.Count)
			}
			return nil
		},
		func(d *character.Draft) error {
			p, ok := t.Profession(d.Path.Profession)
			if !ok {
				return nil
			}
			var errs []error
			seen := make(map[string]bool)
			for _, sel := range d.Skills.Elective {
				opt, valid := p.ElectiveOption(sel.Name)
				if !valid {
					errs = append(errs, problem("%s is not a valid elective option", sel.Name))
					continue
				}
				if seen[sel.DisplayName()] {
					errs = append(errs, problem("%s selected more than once", sel.DisplayName()))
				}
				seen[sel.DisplayName()] = true
				if opt.RequireType && strings.TrimSpace(sel.Type) == "" {
					errs = append(errs, problem("Type required for elective skill %s", sel.Name))
				}
			}
			return errors.Join(errs...)
		},
	}
}

// TieRules validates the ties step.
//
// Precondition: t must be non-nil and d.Ties.TotalPoints already derived.
func TieRules(t *ruleset.Tables) RuleSet {
	return RuleSet{
		func(d *character.Draft) error {
			p, ok := t.Profession(d.Path.Profession)
			if !ok {
				return problem("Unknown profession: %s", d.Path.Profession)
			}
			if len(d.Ties.Assigned) != p.Ties {
				return problem("Must create exactly %d ties", p.Ties)
			}
			return nil
		},
		func(d *character.Draft) error {
			var errs []error
			for i, tie := range d.Ties.Assigned {
				n := i + 1
				if strings.TrimSpace(tie.Name) == "" || strings.TrimSpace(tie.Desc) == "" {
					errs = append(errs, problem("Please complete all fields for Tie %d", n))
				}
				if tie.Strength < 1 || tie.Strength > 100 {
					errs = append(errs, problem("Please enter a valid strength (1-100) for Tie %d", n))
				}
			}
			return errors.Join(errs...)
		},
		func(d *character.Draft) error {
			if sum := d.Ties.AssignedStrength(); sum != d.Ties.TotalPoints {
				return problem("Total strength must equal %d (currently %d)", d.Ties.TotalPoints, sum)
			}
			return nil
		},
	}
}

// DetailRules validates the final details step.
func DetailRules() RuleSet {
	return RuleSet{
		func(d *character.Draft) error {
			if strings.TrimSpace(d.Name) == "" {
				return errors.New("Please provide a character name")
			}
			return nil
		},
		func(d *character.Draft) error {
			age := strings.TrimSpace(d.Details.Age)
			if age == "" {
				return nil
			}
			if n, err := strconv.Atoi(age); err != nil || n < 0 {
				return errors.New("Age must be a whole number")
			}
			return nil
		},
	}
}

func findSkill(list []character.SkillSelection, name string) (character.SkillSelection, bool) {
	for _, s := range list {
		if s.Name == name {
			return s, true
		}
	}
	return character.SkillSelection{}, false
}

func benefitName(t *ruleset.Tables, id string) string {
	if b, ok := t.Benefit(id); ok {
		return b.Name
	}
	return id
}
