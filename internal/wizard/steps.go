package wizard

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/game/validation"
)

// stepDef is one entry of the ordered step list. enter prepares the draft
// when the step is entered; merge folds a submitted input into a working copy.
type stepDef struct {
	step  Step
	title string
	enter func(w *Wizard, d *character.Draft) error
	merge func(w *Wizard, d *character.Draft, in Input)
	rules func(t *ruleset.Tables) validation.RuleSet
	view  func(w *Wizard, d *character.Draft, v *View)
}

// steps is the only place step order is defined.
var steps = []stepDef{
	{
		step:  StepAttributes,
		title: "Attributes",
		merge: mergeAttributes,
		rules: func(*ruleset.Tables) validation.RuleSet { return validation.AttributeRules() },
		view:  func(w *Wizard, d *character.Draft, v *View) { v.Attributes = w.attributesView(d) },
	},
	{
		step:  StepPath,
		title: "Path",
		merge: mergePath,
		rules: validation.PathRules,
		view:  func(w *Wizard, d *character.Draft, v *View) { v.Path = w.pathView(d) },
	},
	{
		step:  StepBenefitsBurdens,
		title: "Benefits & Burdens",
		enter: requirePath,
		merge: mergeBenefitsBurdens,
		rules: validation.BenefitBurdenRules,
		view:  func(w *Wizard, d *character.Draft, v *View) { v.Benefits = w.benefitsView(d) },
	},
	{
		step:  StepSkills,
		title: "Skills",
		enter: enterSkills,
		merge: mergeSkills,
		rules: validation.SkillRules,
		view:  func(w *Wizard, d *character.Draft, v *View) { v.Skills = w.skillsView(d) },
	},
	{
		step:  StepTies,
		title: "Ties",
		enter: enterTies,
		merge: mergeTies,
		rules: validation.TieRules,
		view:  func(w *Wizard, d *character.Draft, v *View) { v.Ties = w.tiesView(d) },
	},
	{
		step:  StepFinalDetails,
		title: "Final Details",
		enter: requirePath,
		merge: mergeDetails,
		rules: func(*ruleset.Tables) validation.RuleSet { return validation.DetailRules() },
		view:  func(w *Wizard, d *character.Draft, v *View) { v.Details = w.detailsView(d) },
	},
	{
		step:  StepComplete,
		title: "Complete",
		view: func(w *Wizard, _ *character.Draft, v *View) {
			if w.result != nil {
				v.Complete = &CompleteView{Result: *w.result}
			}
		},
	},
}

func definition(s Step) (stepDef, bool) {
	for _, def := range steps {
		if def.step == s {
			return def, true
		}
	}
	return stepDef{}, false
}

func neighbour(s Step, offset int) (Step, bool) {
	for i, def := range steps {
		if def.step == s {
			j := i + offset
			if j < 0 || j >= len(steps) {
				return s, false
			}
			return steps[j].step, true
		}
	}
	return s, false
}

func position(s Step) int {
	for i, def := range steps {
		if def.step == s {
			return i
		}
	}
	return -1
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// requirePath fails when the draft's profession or upbringing is missing from the tables.
func requirePath(w *Wizard, d *character.Draft) error {
	if _, ok := w.svc.Tables.Profession(d.Path.Profession); !ok {
		return configError("profession %q not found", d.Path.Profession)
	}
	if _, ok := w.svc.Tables.Upbringing(d.Path.Upbringing); !ok {
		return configError("upbringing %q not found", d.Path.Upbringing)
	}
	return nil
}

// enterSkills seeds the professional skills from the profession, keeping any
// type already chosen for a slot, and drops electives the profession does not offer.
func enterSkills(w *Wizard, d *character.Draft) error {
	if err := requirePath(w, d); err != nil {
		return err
	}
	p, _ := w.svc.Tables.Profession(d.Path.Profession)

	previous := make(map[string]string)
	for _, sel := range d.Skills.Professional {
		previous[sel.Name] = sel.Type
	}
	professional := make([]character.SkillSelection, 0, len(p.ProfessionalSkills))
	for _, slot := range p.ProfessionalSkills {
		sel := character.SkillSelection{Name: slot.Name, Type: slot.Type, RequireType: slot.RequireType}
		if slot.RequireType && sel.Type == "" {
			sel.Type = previous[slot.Name]
		}
		professional = append(professional, sel)
	}
	d.Skills.Professional = professional

	var electives []character.SkillSelection
	for _, sel := range d.Skills.Elective {
		if _, ok := p.ElectiveOption(sel.Name); ok {
			electives = append(electives, sel)
		}
	}
	d.Skills.Elective = electives
	return nil
}

// enterTies re-derives the tie budget from the current Presence.
func enterTies(w *Wizard, d *character.Draft) error {
	if err := requirePath(w, d); err != nil {
		return err
	}
	d.Ties.TotalPoints = character.TieBudget(d.Attributes.Primary.PRS)
	d.Ties.Remaining = d.Ties.TotalPoints - d.Ties.AssignedStrength()
	return nil
}

func mergeAttributes(_ *Wizard, d *character.Draft, in Input) {
	a := in.(AttributesInput)
	if name := strings.TrimSpace(a.Name); name != "" {
		d.Name = name
	}
	if a.Primary != nil {
		for _, id := range character.PrimaryIDs {
			v, _ := a.Primary.Get(id)
			d.Attributes.Primary.Set(id, character.ClampAttribute(v))
		}
	}
	d.Recompute()
}

func mergePath(w *Wizard, d *character.Draft, in Input) {
	p := in.(PathInput)
	d.Path = character.Path{
		Profession:     strings.TrimSpace(p.Profession),
		Upbringing:     strings.TrimSpace(p.Upbringing),
		EasyBenefit:    strings.TrimSpace(p.EasyBenefit),
		BonusAttribute: strings.ToLower(strings.TrimSpace(p.BonusAttribute)),
	}
	if u, ok := w.svc.Tables.Upbringing(d.Path.Upbringing); ok {
		if len(u.UpbringingBenefits) == 0 {
			d.Path.EasyBenefit = ""
		}
		if u.AttributeBonus == 0 {
			d.Path.BonusAttribute = ""
		}
	}
}

func mergeBenefitsBurdens(w *Wizard, d *character.Draft, in Input) {
	b := in.(BenefitsBurdensInput)
	p := w.professionOf(d)

	auto := setOf(p.Benefits.Automatic)
	benefits := append([]string(nil), p.Benefits.Automatic...)
	for _, id := range b.Benefits {
		if id = strings.TrimSpace(id); !auto[id] {
			benefits = append(benefits, id)
		}
	}
	if d.Path.EasyBenefit != "" && !contains(benefits, d.Path.EasyBenefit) {
		benefits = append(benefits, d.Path.EasyBenefit)
	}
	d.Benefits.Starting = benefits

	autoBurdens := setOf(p.Burdens.Automatic)
	burdens := append([]string(nil), p.Burdens.Automatic...)
	for _, id := range b.Burdens {
		if id = strings.TrimSpace(id); !autoBurdens[id] {
			burdens = append(burdens, id)
		}
	}
	d.Burdens.Starting = burdens

	d.Benefits.Choices = nil
	for k, v := range b.Choices {
		if d.Benefits.Choices == nil {
			d.Benefits.Choices = make(map[string]string, len(b.Choices))
		}
		d.Benefits.Choices[k] = strings.ToLower(strings.TrimSpace(v))
	}
}

func mergeSkills(w *Wizard, d *character.Draft, in Input) {
	s := in.(SkillsInput)
	for i, sel := range d.Skills.Professional {
		if t, ok := s.ProfessionalTypes[sel.Name]; ok && sel.RequireType {
			d.Skills.Professional[i].Type = strings.TrimSpace(t)
		}
	}
	p := w.professionOf(d)
	electives := make([]character.SkillSelection, 0, len(s.Electives))
	for _, sel := range s.Electives {
		sel.Name = strings.TrimSpace(sel.Name)
		sel.Type = strings.TrimSpace(sel.Type)
		if opt, ok := p.ElectiveOption(sel.Name); ok {
			sel.RequireType = opt.RequireType
			if sel.Type == "" {
				sel.Type = opt.Type
			}
		}
		electives = append(electives, sel)
	}
	d.Skills.Elective = electives
}

func mergeTies(_ *Wizard, d *character.Draft, in Input) {
	t := in.(TiesInput)
	ties := make([]character.Tie, 0, len(t.Ties))
	for _, tie := range t.Ties {
		tie.Name = strings.TrimSpace(tie.Name)
		tie.Desc = strings.TrimSpace(tie.Desc)
		ties = append(ties, tie)
	}
	d.Ties.Assigned = ties
	d.Ties.Remaining = d.Ties.TotalPoints - d.Ties.AssignedStrength()
}

func mergeDetails(_ *Wizard, d *character.Draft, in Input) {
	det := in.(DetailsInput)
	if name := strings.TrimSpace(det.Name); name != "" {
		d.Name = name
	}
	d.Details = det.Details
	d.Details.Age = strings.TrimSpace(d.Details.Age)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
