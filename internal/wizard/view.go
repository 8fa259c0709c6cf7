package wizard

import (
	"github.com/cory-johannsen/vestige/internal/game/assembly"
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/game/validation"
)

// View is a render-ready snapshot of the current step. Exactly one of the
// step sections is non-nil.
type View struct {
	Step  Step
	Title string
	Index int
	Total int
	Draft *character.Draft

	Attributes *AttributesView
	Path       *PathView
	Benefits   *BenefitsView
	Skills     *SkillsView
	Ties       *TiesView
	Details    *DetailsView
	Complete   *CompleteView
}

// Option is one selectable reference entry.
type Option struct {
	ID          string
	Name        string
	Description string
	Selected    bool
}

// AttributeRow is one attribute line.
type AttributeRow struct {
	ID          string
	Abbrev      string
	Name        string
	Description string
	Value       int
}

// AttributesView describes the attributes step.
type AttributesView struct {
	Name           string
	Primary        []AttributeRow
	Secondary      []AttributeRow
	StandardArray  []int
	RollExpression string
}

// ProfessionOption is a profession with its core-attribute gate.
type ProfessionOption struct {
	Option
	CoreAttribute string
	CoreMinimum   int
	Eligible      bool
}

// PathView describes the path step.
type PathView struct {
	Professions        []ProfessionOption
	Upbringings        []Option
	UpbringingBenefits []Option
	AttributeBonus     int
	GritPenalty        int
	BonusAttribute     string
}

// BenefitsView describes the benefits and burdens step.
type BenefitsView struct {
	Text              string
	Limit             int
	Benefits          []Option
	AutomaticBenefits []Option
	UpbringingBenefit *Option
	BurdenRequirement int
	Burdens           []Option
	AutomaticBurdens  []Option
	Choices           map[string]string
}

// SkillRow is one professional skill or elective option.
type SkillRow struct {
	Name        string
	Type        string
	RequireType bool
	Area        string
	Governing   string
	Selected    bool
}

// SkillsView describes the skills step.
type SkillsView struct {
	Professional  []SkillRow
	ElectiveCount int
	Electives     []SkillRow
}

// TieRow is one tie with its strength description.
type TieRow struct {
	character.Tie
	Bond string
}

// TiesView describes the ties step.
type TiesView struct {
	Count       int
	Description string
	TotalPoints int
	Remaining   int
	Ties        []TieRow
}

// DetailsView describes the final details step.
type DetailsView struct {
	Name          string
	Details       character.Details
	Resources     int
	ResourceDesc  string
	Equipment     []string
	ResourceItems []string
}

// CompleteView summarizes the created character.
type CompleteView struct {
	Result assembly.Result
}

func (w *Wizard) attributesView(d *character.Draft) *AttributesView {
	t := w.svc.Tables
	v := &AttributesView{
		Name:           d.Name,
		StandardArray:  t.StandardArray(),
		RollExpression: t.RollExpression(),
	}
	for _, a := range t.PrimaryAttributes() {
		val, _ := d.Attributes.Primary.Get(a.ID)
		v.Primary = append(v.Primary, AttributeRow{ID: a.ID, Abbrev: a.Abbrev(), Name: a.Name, Description: a.Description, Value: val})
	}
	for _, a := range t.SecondaryAttributes() {
		val, _ := d.Attributes.Secondary.Get(a.ID)
		v.Secondary = append(v.Secondary, AttributeRow{ID: a.ID, Abbrev: a.Abbrev(), Name: a.Name, Description: a.Description, Value: val})
	}
	return v
}

func (w *Wizard) pathView(d *character.Draft) *PathView {
	t := w.svc.Tables
	v := &PathView{BonusAttribute: d.Path.BonusAttribute}
	for _, p := range t.Professions() {
		v.Professions = append(v.Professions, ProfessionOption{
			Option:        Option{ID: p.ID, Name: p.Name, Description: p.Description, Selected: p.ID == d.Path.Profession},
			CoreAttribute: ruleset.Abbrev(p.CoreAttribute),
			CoreMinimum:   p.MinimumCore(),
			Eligible:      validation.CheckProfession(d, p) == nil,
		})
	}
	for _, u := range t.Upbringings() {
		v.Upbringings = append(v.Upbringings, Option{ID: u.ID, Name: u.Name, Description: u.Description, Selected: u.ID == d.Path.Upbringing})
	}
	if u, ok := t.Upbringing(d.Path.Upbringing); ok {
		v.AttributeBonus = u.AttributeBonus
		v.GritPenalty = u.GritPenalty
		for _, id := range u.UpbringingBenefits {
			v.UpbringingBenefits = append(v.UpbringingBenefits, w.benefitOption(id, id == d.Path.EasyBenefit))
		}
	}
	return v
}

func (w *Wizard) benefitsView(d *character.Draft) *BenefitsView {
	t := w.svc.Tables
	p := w.professionOf(d)
	held := setOf(d.AllBenefits())
	carried := setOf(d.AllBurdens())
	auto := setOf(p.Benefits.Automatic)
	autoBurdens := setOf(p.Burdens.Automatic)

	v := &BenefitsView{
		Text:              p.Benefits.Text,
		Limit:             validation.BenefitLimit(t, d),
		BurdenRequirement: validation.BurdenRequirement(t, d),
		Choices:           d.Benefits.Choices,
	}
	if d.Path.EasyBenefit != "" {
		opt := w.benefitOption(d.Path.EasyBenefit, true)
		v.UpbringingBenefit = &opt
	}
	allowed := validation.AllowedBenefits(t, d)
	for _, b := range t.Benefits() {
		switch {
		case auto[b.ID]:
			v.AutomaticBenefits = append(v.AutomaticBenefits, w.benefitOption(b.ID, true))
		case b.ID == d.Path.EasyBenefit:
		case allowed[b.ID]:
			v.Benefits = append(v.Benefits, w.benefitOption(b.ID, held[b.ID]))
		}
	}
	allowedBurdens := validation.AllowedBurdens(t, d)
	for _, b := range t.Burdens() {
		opt := Option{ID: b.ID, Name: b.Name, Description: b.Description, Selected: carried[b.ID]}
		switch {
		case autoBurdens[b.ID]:
			opt.Selected = true
			v.AutomaticBurdens = append(v.AutomaticBurdens, opt)
		case allowedBurdens[b.ID]:
			v.Burdens = append(v.Burdens, opt)
		}
	}
	return v
}

func (w *Wizard) benefitOption(id string, selected bool) Option {
	o := Option{ID: id, Name: id, Selected: selected}
	if b, ok := w.svc.Tables.Benefit(id); ok {
		o.Name, o.Description = b.Name, b.Description
	}
	return o
}

func (w *Wizard) skillsView(d *character.Draft) *SkillsView {
	t := w.svc.Tables
	p := w.professionOf(d)
	v := &SkillsView{ElectiveCount: p.Electives.Count}
	for _, sel := range d.Skills.Professional {
		area, gov := t.SkillMeta(sel.Name)
		v.Professional = append(v.Professional, SkillRow{Name: sel.Name, Type: sel.Type, RequireType: sel.RequireType, Area: area, Governing: gov, Selected: true})
	}
	for _, opt := range p.Electives.Options {
		area, gov := t.SkillMeta(opt.Name)
		row := SkillRow{Name: opt.Name, Type: opt.Type, RequireType: opt.RequireType, Area: area, Governing: gov}
		for _, sel := range d.Skills.Elective {
			if sel.Name == opt.Name {
				row.Selected, row.Type = true, sel.Type
			}
		}
		v.Electives = append(v.Electives, row)
	}
	return v
}

func (w *Wizard) tiesView(d *character.Draft) *TiesView {
	p := w.professionOf(d)
	v := &TiesView{
		Count:       p.Ties,
		Description: p.TiesDesc,
		TotalPoints: d.Ties.TotalPoints,
		Remaining:   d.Ties.Remaining,
	}
	for _, tie := range d.Ties.Assigned {
		v.Ties = append(v.Ties, TieRow{Tie: tie, Bond: character.StrengthDescription(tie.Strength)})
	}
	return v
}

func (w *Wizard) detailsView(d *character.Draft) *DetailsView {
	t := w.svc.Tables
	p := w.professionOf(d)
	resources := assembly.ResourceRating(t, d)
	return &DetailsView{
		Name:          d.Name,
		Details:       d.Details,
		Resources:     resources,
		ResourceDesc:  p.ResourceDesc,
		Equipment:     p.Equipment,
		ResourceItems: t.ResourceTier(resources).Items,
	}
}

// professionOf returns the draft's profession, or an empty profession when the
// id is unknown so views of inconsistent restored state stay renderable.
func (w *Wizard) professionOf(d *character.Draft) *ruleset.Profession {
	if p, ok := w.svc.Tables.Profession(d.Path.Profession); ok {
		return p
	}
	return &ruleset.Profession{}
}

func setOf(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
