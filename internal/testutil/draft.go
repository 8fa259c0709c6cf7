package testutil

import (
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// DraftBuilder builds character drafts for tests with a fluent interface.
type DraftBuilder struct {
	draft *character.Draft
}

// NewDraftBuilder starts from a fresh draft with every primary at 50.
func NewDraftBuilder() *DraftBuilder {
	return &DraftBuilder{draft: character.NewDraft(50)}
}

// WithPrimary sets all four primaries and re-derives the secondaries.
func (b *DraftBuilder) WithPrimary(vgr, grc, ins, prs int) *DraftBuilder {
	b.draft.Attributes.Primary = character.Primary{VGR: vgr, GRC: grc, INS: ins, PRS: prs}
	b.draft.Recompute()
	return b
}

// WithName sets the character name.
func (b *DraftBuilder) WithName(name string) *DraftBuilder {
	b.draft.Name = name
	return b
}

// WithPath sets profession and upbringing.
func (b *DraftBuilder) WithPath(profession, upbringing string) *DraftBuilder {
	b.draft.Path.Profession = profession
	b.draft.Path.Upbringing = upbringing
	return b
}

// WithEasyBenefit records the upbringing benefit and bonus attribute chosen on the path step.
func (b *DraftBuilder) WithEasyBenefit(benefit, bonusAttribute string) *DraftBuilder {
	b.draft.Path.EasyBenefit = benefit
	b.draft.Path.BonusAttribute = bonusAttribute
	return b
}

// WithBenefits replaces the starting benefits.
func (b *DraftBuilder) WithBenefits(ids ...string) *DraftBuilder {
	b.draft.Benefits.Starting = ids
	return b
}

// WithChoice records a per-benefit choice such as peakPhysique -> grc.
func (b *DraftBuilder) WithChoice(benefit, choice string) *DraftBuilder {
	if b.draft.Benefits.Choices == nil {
		b.draft.Benefits.Choices = make(map[string]string)
	}
	b.draft.Benefits.Choices[benefit] = choice
	return b
}

// WithBurdens replaces the starting burdens.
func (b *DraftBuilder) WithBurdens(ids ...string) *DraftBuilder {
	b.draft.Burdens.Starting = ids
	return b
}

// WithProfessional replaces the professional skills.
func (b *DraftBuilder) WithProfessional(skills ...character.SkillSelection) *DraftBuilder {
	b.draft.Skills.Professional = skills
	return b
}

// WithElectives replaces the elective skills.
func (b *DraftBuilder) WithElectives(skills ...character.SkillSelection) *DraftBuilder {
	b.draft.Skills.Elective = skills
	return b
}

// WithTies sets the tie budget from the current Presence and replaces the assigned ties.
func (b *DraftBuilder) WithTies(ties ...character.Tie) *DraftBuilder {
	b.draft.Ties.TotalPoints = character.TieBudget(b.draft.Attributes.Primary.PRS)
	b.draft.Ties.Assigned = ties
	b.draft.Ties.Remaining = b.draft.Ties.TotalPoints - b.draft.Ties.AssignedStrength()
	return b
}

// WithAge sets the age detail.
func (b *DraftBuilder) WithAge(age string) *DraftBuilder {
	b.draft.Details.Age = age
	return b
}

// WithProfessionDefaults fills skills, automatic grants and ties so that every
// step after the path passes validation for the draft's profession. Types are
// filled with "General" where one is required, the first electives are taken,
// and the tie budget is split evenly with the remainder on the first tie.
//
// Precondition: the draft's profession exists in t.
func (b *DraftBuilder) WithProfessionDefaults(t *ruleset.Tables) *DraftBuilder {
	p, _ := t.Profession(b.draft.Path.Profession)

	b.draft.Benefits.Starting = append([]string(nil), p.Benefits.Automatic...)
	if len(p.Benefits.Options) > 0 {
		b.draft.Benefits.Starting = append(b.draft.Benefits.Starting, p.Benefits.Options[0])
	}
	burdens := append([]string(nil), p.Burdens.Automatic...)
	for _, id := range p.Burdens.Options {
		if len(burdens) >= p.Burdens.Count {
			break
		}
		burdens = append(burdens, id)
	}
	b.draft.Burdens.Starting = burdens

	b.draft.Skills.Professional = nil
	for _, slot := range p.ProfessionalSkills {
		b.draft.Skills.Professional = append(b.draft.Skills.Professional, selectionFor(slot))
	}
	b.draft.Skills.Elective = nil
	for _, slot := range p.Electives.Options[:p.Electives.Count] {
		b.draft.Skills.Elective = append(b.draft.Skills.Elective, selectionFor(slot))
	}

	budget := character.TieBudget(b.draft.Attributes.Primary.PRS)
	ties := make([]character.Tie, p.Ties)
	for i := range ties {
		ties[i] = character.Tie{Name: "Contact " + string(rune('A'+i)), Desc: "Someone who matters", Strength: budget / p.Ties}
	}
	ties[0].Strength += budget % p.Ties
	return b.WithTies(ties...)
}

func selectionFor(slot ruleset.SkillSlot) character.SkillSelection {
	sel := character.SkillSelection{Name: slot.Name, Type: slot.Type, RequireType: slot.RequireType}
	if slot.RequireType && sel.Type == "" {
		sel.Type = "General"
	}
	return sel
}

// Build returns a deep copy of the draft so the builder can be reused.
func (b *DraftBuilder) Build() *character.Draft {
	return b.draft.Clone()
}
