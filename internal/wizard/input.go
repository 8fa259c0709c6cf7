package wizard

import "github.com/cory-johannsen/vestige/internal/game/character"

// Input is the typed payload submitted for one step.
// Only the input types in this package implement it.
type Input interface {
	forStep() Step
}

// AttributesInput completes the attributes step. A nil Primary keeps the
// current scores; an empty Name keeps the current name.
type AttributesInput struct {
	Name    string
	Primary *character.Primary
}

// PathInput selects profession and upbringing. EasyBenefit and BonusAttribute
// are ignored unless the upbringing offers them.
type PathInput struct {
	Profession     string
	Upbringing     string
	EasyBenefit    string
	BonusAttribute string
}

// BenefitsBurdensInput lists the chosen benefits and burdens. Automatic
// profession grants and the path-step upbringing benefit are added on merge.
type BenefitsBurdensInput struct {
	Benefits []string
	Burdens  []string
	Choices  map[string]string
}

// SkillsInput names the types of typed professional skills and the chosen electives.
type SkillsInput struct {
	ProfessionalTypes map[string]string
	Electives         []character.SkillSelection
}

// TiesInput lists the ties in display order.
type TiesInput struct {
	Ties []character.Tie
}

// DetailsInput completes the final details step. An empty Name keeps the current name.
type DetailsInput struct {
	Name    string
	Details character.Details
}

func (AttributesInput) forStep() Step      { return StepAttributes }
func (PathInput) forStep() Step            { return StepPath }
func (BenefitsBurdensInput) forStep() Step { return StepBenefitsBurdens }
func (SkillsInput) forStep() Step          { return StepSkills }
func (TiesInput) forStep() Step            { return StepTies }
func (DetailsInput) forStep() Step         { return StepFinalDetails }
