package ruleset

// Upbringing is a background category that widens or narrows the benefit and
// burden pools and may carry attribute adjustments.
//
// UpbringingBenefits are offered as a single choice on the path step; taking one
// adds a benefit slot. BenefitOptions and BurdenOptions extend the pools offered
// on the benefits step. ExtraBurdens raises the burden requirement.
//
// Precondition: ID and Name must be non-empty after loading.
type Upbringing struct {
	ID                 string   `yaml:"id"`
	Order              int      `yaml:"order"`
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description"`
	AttributeBonus     int      `yaml:"attribute_bonus"`
	GritPenalty        int      `yaml:"grit_penalty"`
	UpbringingBenefits []string `yaml:"upbringing_benefits"`
	BenefitOptions     []string `yaml:"benefit_options"`
	BurdenOptions      []string `yaml:"burden_options"`
	ExtraBurdens       int      `yaml:"extra_burdens"`
}

// EntityID returns the upbringing identifier.
func (u *Upbringing) EntityID() string { return u.ID }

// DisplayName returns the upbringing name.
func (u *Upbringing) DisplayName() string { return u.Name }

// OffersBenefit reports whether id is one of the path-step upbringing benefits.
func (u *Upbringing) OffersBenefit(id string) bool {
	return contains(u.UpbringingBenefits, id)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
