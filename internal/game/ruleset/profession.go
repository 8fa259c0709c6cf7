package ruleset

const (
	// DefaultCoreMinimum is the core-attribute score a profession requires when its file omits one.
	DefaultCoreMinimum = 50
	// DefaultBenefitLimit is the number of benefits a profession allows when its file omits a limit.
	DefaultBenefitLimit = 1
)

// SkillSlot is one skill a profession grants or offers. Type is a fixed
// specialisation ("Pistols"); RequireType means the player must name one.
type SkillSlot struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	RequireType bool   `yaml:"require_type"`
}

// ElectiveRule is the number of elective skills to pick and the options to pick from.
type ElectiveRule struct {
	Count   int         `yaml:"count"`
	Options []SkillSlot `yaml:"options"`
}

// BenefitRule restricts benefit selection for a profession.
// Automatic benefits are granted unconditionally and never count against Limit.
type BenefitRule struct {
	Limit     int      `yaml:"limit"`
	Text      string   `yaml:"text"`
	Options   []string `yaml:"options"`
	Automatic []string `yaml:"automatic"`
}

// BurdenRule fixes the number of burdens a profession carries.
// Automatic burdens count toward Count.
type BurdenRule struct {
	Count     int      `yaml:"count"`
	Options   []string `yaml:"options"`
	Automatic []string `yaml:"automatic"`
}

// Profession is a fixed archetype: core attribute gate, skills, benefit and
// burden rules, resources, ties, and starting equipment.
//
// Precondition: ID, Name and CoreAttribute must be non-empty after loading.
type Profession struct {
	ID                 string       `yaml:"id"`
	Name               string       `yaml:"name"`
	Description        string       `yaml:"description"`
	CoreAttribute      string       `yaml:"core_attribute"`
	CoreMinimum        int          `yaml:"core_minimum"`
	ProfessionalSkills []SkillSlot  `yaml:"professional_skills"`
	Electives          ElectiveRule `yaml:"electives"`
	Benefits           BenefitRule  `yaml:"benefits"`
	Burdens            BurdenRule   `yaml:"burdens"`
	Resources          int          `yaml:"resources"`
	ResourceDesc       string       `yaml:"resource_desc"`
	Ties               int          `yaml:"ties"`
	TiesDesc           string       `yaml:"ties_desc"`
	Equipment          []string     `yaml:"equipment"`
}

// EntityID returns the profession identifier.
func (p *Profession) EntityID() string { return p.ID }

// DisplayName returns the profession name.
func (p *Profession) DisplayName() string { return p.Name }

// MinimumCore returns the core-attribute score required to take the profession.
//
// Postcondition: Returns DefaultCoreMinimum when CoreMinimum is unset.
func (p *Profession) MinimumCore() int {
	if p.CoreMinimum <= 0 {
		return DefaultCoreMinimum
	}
	return p.CoreMinimum
}

// BenefitLimit returns the number of benefits a player may choose.
//
// Postcondition: Returns DefaultBenefitLimit when Benefits.Limit is unset.
func (p *Profession) BenefitLimit() int {
	if p.Benefits.Limit <= 0 {
		return DefaultBenefitLimit
	}
	return p.Benefits.Limit
}

// ProfessionalSlot returns the professional skill slot with the given name.
func (p *Profession) ProfessionalSlot(name string) (SkillSlot, bool) {
	for _, s := range p.ProfessionalSkills {
		if s.Name == name {
			return s, true
		}
	}
	return SkillSlot{}, false
}

// ElectiveOption returns the elective option with the given name.
func (p *Profession) ElectiveOption(name string) (SkillSlot, bool) {
	for _, s := range p.Electives.Options {
		if s.Name == name {
			return s, true
		}
	}
	return SkillSlot{}, false
}
