package ruleset

import "strings"

// SkillArea groups skills for the character sheet, e.g. "attention".
type SkillArea struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// SkillDefinition is the canonical metadata for a skill, keyed by base name.
// Area and Governing may be empty in the file; the table defaults apply.
type SkillDefinition struct {
	Name      string `yaml:"name"`
	Area      string `yaml:"area"`
	Governing string `yaml:"governing"`
}

// EntityID returns the skill base name.
func (s *SkillDefinition) EntityID() string { return s.Name }

// DisplayName returns the skill base name.
func (s *SkillDefinition) DisplayName() string { return s.Name }

type skillFile struct {
	DefaultArea      string             `yaml:"default_area"`
	DefaultGoverning string             `yaml:"default_governing"`
	Areas            []*SkillArea       `yaml:"areas"`
	Skills           []*SkillDefinition `yaml:"skills"`
}

// BaseSkillName strips a parenthetical type suffix: "Ranged Combat (Pistols)" becomes "Ranged Combat".
//
// Postcondition: Returns a trimmed string containing no '('.
func BaseSkillName(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
