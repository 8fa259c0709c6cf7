package ruleset

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Attribute describes one primary or secondary character attribute.
//
// Precondition: ID and Name must be non-empty after loading.
type Attribute struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// EntityID returns the attribute identifier, e.g. "vgr".
func (a *Attribute) EntityID() string { return a.ID }

// DisplayName returns the attribute name, e.g. "Vigor".
func (a *Attribute) DisplayName() string { return a.Name }

// Abbrev returns the upper-case code used in rule text, e.g. "VGR".
func (a *Attribute) Abbrev() string { return Abbrev(a.ID) }

// Abbrev upper-cases an attribute identifier for display.
//
// Postcondition: Returns "" for "".
func Abbrev(id string) string {
	// Casers carry state and are not safe to share between goroutines.
	return cases.Upper(language.English).String(id)
}

type attributeFile struct {
	Primary        []*Attribute `yaml:"primary"`
	Secondary      []*Attribute `yaml:"secondary"`
	StandardArray  []int        `yaml:"standard_array"`
	RollExpression string       `yaml:"roll_expression"`
}
