// Package character defines the in-progress character draft and the pure
// attribute arithmetic shared by every creation step.
package character

// Draft is the single mutable record carried through character creation.
// A zero-value string in Path means "not chosen yet".
type Draft struct {
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`
	Path       Path       `json:"path"`
	Benefits   Benefits   `json:"benefits"`
	Burdens    Burdens    `json:"burdens"`
	Skills     Skills     `json:"skills"`
	Ties       Ties       `json:"ties"`
	Details    Details    `json:"details"`
}

// Attributes pairs the primary scores with their derived secondaries.
type Attributes struct {
	Primary   Primary   `json:"primary"`
	Secondary Secondary `json:"secondary"`
}

// Path holds the profession and upbringing choices.
// EasyBenefit is the upbringing benefit taken on the path step and
// BonusAttribute the primary that receives the upbringing attribute bonus.
type Path struct {
	Profession     string `json:"profession,omitempty"`
	Upbringing     string `json:"upbringing,omitempty"`
	EasyBenefit    string `json:"easyBenefit,omitempty"`
	BonusAttribute string `json:"bonusAttribute,omitempty"`
}

// Benefits lists benefit ids. Choices records per-benefit decisions,
// e.g. "peakPhysique" -> "grc".
type Benefits struct {
	Starting  []string          `json:"starting"`
	Purchased []string          `json:"purchased"`
	Choices   map[string]string `json:"choices,omitempty"`
}

// Burdens lists burden ids.
type Burdens struct {
	Starting []string `json:"starting"`
	Acquired []string `json:"acquired"`
}

// SkillSelection is one chosen skill. RequireType means Type must be non-empty
// before the skills step can be left.
type SkillSelection struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	RequireType bool   `json:"requireType"`
}

// DisplayName renders "Name (Type)" when a type is set, otherwise Name.
func (s SkillSelection) DisplayName() string {
	if s.Type == "" {
		return s.Name
	}
	return s.Name + " (" + s.Type + ")"
}

// Skills holds the professional and elective selections.
type Skills struct {
	Professional []SkillSelection `json:"professional"`
	Elective     []SkillSelection `json:"elective"`
}

// Tie is a named personal relationship with an allocated strength.
type Tie struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Strength int    `json:"strength"`
}

// Ties holds the tie budget and the assigned ties.
type Ties struct {
	TotalPoints int   `json:"totalPoints"`
	Assigned    []Tie `json:"assigned"`
	Remaining   int   `json:"remaining"`
}

// PersonalHistory holds the free-text background prompts.
type PersonalHistory struct {
	Identity   string `json:"identity,omitempty"`
	Appearance string `json:"appearance,omitempty"`
	Origins    string `json:"origins,omitempty"`
	Community  string `json:"community,omitempty"`
	Motivation string `json:"motivation,omitempty"`
}

// Considerations holds the optional "additional considerations" prompts.
type Considerations struct {
	PersonalTraits string `json:"personalTraits,omitempty"`
	Possessions    string `json:"possessions,omitempty"`
	Beliefs        string `json:"beliefs,omitempty"`
	Technology     string `json:"technology,omitempty"`
	Survival       string `json:"survival,omitempty"`
	Ambitions      string `json:"ambitions,omitempty"`
}

// Details holds the final free-text fields.
type Details struct {
	Age            string          `json:"age,omitempty"`
	Gender         string          `json:"gender,omitempty"`
	Description    string          `json:"description,omitempty"`
	Memories       string          `json:"memories,omitempty"`
	MemoryClingTo  string          `json:"memoryClingTo,omitempty"`
	MemoryForget   string          `json:"memoryForget,omitempty"`
	History        PersonalHistory `json:"history"`
	Considerations Considerations  `json:"considerations"`
}

// NewDraft returns an empty draft whose primaries all start at baseline.
//
// Precondition: baseline should be within [0,100]; it is clamped otherwise.
// Postcondition: Secondary attributes equal Derive(Primary).
func NewDraft(baseline int) *Draft {
	b := ClampAttribute(baseline)
	d := &Draft{
		Attributes: Attributes{Primary: Primary{VGR: b, GRC: b, INS: b, PRS: b}},
	}
	d.Recompute()
	return d
}

// Recompute replaces the secondary attributes with Derive(Primary).
func (d *Draft) Recompute() {
	d.Attributes.Secondary = Derive(d.Attributes.Primary)
}

// Normalize clamps every primary into range and re-derives the secondaries.
// Drafts read from outside the process go through it before use.
func (d *Draft) Normalize() {
	for _, id := range PrimaryIDs {
		v, _ := d.Attributes.Primary.Get(id)
		d.Attributes.Primary.Set(id, ClampAttribute(v))
	}
	d.Recompute()
}

// AllBenefits returns starting then purchased benefit ids.
func (d *Draft) AllBenefits() []string {
	out := make([]string, 0, len(d.Benefits.Starting)+len(d.Benefits.Purchased))
	out = append(out, d.Benefits.Starting...)
	return append(out, d.Benefits.Purchased...)
}

// AllBurdens returns starting then acquired burden ids.
func (d *Draft) AllBurdens() []string {
	out := make([]string, 0, len(d.Burdens.Starting)+len(d.Burdens.Acquired))
	out = append(out, d.Burdens.Starting...)
	return append(out, d.Burdens.Acquired...)
}

// AllSkills returns professional then elective selections.
func (d *Draft) AllSkills() []SkillSelection {
	out := make([]SkillSelection, 0, len(d.Skills.Professional)+len(d.Skills.Elective))
	out = append(out, d.Skills.Professional...)
	return append(out, d.Skills.Elective...)
}

// Clone returns a deep copy. Mutating the copy never affects d.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Benefits.Starting = cloneStrings(d.Benefits.Starting)
	c.Benefits.Purchased = cloneStrings(d.Benefits.Purchased)
	if d.Benefits.Choices != nil {
		c.Benefits.Choices = make(map[string]string, len(d.Benefits.Choices))
		for k, v := range d.Benefits.Choices {
			c.Benefits.Choices[k] = v
		}
	}
	c.Burdens.Starting = cloneStrings(d.Burdens.Starting)
	c.Burdens.Acquired = cloneStrings(d.Burdens.Acquired)
	if d.Skills.Professional != nil {
		c.Skills.Professional = append([]SkillSelection(nil), d.Skills.Professional...)
	}
	if d.Skills.Elective != nil {
		c.Skills.Elective = append([]SkillSelection(nil), d.Skills.Elective...)
	}
	if d.Ties.Assigned != nil {
		c.Ties.Assigned = append([]Tie(nil), d.Ties.Assigned...)
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
