// Package ruleset loads the Vestige reference tables and exposes read-only lookups over them.
package ruleset

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// ErrNotFound is returned (wrapped) when a lookup names an unknown identifier.
var ErrNotFound = errors.New("not found")

// Kind names one of the reference tables.
type Kind string

const (
	KindAttribute  Kind = "attribute"
	KindBenefit    Kind = "benefit"
	KindBurden     Kind = "burden"
	KindProfession Kind = "profession"
	KindUpbringing Kind = "upbringing"
	KindSkill      Kind = "skill"
)

// Entity is any keyed reference record.
type Entity interface {
	EntityID() string
	DisplayName() string
}

// Tables holds every reference table. It is immutable after LoadTables returns
// and safe for concurrent reads.
type Tables struct {
	primary        []*Attribute
	secondary      []*Attribute
	standardArray  []int
	rollExpression string

	benefits     []*Benefit
	benefitsByID map[string]*Benefit
	burdens      []*Burden
	burdensByID  map[string]*Burden

	areas            []*SkillArea
	skills           []*SkillDefinition
	skillsByName     map[string]*SkillDefinition
	defaultArea      string
	defaultGoverning string

	professions     []*Profession
	professionsByID map[string]*Profession
	upbringings     []*Upbringing
	upbringingsByID map[string]*Upbringing

	tiers []*ResourceTier
}

// LoadTables reads the reference tables from fsys and validates every cross reference.
//
// Expected layout: attributes.yaml, benefits.yaml, burdens.yaml, skills.yaml,
// resources.yaml, professions/*.yaml, upbringings/*.yaml.
//
// Precondition: fsys must be non-nil.
// Postcondition: Returns fully validated Tables, or an error naming every violation found.
func LoadTables(fsys fs.FS) (*Tables, error) {
	var attrs attributeFile
	if err := decodeFile(fsys, "attributes.yaml", &attrs); err != nil {
		return nil, err
	}
	var bf benefitFile
	if err := decodeFile(fsys, "benefits.yaml", &bf); err != nil {
		return nil, err
	}
	var uf burdenFile
	if err := decodeFile(fsys, "burdens.yaml", &uf); err != nil {
		return nil, err
	}
	var sf skillFile
	if err := decodeFile(fsys, "skills.yaml", &sf); err != nil {
		return nil, err
	}
	var rf resourceFile
	if err := decodeFile(fsys, "resources.yaml", &rf); err != nil {
		return nil, err
	}

	professions, err := loadProfessions(fsys)
	if err != nil {
		return nil, err
	}
	upbringings, err := loadUpbringings(fsys)
	if err != nil {
		return nil, err
	}

	t := &Tables{
		primary:          attrs.Primary,
		secondary:        attrs.Secondary,
		standardArray:    attrs.StandardArray,
		rollExpression:   attrs.RollExpression,
		benefits:         bf.Benefits,
		benefitsByID:     make(map[string]*Benefit, len(bf.Benefits)),
		burdens:          uf.Burdens,
		burdensByID:      make(map[string]*Burden, len(uf.Burdens)),
		areas:            sf.Areas,
		skills:           sf.Skills,
		skillsByName:     make(map[string]*SkillDefinition, len(sf.Skills)),
		defaultArea:      sf.DefaultArea,
		defaultGoverning: sf.DefaultGoverning,
		professions:      professions,
		professionsByID:  make(map[string]*Profession, len(professions)),
		upbringings:      upbringings,
		upbringingsByID:  make(map[string]*Upbringing, len(upbringings)),
		tiers:            rf.Tiers,
	}
	sort.SliceStable(t.tiers, func(i, j int) bool { return t.tiers[i].Minimum > t.tiers[j].Minimum })

	if err := t.index(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadProfessions(fsys fs.FS) ([]*Profession, error) {
	files, err := yamlFiles(fsys, "professions")
	if err != nil {
		return nil, err
	}
	out := make([]*Profession, 0, len(files))
	for _, name := range files {
		var p Profession
		if err := decodeFile(fsys, name, &p); err != nil {
			return nil, fmt.Errorf("profession: %w", err)
		}
		out = append(out, &p)
	}
	return out, nil
}

func loadUpbringings(fsys fs.FS) ([]*Upbringing, error) {
	files, err := yamlFiles(fsys, "upbringings")
	if err != nil {
		return nil, err
	}
	out := make([]*Upbringing, 0, len(files))
	for _, name := range files {
		var u Upbringing
		if err := decodeFile(fsys, name, &u); err != nil {
			return nil, fmt.Errorf("upbringing: %w", err)
		}
		out = append(out, &u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// index builds the lookup maps and checks every invariant, collecting all violations.
func (t *Tables) index() error {
	var errs []string
	add := func(format string, args ...any) { errs = append(errs, fmt.Sprintf(format, args...)) }

	if len(t.primary) == 0 {
		add("attributes: no primary attributes")
	}
	primaries := make(map[string]bool, len(t.primary))
	for _, a := range t.primary {
		if a.ID == "" || a.Name == "" {
			add("attributes: primary attribute with empty id or name")
			continue
		}
		primaries[a.ID] = true
	}
	if len(t.standardArray) != len(t.primary) {
		add("attributes: standard_array has %d values for %d primary attributes", len(t.standardArray), len(t.primary))
	}
	if t.rollExpression == "" {
		add("attributes: roll_expression must not be empty")
	}

	for _, b := range t.benefits {
		if b.ID == "" || b.Name == "" {
			add("benefits: entry with empty id or name")
			continue
		}
		if _, dup := t.benefitsByID[b.ID]; dup {
			add("benefits: duplicate id %q", b.ID)
		}
		t.benefitsByID[b.ID] = b
	}
	for _, b := range t.burdens {
		if b.ID == "" || b.Name == "" {
			add("burdens: entry with empty id or name")
			continue
		}
		if _, dup := t.burdensByID[b.ID]; dup {
			add("burdens: duplicate id %q", b.ID)
		}
		t.burdensByID[b.ID] = b
	}

	areas := make(map[string]bool, len(t.areas))
	for _, a := range t.areas {
		areas[a.ID] = true
	}
	if !areas[t.defaultArea] {
		add("skills: default_area %q is not a skill area", t.defaultArea)
	}
	if !primaries[t.defaultGoverning] {
		add("skills: default_governing %q is not a primary attribute", t.defaultGoverning)
	}
	for _, s := range t.skills {
		if s.Name == "" {
			add("skills: entry with empty name")
			continue
		}
		if _, dup := t.skillsByName[s.Name]; dup {
			add("skills: duplicate name %q", s.Name)
		}
		if s.Area != "" && !areas[s.Area] {
			add("skills: %s has unknown area %q", s.Name, s.Area)
		}
		if s.Governing != "" && !primaries[s.Governing] {
			add("skills: %s has unknown governing attribute %q", s.Name, s.Governing)
		}
		t.skillsByName[s.Name] = s
	}

	for _, u := range t.upbringings {
		if u.ID == "" || u.Name == "" {
			add("upbringings: entry with empty id or name")
			continue
		}
		if _, dup := t.upbringingsByID[u.ID]; dup {
			add("upbringings: duplicate id %q", u.ID)
		}
		t.upbringingsByID[u.ID] = u
		for _, id := range append(append([]string{}, u.UpbringingBenefits...), u.BenefitOptions...) {
			if t.benefitsByID[id] == nil {
				add("upbringing %s: unknown benefit %q", u.ID, id)
			}
		}
		for _, id := range u.BurdenOptions {
			if t.burdensByID[id] == nil {
				add("upbringing %s: unknown burden %q", u.ID, id)
			}
		}
		if u.ExtraBurdens < 0 {
			add("upbringing %s: extra_burdens must be >= 0", u.ID)
		}
	}

	for _, p := range t.professions {
		if p.ID == "" || p.Name == "" {
			add("professions: entry with empty id or name")
			continue
		}
		if _, dup := t.professionsByID[p.ID]; dup {
			add("professions: duplicate id %q", p.ID)
		}
		t.professionsByID[p.ID] = p
		t.validateProfession(p, primaries, add)
	}

	if len(t.tiers) == 0 {
		add("resources: no tiers")
	}

	if len(errs) > 0 {
		return fmt.Errorf("reference tables invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (t *Tables) validateProfession(p *Profession, primaries map[string]bool, add func(string, ...any)) {
	if !primaries[p.CoreAttribute] {
		add("profession %s: core_attribute %q is not a primary attribute", p.ID, p.CoreAttribute)
	}
	if len(p.ProfessionalSkills) == 0 {
		add("profession %s: no professional skills", p.ID)
	}
	for _, s := range p.ProfessionalSkills {
		if t.skillsByName[s.Name] == nil {
			add("profession %s: unknown professional skill %q", p.ID, s.Name)
		}
	}
	for _, s := range p.Electives.Options {
		if t.skillsByName[s.Name] == nil {
			add("profession %s: unknown elective skill %q", p.ID, s.Name)
		}
	}
	if p.Electives.Count < 0 || p.Electives.Count > len(p.Electives.Options) {
		add("profession %s: elective count %d exceeds %d options", p.ID, p.Electives.Count, len(p.Electives.Options))
	}
	for _, id := range append(append([]string{}, p.Benefits.Options...), p.Benefits.Automatic...) {
		if t.benefitsByID[id] == nil {
			add("profession %s: unknown benefit %q", p.ID, id)
		}
	}
	for _, id := range append(append([]string{}, p.Burdens.Options...), p.Burdens.Automatic...) {
		if t.burdensByID[id] == nil {
			add("profession %s: unknown burden %q", p.ID, id)
		}
	}
	if len(p.Burdens.Automatic) > p.Burdens.Count {
		add("profession %s: %d automatic burdens exceed burden count %d", p.ID, len(p.Burdens.Automatic), p.Burdens.Count)
	}
	if p.Ties < 1 {
		add("profession %s: ties must be >= 1", p.ID)
	}
	if p.Resources < 0 {
		add("profession %s: resources must be >= 0", p.ID)
	}
}

// Lookup returns the entity of the given kind with the given id.
// Skills are keyed by base name; a "Name (Type)" argument resolves to Name.
//
// Postcondition: Returns a non-nil Entity, or an error wrapping ErrNotFound.
func (t *Tables) Lookup(kind Kind, id string) (Entity, error) {
	var e Entity
	switch kind {
	case KindAttribute:
		if a := t.attribute(id); a != nil {
			e = a
		}
	case KindBenefit:
		if b, ok := t.benefitsByID[id]; ok {
			e = b
		}
	case KindBurden:
		if b, ok := t.burdensByID[id]; ok {
			e = b
		}
	case KindProfession:
		if p, ok := t.professionsByID[id]; ok {
			e = p
		}
	case KindUpbringing:
		if u, ok := t.upbringingsByID[id]; ok {
			e = u
		}
	case KindSkill:
		if s, ok := t.skillsByName[BaseSkillName(id)]; ok {
			e = s
		}
	default:
		return nil, fmt.Errorf("unknown table kind %q", kind)
	}
	if e == nil {
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return e, nil
}

// ListFor returns the entities of kind available to the profession, in table order.
//
// Benefits and burdens are filtered to the profession's options plus automatic
// grants; skills to the professional and elective slots. Attributes and
// upbringings are not restricted by profession. KindProfession yields the
// profession itself.
//
// Postcondition: Returns an error wrapping ErrNotFound if professionID is unknown.
func (t *Tables) ListFor(professionID string, kind Kind) ([]Entity, error) {
	p, ok := t.professionsByID[professionID]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", KindProfession, professionID, ErrNotFound)
	}
	var out []Entity
	switch kind {
	case KindBenefit:
		allowed := setOf(p.Benefits.Options, p.Benefits.Automatic)
		for _, b := range t.benefits {
			if allowed[b.ID] {
				out = append(out, b)
			}
		}
	case KindBurden:
		allowed := setOf(p.Burdens.Options, p.Burdens.Automatic)
		for _, b := range t.burdens {
			if allowed[b.ID] {
				out = append(out, b)
			}
		}
	case KindSkill:
		names := make(map[string]bool)
		for _, s := range p.ProfessionalSkills {
			names[s.Name] = true
		}
		for _, s := range p.Electives.Options {
			names[s.Name] = true
		}
		for _, s := range t.skills {
			if names[s.Name] {
				out = append(out, s)
			}
		}
	case KindAttribute:
		for _, a := range t.primary {
			out = append(out, a)
		}
		for _, a := range t.secondary {
			out = append(out, a)
		}
	case KindUpbringing:
		for _, u := range t.upbringings {
			out = append(out, u)
		}
	case KindProfession:
		out = append(out, p)
	default:
		return nil, fmt.Errorf("unknown table kind %q", kind)
	}
	return out, nil
}

func setOf(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, l := range lists {
		for _, v := range l {
			set[v] = true
		}
	}
	return set
}

func (t *Tables) attribute(id string) *Attribute {
	for _, a := range t.primary {
		if a.ID == id {
			return a
		}
	}
	for _, a := range t.secondary {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Profession returns the profession with the given id.
func (t *Tables) Profession(id string) (*Profession, bool) {
	p, ok := t.professionsByID[id]
	return p, ok
}

// Upbringing returns the upbringing with the given id.
func (t *Tables) Upbringing(id string) (*Upbringing, bool) {
	u, ok := t.upbringingsByID[id]
	return u, ok
}

// Benefit returns the benefit with the given id.
func (t *Tables) Benefit(id string) (*Benefit, bool) {
	b, ok := t.benefitsByID[id]
	return b, ok
}

// Burden returns the burden with the given id.
func (t *Tables) Burden(id string) (*Burden, bool) {
	b, ok := t.burdensByID[id]
	return b, ok
}

// Skill returns the definition for a skill name, ignoring any "(Type)" suffix.
func (t *Tables) Skill(name string) (*SkillDefinition, bool) {
	s, ok := t.skillsByName[BaseSkillName(name)]
	return s, ok
}

// SkillMeta resolves the sheet area and governing attribute for a skill name.
//
// Postcondition: Always returns non-empty values; unknown skills and unset
// fields fall back to the table defaults.
func (t *Tables) SkillMeta(name string) (area, governing string) {
	area, governing = t.defaultArea, t.defaultGoverning
	if s, ok := t.Skill(name); ok {
		if s.Area != "" {
			area = s.Area
		}
		if s.Governing != "" {
			governing = s.Governing
		}
	}
	return area, governing
}

// SkillArea returns the skill area with the given id.
func (t *Tables) SkillArea(id string) (*SkillArea, bool) {
	for _, a := range t.areas {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Skills returns every skill definition in table order.
func (t *Tables) Skills() []*SkillDefinition { return t.skills }

// Professions returns every profession in table order.
func (t *Tables) Professions() []*Profession { return t.professions }

// Upbringings returns every upbringing in display order.
func (t *Tables) Upbringings() []*Upbringing { return t.upbringings }

// Benefits returns every benefit in table order.
func (t *Tables) Benefits() []*Benefit { return t.benefits }

// Burdens returns every burden in table order.
func (t *Tables) Burdens() []*Burden { return t.burdens }

// PrimaryAttributes returns the primary attributes in table order.
func (t *Tables) PrimaryAttributes() []*Attribute { return t.primary }

// SecondaryAttributes returns the secondary attributes in table order.
func (t *Tables) SecondaryAttributes() []*Attribute { return t.secondary }

// Attribute returns the primary or secondary attribute with the given id.
func (t *Tables) Attribute(id string) (*Attribute, bool) {
	a := t.attribute(id)
	return a, a != nil
}

// IsPrimary reports whether id names a primary attribute.
func (t *Tables) IsPrimary(id string) bool {
	for _, a := range t.primary {
		if a.ID == id {
			return true
		}
	}
	return false
}

// StandardArray returns a copy of the standard attribute array.
func (t *Tables) StandardArray() []int {
	return append([]int(nil), t.standardArray...)
}

// RollExpression returns the dice expression used to roll one primary attribute.
func (t *Tables) RollExpression() string { return t.rollExpression }

// ResourceTier returns the equipment tier matching a resource rating.
//
// Postcondition: Returns the lowest tier when no minimum is met.
func (t *Tables) ResourceTier(rating int) *ResourceTier {
	for _, tier := range t.tiers {
		if rating >= tier.Minimum {
			return tier
		}
	}
	return t.tiers[len(t.tiers)-1]
}
