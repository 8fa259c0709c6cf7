package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/wizard"
)

// Command is one parsed line of player input.
type Command struct {
	Verb string
	Args string
}

// ParseCommand splits a line into a lower-cased verb and its trimmed arguments.
//
// Postcondition: Verb is "" for a blank line.
func ParseCommand(line string) Command {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	return Command{Verb: strings.ToLower(verb), Args: strings.TrimSpace(rest)}
}

// usageError is a malformed command; it never reaches the wizard.
type usageError string

func (e usageError) Error() string { return string(e) }

// form accumulates the current step's input between commands. It is re-seeded
// from the draft whenever the wizard changes step.
type form struct {
	step wizard.Step

	path wizard.PathInput

	benefits []string
	burdens  []string
	choices  map[string]string

	types     map[string]string
	electives []character.SkillSelection

	ties []character.Tie

	name    string
	details character.Details
}

func seedForm(v wizard.View) *form {
	d := v.Draft
	f := &form{
		step:    v.Step,
		name:    d.Name,
		details: d.Details,
		path: wizard.PathInput{
			Profession:     d.Path.Profession,
			Upbringing:     d.Path.Upbringing,
			EasyBenefit:    d.Path.EasyBenefit,
			BonusAttribute: d.Path.BonusAttribute,
		},
		choices: make(map[string]string),
		types:   make(map[string]string),
	}
	if v.Benefits != nil {
		skip := map[string]bool{d.Path.EasyBenefit: true}
		for _, o := range v.Benefits.AutomaticBenefits {
			skip[o.ID] = true
		}
		for _, id := range d.Benefits.Starting {
			if !skip[id] {
				f.benefits = append(f.benefits, id)
			}
		}
		auto := make(map[string]bool)
		for _, o := range v.Benefits.AutomaticBurdens {
			auto[o.ID] = true
		}
		for _, id := range d.Burdens.Starting {
			if !auto[id] {
				f.burdens = append(f.burdens, id)
			}
		}
	}
	for k, c := range d.Benefits.Choices {
		f.choices[k] = c
	}
	for _, sel := range d.Skills.Professional {
		if sel.RequireType && sel.Type != "" {
			f.types[sel.Name] = sel.Type
		}
	}
	f.electives = append(f.electives, d.Skills.Elective...)
	f.ties = append(f.ties, d.Ties.Assigned...)
	return f
}

// detailFields maps detail command field names onto the draft's details.
var detailFields = []struct {
	name string
	set  func(d *character.Details, v string)
}{
	{"age", func(d *character.Details, v string) { d.Age = v }},
	{"gender", func(d *character.Details, v string) { d.Gender = v }},
	{"description", func(d *character.Details, v string) { d.Description = v }},
	{"identity", func(d *character.Details, v string) { d.History.Identity = v }},
	{"appearance", func(d *character.Details, v string) { d.History.Appearance = v }},
	{"origins", func(d *character.Details, v string) { d.History.Origins = v }},
	{"community", func(d *character.Details, v string) { d.History.Community = v }},
	{"motivation", func(d *character.Details, v string) { d.History.Motivation = v }},
	{"memories", func(d *character.Details, v string) { d.Memories = v }},
	{"cling", func(d *character.Details, v string) { d.MemoryClingTo = v }},
	{"forget", func(d *character.Details, v string) { d.MemoryForget = v }},
	{"traits", func(d *character.Details, v string) { d.Considerations.PersonalTraits = v }},
	{"possessions", func(d *character.Details, v string) { d.Considerations.Possessions = v }},
	{"beliefs", func(d *character.Details, v string) { d.Considerations.Beliefs = v }},
	{"technology", func(d *character.Details, v string) { d.Considerations.Technology = v }},
	{"survival", func(d *character.Details, v string) { d.Considerations.Survival = v }},
	{"ambitions", func(d *character.Details, v string) { d.Considerations.Ambitions = v }},
}

func detailFieldNames() []string {
	names := []string{"name"}
	for _, f := range detailFields {
		names = append(names, f.name)
	}
	return names
}

// execute runs one step command against the wizard.
func (s *session) execute(ctx context.Context, cmd Command) error {
	switch cmd.Verb {
	case "back":
		_, err := s.w.Back(ctx)
		return err
	case "next":
		return s.next(ctx)
	}

	switch s.w.Step() {
	case wizard.StepAttributes:
		return s.attributeCommand(ctx, cmd)
	case wizard.StepPath:
		return s.pathCommand(ctx, cmd)
	case wizard.StepBenefitsBurdens:
		return s.benefitCommand(cmd)
	case wizard.StepSkills:
		return s.skillCommand(cmd)
	case wizard.StepTies:
		return s.tieCommand(cmd)
	case wizard.StepFinalDetails:
		return s.detailCommand(cmd)
	}
	return unknownCommand(cmd)
}

func unknownCommand(cmd Command) error {
	return usageError(fmt.Sprintf("Unknown command %q. Type help for a list of commands.", cmd.Verb))
}

func (s *session) next(ctx context.Context) error {
	f := s.form
	var in wizard.Input
	switch s.w.Step() {
	case wizard.StepAttributes:
		in = wizard.AttributesInput{}
	case wizard.StepPath:
		in = f.path
	case wizard.StepBenefitsBurdens:
		in = wizard.BenefitsBurdensInput{Benefits: f.benefits, Burdens: f.burdens, Choices: f.choices}
	case wizard.StepSkills:
		in = wizard.SkillsInput{ProfessionalTypes: f.types, Electives: f.electives}
	case wizard.StepTies:
		in = wizard.TiesInput{Ties: f.ties}
	case wizard.StepFinalDetails:
		in = wizard.DetailsInput{Name: f.name, Details: f.details}
	default:
		return usageError("Character creation is complete.")
	}
	_, err := s.w.Submit(ctx, in)
	return err
}

func (s *session) attributeCommand(ctx context.Context, cmd Command) error {
	switch cmd.Verb {
	case "roll":
		_, err := s.w.RollAttributes(ctx)
		return err
	case "array":
		fields := strings.Fields(cmd.Args)
		if len(fields) != len(character.PrimaryIDs) {
			return usageError("Usage: array <vgr> <grc> <ins> <prs>")
		}
		values := make(map[string]int, len(fields))
		for i, raw := range fields {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return usageError(fmt.Sprintf("%q is not a number", raw))
			}
			values[character.PrimaryIDs[i]] = n
		}
		_, err := s.w.AssignArray(ctx, values)
		return err
	case "set":
		id, raw, ok := strings.Cut(cmd.Args, " ")
		if !ok {
			return usageError("Usage: set <attribute> <value>")
		}
		_, err := s.w.SetAttribute(ctx, id, raw)
		return err
	case "name":
		_, err := s.w.SetName(ctx, cmd.Args)
		return err
	}
	return unknownCommand(cmd)
}

func (s *session) pathCommand(ctx context.Context, cmd Command) error {
	f := s.form
	switch cmd.Verb {
	case "profession":
		if _, err := s.w.SelectProfession(ctx, cmd.Args); err != nil {
			return err
		}
		f.path.Profession = cmd.Args
	case "upbringing":
		f.path.Upbringing = cmd.Args
	case "easy":
		f.path.EasyBenefit = cmd.Args
	case "bonus":
		f.path.BonusAttribute = cmd.Args
	default:
		return unknownCommand(cmd)
	}
	return nil
}

func (s *session) benefitCommand(cmd Command) error {
	f := s.form
	switch cmd.Verb {
	case "benefit":
		f.benefits = toggle(f.benefits, cmd.Args)
	case "burden":
		f.burdens = toggle(f.burdens, cmd.Args)
	case "choose":
		benefit, attr, ok := strings.Cut(cmd.Args, " ")
		if !ok {
			return usageError("Usage: choose <benefit> <attribute>")
		}
		f.choices[benefit] = strings.TrimSpace(attr)
	default:
		return unknownCommand(cmd)
	}
	return nil
}

func (s *session) skillCommand(cmd Command) error {
	f := s.form
	d := s.w.Draft()
	switch cmd.Verb {
	case "type":
		for _, sel := range d.Skills.Professional {
			if !sel.RequireType {
				continue
			}
			if rest, ok := cutPrefixFold(cmd.Args, sel.Name); ok {
				typ := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
				if typ == "" {
					break
				}
				f.types[sel.Name] = typ
				return nil
			}
		}
		return usageError("Usage: type <professional skill> <type>")
	case "elective":
		name, typ, _ := strings.Cut(cmd.Args, ":")
		name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
		if name == "" {
			return usageError("Usage: elective <skill>[: <type>]")
		}
		name = s.canonicalElective(name)
		for i, sel := range f.electives {
			if strings.EqualFold(sel.Name, name) {
				f.electives[i].Type = typ
				return nil
			}
		}
		f.electives = append(f.electives, character.SkillSelection{Name: name, Type: typ})
	case "drop":
		kept := f.electives[:0]
		for _, sel := range f.electives {
			if !strings.EqualFold(sel.Name, cmd.Args) {
				kept = append(kept, sel)
			}
		}
		f.electives = kept
	default:
		return unknownCommand(cmd)
	}
	return nil
}

// canonicalElective returns the offered elective's spelling of name, or name unchanged.
func (s *session) canonicalElective(name string) string {
	if v := s.w.View(); v.Skills != nil {
		for _, row := range v.Skills.Electives {
			if strings.EqualFold(row.Name, name) {
				return row.Name
			}
		}
	}
	return name
}

func (s *session) tieCommand(cmd Command) error {
	f := s.form
	if cmd.Verb != "tie" {
		return unknownCommand(cmd)
	}
	const usage = "Usage: tie <n> <name> | <description> | <strength>"
	num, rest, _ := strings.Cut(cmd.Args, " ")
	n, err := strconv.Atoi(num)
	if err != nil {
		return usageError(usage)
	}
	limit := 1
	if v := s.w.View(); v.Ties != nil && v.Ties.Count > 0 {
		limit = v.Ties.Count
	}
	if n < 1 || n > limit {
		return usageError(fmt.Sprintf("Tie number must be between 1 and %d", limit))
	}
	parts := strings.Split(rest, "|")
	if len(parts) != 3 {
		return usageError(usage)
	}
	strength, _ := strconv.Atoi(strings.TrimSpace(parts[2]))
	for len(f.ties) < n {
		f.ties = append(f.ties, character.Tie{})
	}
	f.ties[n-1] = character.Tie{
		Name:     strings.TrimSpace(parts[0]),
		Desc:     strings.TrimSpace(parts[1]),
		Strength: strength,
	}
	return nil
}

func (s *session) detailCommand(cmd Command) error {
	f := s.form
	if cmd.Verb != "detail" {
		return unknownCommand(cmd)
	}
	field, value, _ := strings.Cut(cmd.Args, " ")
	field, value = strings.ToLower(field), strings.TrimSpace(value)
	if field == "name" {
		f.name = value
		return nil
	}
	for _, df := range detailFields {
		if df.name == field {
			df.set(&f.details, value)
			return nil
		}
	}
	return usageError(fmt.Sprintf("Unknown detail %q. Fields: %s", field, strings.Join(detailFieldNames(), ", ")))
}

func toggle(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, id)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
