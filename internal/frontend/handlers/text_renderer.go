package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/vestige/internal/frontend/telnet"
	"github.com/cory-johannsen/vestige/internal/wizard"
)

// RenderView formats a wizard view as coloured Telnet text. Lines are
// separated by \n; Conn.WriteBlock translates them for the wire.
//
// Postcondition: Returns a non-empty string beginning with the step heading.
func RenderView(v wizard.View) string {
	var b strings.Builder
	b.WriteString(telnet.Heading(fmt.Sprintf("=== Step %d of %d: %s ===", v.Index, v.Total, v.Title)))
	b.WriteString("\n")

	switch {
	case v.Attributes != nil:
		renderAttributes(&b, v.Attributes)
	case v.Path != nil:
		renderPath(&b, v.Path)
	case v.Benefits != nil:
		renderBenefits(&b, v.Benefits)
	case v.Skills != nil:
		renderSkills(&b, v.Skills)
	case v.Ties != nil:
		renderTies(&b, v.Ties)
	case v.Details != nil:
		renderDetails(&b, v.Details)
	case v.Complete != nil:
		renderComplete(&b, v.Complete)
	}
	return b.String()
}

// RenderError formats a wizard error for the player. Validation problems are
// listed one per line in red.
func RenderError(err error) string {
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		lines := make([]string, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			lines = append(lines, telnet.Problem("  ! "+p))
		}
		return strings.Join(lines, "\n")
	}
	for _, sentinel := range []error{wizard.ErrBusy, wizard.ErrConfiguration, wizard.ErrDice, wizard.ErrCreateFailed} {
		if errors.Is(err, sentinel) {
			return telnet.Problem(sentinel.Error())
		}
	}
	if errors.Is(err, wizard.ErrWrongStep) {
		return telnet.Problem("That command is not available at this step.")
	}
	return telnet.Problem(wizard.ErrUnexpected.Error())
}

func mark(selected bool) string {
	if selected {
		return telnet.Colorize(telnet.Green, "[x]")
	}
	return "[ ]"
}

func renderAttributes(b *strings.Builder, v *wizard.AttributesView) {
	name := v.Name
	if name == "" {
		name = telnet.Hint("(unnamed)")
	}
	fmt.Fprintf(b, "Name: %s\n", name)
	b.WriteString(telnet.Colorize(telnet.Cyan, "Primary attributes:"))
	b.WriteString("\n")
	for _, a := range v.Primary {
		fmt.Fprintf(b, "  %-4s %-10s %3d  %s\n", a.Abbrev, a.Name, a.Value, telnet.Hint(a.Description))
	}
	b.WriteString(telnet.Colorize(telnet.Cyan, "Secondary attributes:"))
	b.WriteString("\n")
	for _, a := range v.Secondary {
		fmt.Fprintf(b, "  %-4s %-10s %3d  %s\n", a.Abbrev, a.Name, a.Value, telnet.Hint(a.Description))
	}
	vals := make([]string, len(v.StandardArray))
	for i, n := range v.StandardArray {
		vals[i] = fmt.Sprint(n)
	}
	b.WriteString(telnet.Hint(fmt.Sprintf("roll (%s each) | array %s (VGR GRC INS PRS) | set <attr> <value> | name <name> | next",
		v.RollExpression, strings.Join(vals, " "))))
	b.WriteString("\n")
}

func renderPath(b *strings.Builder, v *wizard.PathView) {
	b.WriteString(telnet.Colorize(telnet.Cyan, "Professions:"))
	b.WriteString("\n")
	for _, p := range v.Professions {
		line := fmt.Sprintf("  %s %-14s %-14s core %s %d+", mark(p.Selected), p.ID, p.Name, p.CoreAttribute, p.CoreMinimum)
		if !p.Eligible {
			line = telnet.Hint(line + " (requirement not met)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(telnet.Colorize(telnet.Cyan, "Upbringings:"))
	b.WriteString("\n")
	for _, u := range v.Upbringings {
		fmt.Fprintf(b, "  %s %-14s %s\n", mark(u.Selected), u.ID, telnet.Hint(u.Description))
	}
	if len(v.UpbringingBenefits) > 0 {
		b.WriteString(telnet.Colorize(telnet.Cyan, "Upbringing benefit (easy <id>):"))
		b.WriteString("\n")
		for _, o := range v.UpbringingBenefits {
			fmt.Fprintf(b, "  %s %-16s %s\n", mark(o.Selected), o.ID, telnet.Hint(o.Description))
		}
	}
	if v.AttributeBonus != 0 {
		bonus := strings.ToUpper(v.BonusAttribute)
		if bonus == "" {
			bonus = "none chosen"
		}
		fmt.Fprintf(b, "Attribute bonus: %+d to one primary attribute (bonus <attr>): %s\n", v.AttributeBonus, bonus)
	}
	if v.GritPenalty != 0 {
		fmt.Fprintf(b, "Grit adjustment: %+d\n", v.GritPenalty)
	}
	b.WriteString(telnet.Hint("profession <id> | upbringing <id> | easy <benefit> | bonus <attr> | back | next"))
	b.WriteString("\n")
}

func renderBenefits(b *strings.Builder, v *wizard.BenefitsView) {
	if v.Text != "" {
		b.WriteString(v.Text)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s (up to %d):\n", telnet.Colorize(telnet.Cyan, "Benefits"), v.Limit)
	for _, o := range v.Benefits {
		fmt.Fprintf(b, "  %s %-20s %s\n", mark(o.Selected), o.ID, telnet.Hint(o.Description))
	}
	for _, o := range v.AutomaticBenefits {
		fmt.Fprintf(b, "  %s %-20s %s\n", mark(true), o.ID, telnet.Hint("automatic"))
	}
	if v.UpbringingBenefit != nil {
		fmt.Fprintf(b, "  %s %-20s %s\n", mark(true), v.UpbringingBenefit.ID, telnet.Hint("from upbringing"))
	}
	fmt.Fprintf(b, "%s (exactly %d):\n", telnet.Colorize(telnet.Cyan, "Burdens"), v.BurdenRequirement)
	for _, o := range v.Burdens {
		fmt.Fprintf(b, "  %s %-20s %s\n", mark(o.Selected), o.ID, telnet.Hint(o.Description))
	}
	for _, o := range v.AutomaticBurdens {
		fmt.Fprintf(b, "  %s %-20s %s\n", mark(true), o.ID, telnet.Hint("automatic"))
	}
	for k, c := range v.Choices {
		fmt.Fprintf(b, "Choice: %s -> %s\n", k, strings.ToUpper(c))
	}
	b.WriteString(telnet.Hint("benefit <id> | burden <id> | choose peakPhysique <vgr|grc> | back | next"))
	b.WriteString("\n")
}

func renderSkills(b *strings.Builder, v *wizard.SkillsView) {
	b.WriteString(telnet.Colorize(telnet.Cyan, "Professional skills:"))
	b.WriteString("\n")
	for _, s := range v.Professional {
		b.WriteString("  ")
		b.WriteString(skillLabel(s))
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s (choose %d):\n", telnet.Colorize(telnet.Cyan, "Electives"), v.ElectiveCount)
	for _, s := range v.Electives {
		fmt.Fprintf(b, "  %s %s\n", mark(s.Selected), skillLabel(s))
	}
	b.WriteString(telnet.Hint("type <skill> <type> | elective <skill>[: <type>] | drop <skill> | back | next"))
	b.WriteString("\n")
}

func skillLabel(s wizard.SkillRow) string {
	label := s.Name
	switch {
	case s.Type != "":
		label = fmt.Sprintf("%s (%s)", s.Name, s.Type)
	case s.RequireType:
		label += " " + telnet.Colorize(telnet.Yellow, "[type required]")
	}
	if s.Area != "" {
		label += " " + telnet.Hint(fmt.Sprintf("%s/%s", s.Area, strings.ToUpper(s.Governing)))
	}
	return label
}

func renderTies(b *strings.Builder, v *wizard.TiesView) {
	if v.Description != "" {
		b.WriteString(v.Description)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "Create %d ties totalling %d points (remaining: %d)\n", v.Count, v.TotalPoints, v.Remaining)
	for i, t := range v.Ties {
		fmt.Fprintf(b, "  %d. %s: %s (%d, %s)\n", i+1, t.Name, t.Desc, t.Strength, t.Bond)
	}
	b.WriteString(telnet.Hint("tie <n> <name> | <description> | <strength> | back | next"))
	b.WriteString("\n")
}

func renderDetails(b *strings.Builder, v *wizard.DetailsView) {
	d := v.Details
	fields := []struct{ label, value string }{
		{"Name", v.Name},
		{"Age", d.Age},
		{"Gender", d.Gender},
		{"Description", d.Description},
		{"Identity", d.History.Identity},
		{"Appearance", d.History.Appearance},
		{"Origins", d.History.Origins},
		{"Community", d.History.Community},
		{"Motivation", d.History.Motivation},
		{"Memories", d.Memories},
		{"Memory to cling to", d.MemoryClingTo},
		{"Memory to forget", d.MemoryForget},
		{"Personal traits", d.Considerations.PersonalTraits},
		{"Possessions", d.Considerations.Possessions},
		{"Beliefs", d.Considerations.Beliefs},
		{"Technology", d.Considerations.Technology},
		{"Survival", d.Considerations.Survival},
		{"Ambitions", d.Considerations.Ambitions},
	}
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = telnet.Hint("-")
		}
		fmt.Fprintf(b, "  %-19s %s\n", f.label+":", value)
	}
	fmt.Fprintf(b, "Resources: %d  %s\n", v.Resources, telnet.Hint(v.ResourceDesc))
	if len(v.Equipment) > 0 {
		fmt.Fprintf(b, "Equipment: %s\n", strings.Join(v.Equipment, ", "))
	}
	if len(v.ResourceItems) > 0 {
		fmt.Fprintf(b, "Resource items: %s\n", strings.Join(v.ResourceItems, ", "))
	}
	b.WriteString(telnet.Hint("detail <field> <value> (fields: " + strings.Join(detailFieldNames(), ", ") + ") | back | next"))
	b.WriteString("\n")
}

func renderComplete(b *strings.Builder, v *wizard.CompleteView) {
	s := v.Result.Sheet
	b.WriteString(telnet.Colorf(telnet.Green, "%s has been created.", s.Name))
	b.WriteString("\n")
	fmt.Fprintf(b, "  Profession: %s   Upbringing: %s\n", s.Profession, s.Upbringing)
	p, sec := s.Primary, s.Secondary
	fmt.Fprintf(b, "  VGR %d  GRC %d  INS %d  PRS %d\n", p.VGR, p.GRC, p.INS, p.PRS)
	fmt.Fprintf(b, "  HLT %d  WDS %d  GRT %d  POI %d\n", sec.HLT, sec.WDS, sec.GRT, sec.POI)
	fmt.Fprintf(b, "  DR %d   Initiative %+d   Resources %d\n", s.DamageResistance, s.Initiative, s.Resources)
	fmt.Fprintf(b, "  Skills: %s\n", strings.Join(s.Skills, ", "))
	if len(v.Result.SkippedSkills) > 0 {
		b.WriteString(telnet.Colorf(telnet.Yellow, "  Skills not added: %s", strings.Join(v.Result.SkippedSkills, ", ")))
		b.WriteString("\n")
	}
	for _, w := range v.Result.Warnings {
		b.WriteString(telnet.Colorize(telnet.Yellow, "  "+w))
		b.WriteString("\n")
	}
}
