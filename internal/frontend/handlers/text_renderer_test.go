package handlers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vestige/internal/frontend/telnet"
	"github.com/cory-johannsen/vestige/internal/game/assembly"
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/wizard"
)

func render(v wizard.View) string {
	return telnet.StripANSI(RenderView(v))
}

func TestRenderView_Attributes(t *testing.T) {
	out := render(wizard.View{
		Step: wizard.StepAttributes, Title: "Attributes", Index: 1, Total: 7,
		Attributes: &wizard.AttributesView{
			Primary:        []wizard.AttributeRow{{ID: "vgr", Abbrev: "VGR", Name: "Vigor", Value: 65}},
			Secondary:      []wizard.AttributeRow{{ID: "hlt", Abbrev: "HLT", Name: "Health", Value: 13}},
			StandardArray:  []int{65, 50, 50, 45},
			RollExpression: "4d10+30",
		},
	})

	assert.True(t, strings.HasPrefix(out, "=== Step 1 of 7: Attributes ==="))
	assert.Contains(t, out, "Name: (unnamed)")
	assert.Contains(t, out, "VGR  Vigor       65")
	assert.Contains(t, out, "HLT  Health      13")
	assert.Contains(t, out, "roll (4d10+30 each) | array 65 50 50 45")
}

func TestRenderView_PathMarksSelectionAndEligibility(t *testing.T) {
	out := render(wizard.View{
		Step: wizard.StepPath, Title: "Path", Index: 2, Total: 7,
		Path: &wizard.PathView{
			Professions: []wizard.ProfessionOption{
				{Option: wizard.Option{ID: "agent", Name: "Agent", Selected: true}, CoreAttribute: "VGR", CoreMinimum: 50, Eligible: true},
				{Option: wizard.Option{ID: "medic", Name: "Medic"}, CoreAttribute: "INS", CoreMinimum: 55},
			},
			Upbringings:        []wizard.Option{{ID: "easy", Selected: true}},
			UpbringingBenefits: []wizard.Option{{ID: "affluent"}},
			AttributeBonus:     5,
			GritPenalty:        -5,
		},
	})

	assert.Contains(t, out, "[x] agent")
	assert.Contains(t, out, "core VGR 50+")
	assert.Contains(t, out, "medic")
	assert.Contains(t, out, "(requirement not met)")
	assert.NotContains(t, strings.SplitN(out, "medic", 2)[0], "(requirement not met)")
	assert.Contains(t, out, "[ ] affluent")
	assert.Contains(t, out, "Attribute bonus: +5 to one primary attribute (bonus <attr>): none chosen")
	assert.Contains(t, out, "Grit adjustment: -5")
}

func TestRenderView_BenefitsShowsLimitsAndAutomatic(t *testing.T) {
	out := render(wizard.View{
		Step: wizard.StepBenefitsBurdens, Title: "Benefits & Burdens", Index: 3, Total: 7,
		Benefits: &wizard.BenefitsView{
			Limit:             2,
			Benefits:          []wizard.Option{{ID: "ironBody", Selected: true}, {ID: "quickReflexes"}},
			UpbringingBenefit: &wizard.Option{ID: "affluent"},
			BurdenRequirement: 1,
			AutomaticBurdens:  []wizard.Option{{ID: "duty"}},
			Choices:           map[string]string{"peakPhysique": "grc"},
		},
	})

	assert.Contains(t, out, "Benefits (up to 2):")
	assert.Contains(t, out, "[x] ironBody")
	assert.Contains(t, out, "[ ] quickReflexes")
	assert.Contains(t, out, "from upbringing")
	assert.Contains(t, out, "Burdens (exactly 1):")
	assert.Contains(t, out, "[x] duty")
	assert.Contains(t, out, "Choice: peakPhysique -> GRC")
}

func TestRenderView_SkillsLabels(t *testing.T) {
	out := render(wizard.View{
		Step: wizard.StepSkills, Title: "Skills", Index: 4, Total: 7,
		Skills: &wizard.SkillsView{
			Professional: []wizard.SkillRow{
				{Name: "Firearms", Type: "Pistols", RequireType: true},
				{Name: "Piloting", RequireType: true},
			},
			ElectiveCount: 2,
			Electives: []wizard.SkillRow{
				{Name: "Deception", Selected: true, Area: "Social", Governing: "prs"},
			},
		},
	})

	assert.Contains(t, out, "Firearms (Pistols)")
	assert.Contains(t, out, "Piloting [type required]")
	assert.Contains(t, out, "Electives (choose 2):")
	assert.Contains(t, out, "[x] Deception Social/PRS")
}

func TestRenderView_TiesBudget(t *testing.T) {
	out := render(wizard.View{
		Step: wizard.StepTies, Title: "Ties", Index: 5, Total: 7,
		Ties: &wizard.TiesView{
			Count: 2, TotalPoints: 90, Remaining: 45,
			Ties: []wizard.TieRow{{Tie: character.Tie{Name: "Ana", Desc: "Sister", Strength: 45}, Bond: "Strong"}},
		},
	})

	assert.Contains(t, out, "Create 2 ties totalling 90 points (remaining: 45)")
	assert.Contains(t, out, "1. Ana: Sister (45, Strong)")
}

func TestRenderView_DetailsAndComplete(t *testing.T) {
	out := render(wizard.View{
		Step: wizard.StepFinalDetails, Title: "Final Details", Index: 6, Total: 7,
		Details: &wizard.DetailsView{
			Name:      "Mara",
			Details:   character.Details{Age: "34"},
			Resources: 40,
			Equipment: []string{"Badge", "Sidearm"},
		},
	})
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Mara")
	assert.Contains(t, out, "Age:")
	assert.Contains(t, out, "Resources: 40")
	assert.Contains(t, out, "Equipment: Badge, Sidearm")

	out = render(wizard.View{
		Step: wizard.StepComplete, Title: "Complete", Index: 7, Total: 7,
		Complete: &wizard.CompleteView{Result: assembly.Result{
			Sheet: assembly.Sheet{
				Name:       "Mara",
				Primary:    character.Primary{VGR: 65, GRC: 50, INS: 50, PRS: 45},
				Secondary:  character.Secondary{HLT: 13, WDS: 10, GRT: 10, POI: 9},
				Initiative: 2,
				Skills:     []string{"Deception"},
			},
			SkippedSkills: []string{"Piloting"},
			Warnings:      []string{"VGR clamped to 100"},
		}},
	})
	assert.Contains(t, out, "Mara has been created.")
	assert.Contains(t, out, "VGR 65  GRC 50  INS 50  PRS 45")
	assert.Contains(t, out, "HLT 13  WDS 10  GRT 10  POI 9")
	assert.Contains(t, out, "Initiative +2")
	assert.Contains(t, out, "Skills not added: Piloting")
	assert.Contains(t, out, "VGR clamped to 100")
}

func TestRenderError(t *testing.T) {
	verr := &wizard.ValidationError{Step: wizard.StepTies, Problems: []string{"Must create exactly 2 ties", "Total strength must equal 90 (currently 0)"}}
	out := telnet.StripANSI(RenderError(fmt.Errorf("submit: %w", verr)))
	assert.Equal(t, "  ! Must create exactly 2 ties\n  ! Total strength must equal 90 (currently 0)", out)

	assert.Equal(t, wizard.ErrDice.Error(), telnet.StripANSI(RenderError(fmt.Errorf("rolling: %w", wizard.ErrDice))))
	assert.Equal(t, "That command is not available at this step.", telnet.StripANSI(RenderError(wizard.ErrWrongStep)))
	assert.Equal(t, wizard.ErrUnexpected.Error(), telnet.StripANSI(RenderError(errors.New("boom"))))
}

func TestRenderView_HeadingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idx := rapid.IntRange(1, 7).Draw(t, "index")
		title := rapid.StringMatching(`[A-Za-z &]{1,20}`).Draw(t, "title")
		out := render(wizard.View{Title: title, Index: idx, Total: 7})
		assert.Equal(t, fmt.Sprintf("=== Step %d of 7: %s ===\n", idx, title), out)
	})
}

func TestToggle(t *testing.T) {
	list := toggle(nil, "a")
	list = toggle(list, "b")
	assert.Equal(t, []string{"a", "b"}, list)
	assert.Equal(t, []string{"b"}, toggle(list, "a"))
	assert.Equal(t, []string{"a", "b"}, list)
}
