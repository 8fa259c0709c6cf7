package assembly_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/vestige/content"
	"github.com/cory-johannsen/vestige/internal/game/actor"
	"github.com/cory-johannsen/vestige/internal/game/assembly"
	"github.com/cory-johannsen/vestige/internal/game/assembly/mocks"
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/testutil"
)

func loadTables(t *testing.T) *ruleset.Tables {
	t.Helper()
	tables, err := ruleset.LoadTables(content.FS)
	require.NoError(t, err)
	return tables
}

func agentDraft(tables *ruleset.Tables) *testutil.DraftBuilder {
	return testutil.NewDraftBuilder().
		WithPrimary(65, 50, 50, 45).
		WithName("Mara Quill").
		WithPath("agent", "average").
		WithProfessionDefaults(tables).
		WithBenefits("ironBody")
}

type fixture struct {
	tables     *ruleset.Tables
	actors     *mocks.MockActorStore
	compendium *mocks.MockSkillCompendium
	logs       *observer.ObservedLogs
	asm        *assembly.Assembler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		tables:     loadTables(t),
		actors:     mocks.NewMockActorStore(ctrl),
		compendium: mocks.NewMockSkillCompendium(ctrl),
		logs:       logs,
	}
	f.asm = assembly.NewAssembler(f.tables, f.actors, f.compendium, zap.New(core))
	return f
}

// captureActor expects one CreateActor call and stores the payload in *out.
func (f *fixture) captureActor(out *actor.Actor) {
	f.actors.EXPECT().CreateActor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a actor.Actor) (*actor.Record, error) {
			*out = a
			return &actor.Record{ID: "actor-1", Name: a.Name, Kind: actor.TypeCharacter, CreatedAt: time.Now()}, nil
		})
}

// acceptSkills expects every CreateEmbedded call to succeed and records the items.
func (f *fixture) acceptSkills(items *[]actor.Item) {
	f.actors.EXPECT().CreateEmbedded(gomock.Any(), "actor-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in []actor.Item) ([]actor.Record, error) {
			*items = append(*items, in...)
			return []actor.Record{{ID: "item", Name: in[0].Name, Kind: actor.TypeSkill}}, nil
		}).AnyTimes()
}

func TestAssemble_AgentHappyPath(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	var items []actor.Item
	f.captureActor(&sheet)
	f.acceptSkills(&items)
	f.compendium.EXPECT().Collection(gomock.Any(), "skills").Return([]actor.CompendiumEntry{
		{Name: "Observation", Area: "perception", Governing: "ins"},
		{Name: "Ranged Combat", Difficulty: "hard"},
	}, nil).Times(1)

	d := agentDraft(f.tables).Build()
	before := d.Clone()
	res, err := f.asm.Assemble(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, before, d)

	assert.Equal(t, "Mara Quill", sheet.Name)
	assert.Equal(t, actor.TypeCharacter, sheet.Type)
	assert.Equal(t, actor.AttributeValue{Value: 65, Label: "Vigor"}, sheet.System.PrimaryAttributes["vgr"])
	assert.Equal(t, actor.DerivedValue{Value: 13, Max: 13, Label: "Health"}, sheet.System.DerivedAttributes["hlt"])
	assert.Equal(t, 1, sheet.System.DamageResistance)
	assert.Equal(t, 40, sheet.System.Resources)
	assert.Equal(t, actor.PathInfo{Profession: "Agent", Upbringing: "Average"}, sheet.System.Path)
	assert.Contains(t, sheet.System.Equipment, "<p>- Medium Pistol (3 mags)</p>")
	assert.Contains(t, sheet.System.Equipment, "Used vehicle or good public transport pass")
	assert.Contains(t, sheet.System.Notes, "<strong>Iron Body:</strong>")
	assert.Contains(t, sheet.System.Notes, "<strong>Duty:</strong>")

	require.Len(t, items, 10)
	assert.Equal(t, "Observation", items[0].Name)
	assert.Equal(t, "perception", items[0].System.Area)
	assert.Equal(t, "average", items[0].System.Difficulty)
	assert.Equal(t, "Ranged Combat (Pistols)", items[5].Name)
	assert.Equal(t, "martial", items[5].System.Area)
	assert.Equal(t, "hard", items[5].System.Difficulty)
	assert.Equal(t, "Close Combat (General)", items[8].Name)
	assert.True(t, items[8].System.IsType)

	assert.Equal(t, "actor-1", res.Actor.ID)
	assert.Len(t, res.Skills, 10)
	assert.Empty(t, res.SkippedSkills)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 13, res.Sheet.Secondary.HLT)
	assert.Len(t, res.Sheet.Skills, 10)
}

func TestAssemble_BenefitAndBurdenEffects(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	var items []actor.Item
	f.captureActor(&sheet)
	f.acceptSkills(&items)
	f.compendium.EXPECT().Collection(gomock.Any(), "skills").Return(nil, nil)

	d := agentDraft(f.tables).
		WithPath("agent", "easy").
		WithEasyBenefit("affluent", "prs").
		WithBenefits("quickReflexes", "affluent").
		WithBurdens("duty", "insecure").
		Build()
	res, err := f.asm.Assemble(context.Background(), d)
	require.NoError(t, err)

	// prs 45 + 5 = 50; grt = (65+50)/5 = 23, then -5 easy and -5 insecure.
	assert.Equal(t, 50, res.Sheet.Primary.PRS)
	assert.Equal(t, 13, res.Sheet.Secondary.GRT)
	// poi = (50+13)/5 from the adjusted grit.
	assert.Equal(t, 12, res.Sheet.Secondary.POI)
	assert.Equal(t, 12, sheet.System.DerivedAttributes["poi"].Value)
	assert.Equal(t, 1, res.Sheet.Initiative)
	assert.Equal(t, 55, res.Sheet.Resources)
	assert.Equal(t, 55, sheet.System.Resources)
	assert.Contains(t, sheet.System.Equipment, "Resource Rating: 55")
	assert.Equal(t, "Easy", sheet.System.Path.Upbringing)
}

func TestAssemble_PrimaryEffects(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	var items []actor.Item
	f.captureActor(&sheet)
	f.acceptSkills(&items)
	f.compendium.EXPECT().Collection(gomock.Any(), "skills").Return(nil, nil)

	d := testutil.NewDraftBuilder().
		WithPrimary(50, 50, 60, 50).
		WithName("Iris").
		WithPath("medic", "traumatic").
		WithProfessionDefaults(f.tables).
		WithBenefits("ironWill", "peakPhysique").
		WithChoice("peakPhysique", "grc").
		Build()
	res, err := f.asm.Assemble(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 55, res.Sheet.Primary.GRC)
	assert.Equal(t, 50, res.Sheet.Primary.VGR)
	// grt = (50+50)/5 = 20, +5 iron will.
	assert.Equal(t, 25, res.Sheet.Secondary.GRT)
	// poi follows the adjusted grt: (60+25)/5.
	assert.Equal(t, 17, res.Sheet.Secondary.POI)
	assert.Equal(t, 50, sheet.System.Resources)
}

func TestAssemble_KeenMindClampsWithWarning(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	var items []actor.Item
	f.captureActor(&sheet)
	f.acceptSkills(&items)
	f.compendium.EXPECT().Collection(gomock.Any(), "skills").Return(nil, nil)

	d := testutil.NewDraftBuilder().
		WithPrimary(50, 50, 98, 50).
		WithName("Sage").
		WithPath("archivist", "average").
		WithProfessionDefaults(f.tables).
		WithBenefits("keenMind").
		Build()
	res, err := f.asm.Assemble(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 100, res.Sheet.Primary.INS)
	assert.Equal(t, []string{"INS clamped from 103 to 100"}, res.Warnings)
	assert.Equal(t, 100, sheet.System.PrimaryAttributes["ins"].Value)
	assert.Equal(t, 1, f.logs.FilterMessage("attribute clamped during assembly").Len())
}

func TestAssemble_CreateActorFailureStopsBeforeSkills(t *testing.T) {
	f := newFixture(t)
	f.actors.EXPECT().CreateActor(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := f.asm.Assemble(context.Background(), agentDraft(f.tables).Build())
	require.Error(t, err)
	assert.True(t, errors.Is(err, assembly.ErrCreateActor))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAssemble_NilRecordIsFailure(t *testing.T) {
	f := newFixture(t)
	f.actors.EXPECT().CreateActor(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.asm.Assemble(context.Background(), agentDraft(f.tables).Build())
	assert.True(t, errors.Is(err, assembly.ErrCreateActor))
}

func TestAssemble_SkillFailureIsSkipped(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	f.captureActor(&sheet)
	f.compendium.EXPECT().Collection(gomock.Any(), "skills").Return(nil, errors.New("compendium offline"))
	f.actors.EXPECT().CreateEmbedded(gomock.Any(), "actor-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in []actor.Item) ([]actor.Record, error) {
			if in[0].Name == "Search" {
				return nil, errors.New("duplicate item")
			}
			return []actor.Record{{ID: in[0].Name}}, nil
		}).Times(10)

	res, err := f.asm.Assemble(context.Background(), agentDraft(f.tables).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"Search"}, res.SkippedSkills)
	assert.Len(t, res.Skills, 9)
	assert.NotContains(t, res.Sheet.Skills, "Search")
	assert.Equal(t, 1, f.logs.FilterMessage("failed to add skill").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("skill compendium unavailable, using built-in skill table").Len())
}

func TestAssemble_EscapesUserText(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	var items []actor.Item
	f.captureActor(&sheet)
	f.acceptSkills(&items)
	f.compendium.EXPECT().Collection(gomock.Any(), "skills").Return(nil, nil)

	d := agentDraft(f.tables).WithTies(
		character.Tie{Name: "<script>alert(1)</script>", Desc: "Partner & friend", Strength: 45},
		character.Tie{Name: "Ben", Desc: "Brother", Strength: 45},
	).Build()
	d.Details.Gender = "<b>x</b>"
	d.Details.History.Motivation = "Find the truth"

	_, err := f.asm.Assemble(context.Background(), d)
	require.NoError(t, err)
	assert.NotContains(t, sheet.System.Notes, "<script>")
	assert.Contains(t, sheet.System.Notes, "&lt;script&gt;")
	assert.Contains(t, sheet.System.Notes, "Partner &amp; friend")
	assert.Contains(t, sheet.System.Notes, "Strong connection")
	assert.Contains(t, sheet.System.Biography, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, sheet.System.Biography, "<strong>Motivation:</strong> Find the truth")
	assert.NotContains(t, sheet.System.Biography, "Ambitions")
}

func TestAssemble_WithoutCompendium(t *testing.T) {
	tables := loadTables(t)
	ctrl := gomock.NewController(t)
	actors := mocks.NewMockActorStore(ctrl)
	actors.EXPECT().CreateActor(gomock.Any(), gomock.Any()).Return(&actor.Record{ID: "a"}, nil)
	actors.EXPECT().CreateEmbedded(gomock.Any(), "a", gomock.Any()).Return([]actor.Record{{ID: "s"}}, nil).Times(10)

	asm := assembly.NewAssembler(tables, actors, nil, zap.NewNop())
	res, err := asm.Assemble(context.Background(), agentDraft(tables).Build())
	require.NoError(t, err)
	assert.Len(t, res.Skills, 10)
}

func TestAssemble_UnknownPath(t *testing.T) {
	f := newFixture(t)
	d := agentDraft(f.tables).WithPath("bard", "average").Build()
	_, err := f.asm.Assemble(context.Background(), d)
	assert.True(t, errors.Is(err, assembly.ErrIncompleteDraft))
}

func TestAssembler_WithCollection(t *testing.T) {
	f := newFixture(t)
	var sheet actor.Actor
	var items []actor.Item
	f.captureActor(&sheet)
	f.acceptSkills(&items)
	f.compendium.EXPECT().Collection(gomock.Any(), "vestige-skills").Return(nil, nil)

	_, err := f.asm.WithCollection("vestige-skills").Assemble(context.Background(), agentDraft(f.tables).Build())
	require.NoError(t, err)
}
