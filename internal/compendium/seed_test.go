package compendium_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/vestige/content"
	"github.com/cory-johannsen/vestige/internal/compendium"
	"github.com/cory-johannsen/vestige/internal/game/actor"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

func loadTables(t *testing.T) *ruleset.Tables {
	t.Helper()
	tables, err := ruleset.LoadTables(content.FS)
	require.NoError(t, err)
	return tables
}

func TestFromTables(t *testing.T) {
	tables := loadTables(t)
	entries := compendium.FromTables(tables)

	require.Len(t, entries, len(tables.Skills()))
	byName := make(map[string]actor.CompendiumEntry, len(entries))
	for _, e := range entries {
		assert.NotEmpty(t, e.Area, e.Name)
		assert.NotEmpty(t, e.Governing, e.Name)
		byName[e.Name] = e
	}
	assert.Equal(t, actor.CompendiumEntry{Name: "Deception", Area: "interpersonal", Governing: "prs", Difficulty: "average"}, byName["Deception"])
	assert.Equal(t, "ins", byName["Surveillance"].Governing, "unset governing falls back to the table default")
}

func TestDecode(t *testing.T) {
	tables := loadTables(t)
	src := `
collection: skills
entries:
  - {name: Tactics, area: education, governing: ins, difficulty: hard}
  - {name: " Evasion ", governing: grc}
`
	collection, entries, err := compendium.Decode(strings.NewReader(src), tables)
	require.NoError(t, err)
	assert.Equal(t, "skills", collection)
	assert.Equal(t, []actor.CompendiumEntry{
		{Name: "Tactics", Area: "education", Governing: "ins", Difficulty: "hard"},
		{Name: "Evasion", Governing: "grc"},
	}, entries)
}

func TestDecode_ReportsEveryProblem(t *testing.T) {
	tables := loadTables(t)
	src := `
entries:
  - {area: education}
  - {name: Tactics, governing: luck}
`
	_, _, err := compendium.Decode(strings.NewReader(src), tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1 has no name")
	assert.Contains(t, err.Error(), `Tactics: unknown governing attribute "luck"`)

	_, _, err = compendium.Decode(strings.NewReader("entries: [unterminated"), tables)
	assert.ErrorContains(t, err, "decoding compendium")
}
