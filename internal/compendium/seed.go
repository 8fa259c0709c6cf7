// Package compendium builds the reference skill entries that character
// assembly consults for sheet metadata.
package compendium

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/vestige/internal/game/actor"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
)

// File is the YAML layout of a compendium seed file.
type File struct {
	Collection string  `yaml:"collection"`
	Entries    []Entry `yaml:"entries"`
}

// Entry is one skill in a seed file.
type Entry struct {
	Name       string `yaml:"name"`
	Area       string `yaml:"area"`
	Governing  string `yaml:"governing"`
	Difficulty string `yaml:"difficulty"`
}

// FromTables derives one entry per skill definition, filling area and
// governing attribute from the table defaults where the skill leaves them unset.
//
// Postcondition: Returns entries in table order, each with a non-empty Area and Governing.
func FromTables(t *ruleset.Tables) []actor.CompendiumEntry {
	out := make([]actor.CompendiumEntry, 0, len(t.Skills()))
	for _, s := range t.Skills() {
		area, governing := t.SkillMeta(s.Name)
		out = append(out, actor.CompendiumEntry{Name: s.Name, Area: area, Governing: governing, Difficulty: "average"})
	}
	return out
}

// Decode reads a seed file.
//
// Postcondition: Returns the collection name and entries, or an error naming
// every entry without a name or with an unknown governing attribute.
func Decode(r io.Reader, t *ruleset.Tables) (string, []actor.CompendiumEntry, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return "", nil, fmt.Errorf("decoding compendium: %w", err)
	}

	var problems []string
	out := make([]actor.CompendiumEntry, 0, len(f.Entries))
	for i, e := range f.Entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			problems = append(problems, fmt.Sprintf("entry %d has no name", i+1))
			continue
		}
		if e.Governing != "" && !t.IsPrimary(e.Governing) {
			problems = append(problems, fmt.Sprintf("%s: unknown governing attribute %q", name, e.Governing))
			continue
		}
		out = append(out, actor.CompendiumEntry{Name: name, Area: e.Area, Governing: e.Governing, Difficulty: e.Difficulty})
	}
	if len(problems) > 0 {
		return "", nil, fmt.Errorf("invalid compendium: %s", strings.Join(problems, "; "))
	}
	return f.Collection, out, nil
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string, t *ruleset.Tables) (string, []actor.CompendiumEntry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening compendium: %w", err)
	}
	defer fh.Close()
	return Decode(fh, t)
}
