// Package actor defines the persisted character-sheet record produced by
// character assembly and the embedded skill items attached to it.
package actor

import "time"

// TypeCharacter is the actor type written for player characters.
const TypeCharacter = "character"

// TypeSkill is the item type written for skills.
const TypeSkill = "skill"

// Actor is the sheet payload handed to an ActorStore.
type Actor struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	System System `json:"system"`
}

// AttributeValue is one primary attribute on the sheet.
type AttributeValue struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// DerivedValue is one secondary attribute; Max starts equal to Value.
type DerivedValue struct {
	Value int    `json:"value"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

// PathInfo records the profession and upbringing display names.
type PathInfo struct {
	Profession string `json:"profession"`
	Upbringing string `json:"upbringing"`
}

// System is the game-specific part of the sheet. Equipment, Notes and
// Biography hold HTML with all user-entered text escaped.
type System struct {
	PrimaryAttributes map[string]AttributeValue `json:"primaryAttributes"`
	DerivedAttributes map[string]DerivedValue   `json:"derivedAttributes"`
	DamageResistance  int                       `json:"damageResistance"`
	Initiative        int                       `json:"initiative"`
	Resources         int                       `json:"resources"`
	Equipment         string                    `json:"equipment"`
	Notes             string                    `json:"notes"`
	Biography         string                    `json:"biography"`
	Path              PathInfo                  `json:"path"`
}

// Item is an embedded document owned by an actor.
type Item struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	System SkillSystem `json:"system"`
}

// SkillSystem is the skill-specific payload of an Item.
type SkillSystem struct {
	Area            string   `json:"area"`
	Governing       string   `json:"governing"`
	Difficulty      string   `json:"difficulty"`
	SuccessNumber   int      `json:"successNumber"`
	EPBonus         int      `json:"epBonus"`
	Specializations []string `json:"specializations"`
	HasAdvantage    bool     `json:"hasAdvantage"`
	Description     string   `json:"description"`
	IsType          bool     `json:"isType"`
	PossibleTypes   []string `json:"possibleTypes"`
	IsPrerequisite  bool     `json:"isPrerequisite"`
	Prerequisites   []string `json:"prerequisites"`
}

// Record identifies a stored actor or item.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompendiumEntry is a reference skill looked up by name during assembly.
type CompendiumEntry struct {
	Name       string `json:"name"`
	Area       string `json:"area"`
	Governing  string `json:"governing"`
	Difficulty string `json:"difficulty"`
}
