package character

import (
	"strconv"
	"strings"
)

const (
	// MinAttribute is the lowest legal primary attribute score.
	MinAttribute = 0
	// MaxAttribute is the highest legal primary attribute score.
	MaxAttribute = 100
)

// PrimaryIDs lists the primary attribute identifiers in sheet order.
var PrimaryIDs = []string{"vgr", "grc", "ins", "prs"}

// SecondaryIDs lists the secondary attribute identifiers in sheet order.
var SecondaryIDs = []string{"hlt", "wds", "grt", "poi"}

// Primary holds the four player-assigned scores.
type Primary struct {
	VGR int `json:"vgr"`
	GRC int `json:"grc"`
	INS int `json:"ins"`
	PRS int `json:"prs"`
}

// Get returns the score for a primary id.
//
// Postcondition: Returns false for an unknown id.
func (p Primary) Get(id string) (int, bool) {
	switch id {
	case "vgr":
		return p.VGR, true
	case "grc":
		return p.GRC, true
	case "ins":
		return p.INS, true
	case "prs":
		return p.PRS, true
	}
	return 0, false
}

// Set assigns the score for a primary id and reports whether the id was known.
func (p *Primary) Set(id string, v int) bool {
	switch id {
	case "vgr":
		p.VGR = v
	case "grc":
		p.GRC = v
	case "ins":
		p.INS = v
	case "prs":
		p.PRS = v
	default:
		return false
	}
	return true
}

// Add applies delta to the score for a primary id and reports whether the id was known.
func (p *Primary) Add(id string, delta int) bool {
	v, ok := p.Get(id)
	if !ok {
		return false
	}
	return p.Set(id, v+delta)
}

// Secondary holds the values derived from Primary.
type Secondary struct {
	HLT int `json:"hlt"`
	WDS int `json:"wds"`
	GRT int `json:"grt"`
	POI int `json:"poi"`
}

// Get returns the value for a secondary id.
func (s Secondary) Get(id string) (int, bool) {
	switch id {
	case "hlt":
		return s.HLT, true
	case "wds":
		return s.WDS, true
	case "grt":
		return s.GRT, true
	case "poi":
		return s.POI, true
	}
	return 0, false
}

// Add applies delta to the value for a secondary id and reports whether the id was known.
func (s *Secondary) Add(id string, delta int) bool {
	switch id {
	case "hlt":
		s.HLT += delta
	case "wds":
		s.WDS += delta
	case "grt":
		s.GRT += delta
	case "poi":
		s.POI += delta
	default:
		return false
	}
	return true
}

// Derive computes the secondary attributes from the primaries.
//
//	hlt = vgr/5, wds = vgr/25, grt = (vgr+prs)/5, poi = (ins+grt)/5
//
// Precondition: every primary is within [MinAttribute, MaxAttribute].
// Postcondition: Pure; equal inputs always yield equal outputs.
func Derive(p Primary) Secondary {
	grt := (p.VGR + p.PRS) / 5
	return Secondary{
		HLT: p.VGR / 5,
		WDS: p.VGR / 25,
		GRT: grt,
		POI: Poise(p.INS, grt),
	}
}

// Poise returns (ins+grt)/5, treating a negative grit as zero.
func Poise(ins, grt int) int {
	if grt < 0 {
		grt = 0
	}
	return (ins + grt) / 5
}

// ClampAttribute limits v to [MinAttribute, MaxAttribute].
func ClampAttribute(v int) int {
	if v < MinAttribute {
		return MinAttribute
	}
	if v > MaxAttribute {
		return MaxAttribute
	}
	return v
}

// ParseAttributeValue converts free text to a legal score.
//
// Postcondition: Non-numeric input yields 0; numeric input is clamped.
func ParseAttributeValue(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return ClampAttribute(n)
}
