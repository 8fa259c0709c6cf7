package character

// TiePointsPerPresence is the tie budget granted per point of Presence.
const TiePointsPerPresence = 2

// TieBudget returns the total tie strength a character with presence prs must allocate.
func TieBudget(prs int) int {
	return prs * TiePointsPerPresence
}

// AssignedStrength sums the strength of every assigned tie.
func (t Ties) AssignedStrength() int {
	sum := 0
	for _, tie := range t.Assigned {
		sum += tie.Strength
	}
	return sum
}

// StrengthDescription names the bond a tie strength represents.
func StrengthDescription(strength int) string {
	switch {
	case strength <= 20:
		return "Weak connection"
	case strength <= 40:
		return "Moderate connection"
	case strength <= 60:
		return "Strong connection"
	case strength <= 80:
		return "Very strong connection"
	default:
		return "Unbreakable connection"
	}
}
