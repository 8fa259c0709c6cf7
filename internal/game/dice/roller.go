package dice

import "sort"

// Roll evaluates expr against src.
//
// Precondition: expr came from Parse; src is non-nil.
// Postcondition: len(Dice) == KeepHighest when KeepHighest > 0, else Count.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	if expr.KeepHighest > 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(rolled)))
		rolled = rolled[:expr.KeepHighest]
	}
	return RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
}

// RollExpr parses and rolls raw in one call.
func RollExpr(raw string, src Source) (RollResult, error) {
	e, err := Parse(raw)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
