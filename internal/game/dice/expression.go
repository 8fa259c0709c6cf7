package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression.
//
// Invariant: Count >= 1, Sides >= 2, 0 <= KeepHighest < Count.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int
}

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?(?:([+-])(\d+))?$`)

// Parse reads "NdS", "NdS+M", "NdS-M" or "NdSkhK+M". N defaults to 1.
//
// Postcondition: A returned error wraps ErrInvalidExpression.
func Parse(raw string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("%w %q", ErrInvalidExpression, raw)
	}
	e := Expression{Raw: raw, Count: 1}
	if m[1] != "" {
		e.Count, _ = strconv.Atoi(m[1])
	}
	e.Sides, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		e.KeepHighest, _ = strconv.Atoi(m[3])
	}
	if m[5] != "" {
		e.Modifier, _ = strconv.Atoi(m[5])
		if m[4] == "-" {
			e.Modifier = -e.Modifier
		}
	}
	switch {
	case e.Count < 1:
		return Expression{}, fmt.Errorf("%w %q: die count must be >= 1", ErrInvalidExpression, raw)
	case e.Sides < 2:
		return Expression{}, fmt.Errorf("%w %q: die sides must be >= 2", ErrInvalidExpression, raw)
	case m[3] != "" && (e.KeepHighest < 1 || e.KeepHighest >= e.Count):
		return Expression{}, fmt.Errorf("%w %q: kh must be between 1 and %d", ErrInvalidExpression, raw, e.Count-1)
	}
	return e, nil
}

// MustParse parses raw and panics on error.
func MustParse(raw string) Expression {
	e, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return e
}
