package dice

import (
	"fmt"
	"regexp"
	"strconv"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// expressionRegex matches the full canonical notation: count, 'd', sides,
// optional +/- modifier. No embedded whitespace; a missing count means one die.
var expressionRegex = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// referenceRegex finds die notation anywhere inside a larger string, such as
// the roll column header of a table.
var referenceRegex = regexp.MustCompile(`\d*d\d+`)

// Expression is a parsed dice notation like "2d8+6".
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// Parse converts dice notation text into an Expression. The accepted form is
// NdM with an optional +K or -K suffix; the count may be omitted ("d20").
// Whitespace anywhere in the text is rejected.
func Parse(text string) (Expression, error) {
	groups := expressionRegex.FindStringSubmatch(text)
	if groups == nil {
		return Expression{}, lorerr.UnrecognizedDicef("no dice expression in %q", text)
	}

	count := 1
	if groups[1] != "" {
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			return Expression{}, lorerr.UnrecognizedDicef("bad dice count in %q", text)
		}
		count = n
	}
	if count < 1 {
		return Expression{}, lorerr.UnrecognizedDicef("dice count must be positive in %q", text)
	}

	sides, err := strconv.Atoi(groups[2])
	if err != nil || sides < 1 {
		return Expression{}, lorerr.UnrecognizedDicef("dice sides must be positive in %q", text)
	}

	modifier := 0
	if groups[3] != "" {
		modifier, err = strconv.Atoi(groups[3])
		if err != nil {
			return Expression{}, lorerr.UnrecognizedDicef("bad modifier in %q", text)
		}
	}

	return Expression{Count: count, Sides: sides, Modifier: modifier}, nil
}

// MustParse is Parse for expressions known to be valid, such as literals in
// tests and fixtures. It panics on error.
func MustParse(text string) Expression {
	expr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return expr
}

// String renders the canonical notation. The count is always shown, the
// modifier only when nonzero.
func (e Expression) String() string {
	switch {
	case e.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Sides, e.Modifier)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}

// Average returns the statistical mean of the expression rounded down, the
// convention stat blocks use for average hit points.
func (e Expression) Average() int {
	return e.Count*(e.Sides+1)/2 + e.Modifier
}

// HasRoll reports whether text contains die notation anywhere. Table scans
// use it to tell rollable tables from plain ones.
func HasRoll(text string) bool {
	return referenceRegex.MatchString(text)
}
