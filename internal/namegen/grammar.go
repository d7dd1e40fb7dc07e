// Package namegen compiles name-generation documents into weighted grammars
// and draws random names from them through an injectable dice roller.
package namegen

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/wrenfold/loresmith/internal/dice"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// partToken matches one {part} reference inside a name template. Part keys
// may hold spaces, so anything up to the closing brace counts.
var partToken = regexp.MustCompile(`\{([^{}]*)\}`)

// Format is one weighted name template. The weight is an unnormalized share
// against the other formats of the same gender; weights across a gender need
// not sum to any particular total.
type Format struct {
	Weight   int
	Template string
}

// Culture is one naming tradition: its part lists plus the weighted formats
// grouped by gender. Part keys and gender keys are stored lower-cased; the
// literals inside each part keep their document spelling.
type Culture struct {
	Name    string
	Parts   map[string][]string
	Genders map[string][]Format
}

// Grammar holds every culture of a names document, keyed by lower-cased
// culture name.
type Grammar struct {
	Cultures map[string]*Culture
}

// CultureNames returns every culture key in sorted order.
func (g *Grammar) CultureNames() []string {
	return slices.Sorted(maps.Keys(g.Cultures))
}

// GenderNames returns the gender keys of one culture in sorted order.
func (g *Grammar) GenderNames(culture string) ([]string, error) {
	c, ok := g.Cultures[strings.ToLower(culture)]
	if !ok {
		return nil, lorerr.NotFoundf("no name culture %q", culture)
	}
	return slices.Sorted(maps.Keys(c.Genders)), nil
}

// Generate draws one name for the culture and gender. A format is chosen
// with probability proportional to its weight, then every {part} token in it
// is replaced with a literal drawn uniformly from the matching part list.
func (g *Grammar) Generate(culture, gender string, r dice.Roller) (string, error) {
	c, ok := g.Cultures[strings.ToLower(culture)]
	if !ok {
		return "", lorerr.NotFoundf("no name culture %q", culture)
	}
	formats, ok := c.Genders[strings.ToLower(gender)]
	if !ok {
		return "", lorerr.NotFoundf("culture %q has no gender %q", c.Name, gender)
	}

	weights := make([]int, len(formats))
	for i, format := range formats {
		weights[i] = format.Weight
	}
	chosen, err := dice.WeightedIndex(r, weights)
	if err != nil {
		return "", err
	}
	return c.expand(formats[chosen].Template, r)
}

// expand substitutes each {part} token with one drawn literal. The scan only
// ever moves forward, so braces inside a drawn literal land verbatim and
// never expand again.
func (c *Culture) expand(template string, r dice.Roller) (string, error) {
	var out strings.Builder
	rest := template
	for {
		loc := partToken.FindStringSubmatchIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:loc[0]])

		key := strings.ToLower(rest[loc[2]:loc[3]])
		literals, ok := c.Parts[key]
		if !ok {
			return "", lorerr.UnknownNamePartf("culture %q has no name part %q", c.Name, key)
		}
		literal, err := dice.PickOne(r, literals)
		if err != nil {
			return "", err
		}
		out.WriteString(literal)
		rest = rest[loc[1]:]
	}
}
