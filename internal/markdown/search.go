package markdown

import (
	"regexp"
	"strings"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Search finds sections across the documents, which must already be in
// filename-number order. The query prefix selects the mode: '$' is a regular
// expression over header titles, '+' is a regular expression over body text,
// anything else matches a header title exactly. All modes ignore case, and
// results keep depth-first document order.
func Search(query string, docs ...*Document) ([]*Section, error) {
	match, err := compileQuery(query)
	if err != nil {
		return nil, err
	}

	var found []*Section
	for _, doc := range docs {
		doc.Root.Walk(func(s *Section) {
			if match(s) {
				found = append(found, s)
			}
		})
	}
	return found, nil
}

// compileQuery builds the section predicate once so a corpus traversal never
// recompiles the pattern.
func compileQuery(query string) (func(*Section) bool, error) {
	switch {
	case strings.HasPrefix(query, "$"):
		pattern, err := regexp.Compile("(?i)" + query[1:])
		if err != nil {
			return nil, lorerr.InvalidArgumentf("bad header pattern %q: %v", query[1:], err)
		}
		return func(s *Section) bool {
			return pattern.MatchString(s.Title)
		}, nil

	case strings.HasPrefix(query, "+"):
		pattern, err := regexp.Compile("(?i)" + query[1:])
		if err != nil {
			return nil, lorerr.InvalidArgumentf("bad text pattern %q: %v", query[1:], err)
		}
		return func(s *Section) bool {
			for _, line := range s.Body {
				if pattern.MatchString(line) {
					return true
				}
			}
			return false
		}, nil

	default:
		want := strings.TrimSpace(query)
		return func(s *Section) bool {
			return strings.EqualFold(s.Title, want)
		}, nil
	}
}
