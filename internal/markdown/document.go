// Package markdown turns campaign and reference text into a tree of sections
// keyed by their headers, the shape every other compiler in this module reads.
package markdown

import (
	"strings"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Section is one header and everything it owns: the body lines before the
// first subsection and the subsections themselves, in document order.
type Section struct {
	Level    int
	Title    string
	Body     []string
	Children []*Section

	parent *Section
}

// Document is a parsed file. Key is the file identity (the filename minus its
// number prefix and extension) that drives routing during a campaign load.
type Document struct {
	Key  string
	Root *Section
}

// Build parses text into a Document. A line opening with one to six '#'
// characters starts a section at that depth, nested under the nearest open
// section of lower level; every other line belongs to the innermost open
// section. The first header must be the level-1 document title.
func Build(key, text string) (*Document, error) {
	var root *Section
	open := (*Section)(nil)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")

		level, title, isHeader := splitHeader(line)
		if !isHeader {
			if open != nil {
				appendBody(open, line)
			}
			continue
		}

		if root == nil {
			if level != 1 {
				return nil, lorerr.EmptyDocument("document does not open with a level-1 header").
					WithMeta("document", key)
			}
			root = &Section{Level: 1, Title: title}
			open = root
			continue
		}

		parent := open
		for parent != root && level <= parent.Level {
			parent = parent.parent
		}

		child := &Section{Level: level, Title: title, parent: parent}
		parent.Children = append(parent.Children, child)
		open = child
	}

	if root == nil {
		return nil, lorerr.EmptyDocument("document has no level-1 header").
			WithMeta("document", key)
	}

	trimBodies(root)
	return &Document{Key: key, Root: root}, nil
}

// splitHeader reports whether line is a markdown header and returns its depth
// and title. Seven or more '#' characters is body text, not a header.
func splitHeader(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level:]), true
}

// appendBody adds a line to the section, dropping blank lines before any text
// has arrived.
func appendBody(s *Section, line string) {
	if len(s.Body) == 0 && strings.TrimSpace(line) == "" {
		return
	}
	s.Body = append(s.Body, line)
}

// trimBodies removes trailing blank lines from every section in the tree.
func trimBodies(s *Section) {
	for len(s.Body) > 0 && strings.TrimSpace(s.Body[len(s.Body)-1]) == "" {
		s.Body = s.Body[:len(s.Body)-1]
	}
	for _, child := range s.Children {
		trimBodies(child)
	}
}

// Parent returns the owning section, nil at the document root.
func (s *Section) Parent() *Section {
	return s.parent
}

// Walk visits the section and its subtree depth first in document order.
func (s *Section) Walk(visit func(*Section)) {
	visit(s)
	for _, child := range s.Children {
		child.Walk(visit)
	}
}

// Child returns the direct subsection with the given title, case-insensitive,
// or nil.
func (s *Section) Child(title string) *Section {
	for _, child := range s.Children {
		if strings.EqualFold(child.Title, title) {
			return child
		}
	}
	return nil
}

// Path renders the section's location as ancestor titles joined with " > ".
func (s *Section) Path() string {
	text := s.Title
	for parent := s.parent; parent != nil; parent = parent.parent {
		text = parent.Title + " > " + text
	}
	return text
}

// Text renders the section and its subtree back to markdown, blocks separated
// by blank lines.
func (s *Section) Text() string {
	parts := []string{strings.Repeat("#", s.Level) + " " + s.Title}
	if len(s.Body) > 0 {
		parts = append(parts, strings.Join(s.Body, "\n"))
	}
	for _, child := range s.Children {
		parts = append(parts, child.Text())
	}
	return strings.Join(parts, "\n\n")
}

// Title returns the root header text, the name used for routing decisions.
func (d *Document) Title() string {
	if d.Root == nil {
		return ""
	}
	return d.Root.Title
}
