package namegen

import (
	"strconv"
	"strings"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
)

// Compile turns a names document into a Grammar. Level-2 headers open
// cultures; `**Part** a, b, c` body lines fill their part lists; level-3
// headers under a culture group weighted format lines by gender.
func Compile(doc *markdown.Document) (*Grammar, error) {
	grammar := &Grammar{Cultures: map[string]*Culture{}}

	var compileErr *lorerr.Error
	doc.Root.Walk(func(sec *markdown.Section) {
		if compileErr != nil || sec.Level != 2 {
			return
		}
		culture, err := compileCulture(sec)
		if err != nil {
			compileErr = err.WithMeta("document", doc.Key).WithMeta("section", sec.Path())
			return
		}
		grammar.Cultures[strings.ToLower(culture.Name)] = culture
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return grammar, nil
}

func compileCulture(sec *markdown.Section) (*Culture, *lorerr.Error) {
	culture := &Culture{
		Name:    strings.TrimSpace(sec.Title),
		Parts:   map[string][]string{},
		Genders: map[string][]Format{},
	}

	for _, line := range sec.Body {
		if !strings.HasPrefix(line, "**") {
			continue
		}
		pieces := strings.Split(line, "**")
		if len(pieces) != 3 {
			return nil, lorerr.InvalidNameSpecf("bad name part line %q", line)
		}
		key := strings.ToLower(strings.TrimSpace(pieces[1]))
		var literals []string
		for _, literal := range strings.Split(strings.Trim(pieces[2], ": "), ",") {
			literals = append(literals, strings.TrimSpace(literal))
		}
		culture.Parts[key] = literals
	}

	for _, child := range sec.Children {
		if child.Level != 3 {
			continue
		}
		formats, err := compileFormats(child)
		if err != nil {
			return nil, err
		}
		culture.Genders[strings.ToLower(strings.TrimSpace(child.Title))] = formats
	}
	return culture, nil
}

// compileFormats reads the weighted format lines of one gender section. A
// line opening with [N] weighs its template N; a bare line weighs 100.
func compileFormats(sec *markdown.Section) ([]Format, *lorerr.Error) {
	var formats []Format
	for _, line := range sec.Body {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "["):
			end := strings.IndexByte(trimmed, ']')
			if end < 0 {
				return nil, lorerr.InvalidNameSpecf("format %q has an unterminated weight", trimmed)
			}
			weight, err := strconv.Atoi(strings.TrimSpace(trimmed[1:end]))
			if err != nil || weight <= 0 {
				return nil, lorerr.InvalidNameSpecf("format weight %q is not a positive integer", trimmed[1:end])
			}
			formats = append(formats, Format{Weight: weight, Template: strings.TrimSpace(trimmed[end+1:])})
		default:
			formats = append(formats, Format{Weight: 100, Template: trimmed})
		}
	}
	if len(formats) == 0 {
		return nil, lorerr.InvalidNameSpecf("gender %q defines no formats", sec.Title)
	}
	return formats, nil
}
