package creature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wrenfold/loresmith/internal/dice"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
)

// sizePrefixes are the five-character openings that mark a section's first
// body line as a stat block descriptor.
var sizePrefixes = []string{"*Tiny", "*Smal", "*Medi", "*Larg", "*Huge", "*Garg"}

// Problem is one diagnostic raised while scanning a document. Problems with
// code CodeDuplicateFeatureOverwrite are warnings; any other code means the
// named section's block was skipped.
type Problem struct {
	Section string
	Err     error
}

// Result is everything one document scan produced.
type Result struct {
	Creatures []*Template
	Problems  []Problem
}

// Extract walks a document and compiles every section that qualifies as a
// stat block. A malformed block is reported and skipped without disturbing
// its siblings.
func Extract(doc *markdown.Document) *Result {
	result := &Result{}
	doc.Root.Walk(func(sec *markdown.Section) {
		if sec.Level >= 6 || len(sec.Body) == 0 || !hasSizePrefix(sec.Body[0]) {
			return
		}
		tmpl, problems := compile(sec)
		result.Problems = append(result.Problems, problems...)
		if tmpl != nil {
			result.Creatures = append(result.Creatures, tmpl)
		}
	})
	return result
}

func hasSizePrefix(line string) bool {
	for _, prefix := range sizePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// compile builds one template from a qualifying section. The body lines hold
// the descriptor, field lines, and features; child sections hold actions,
// reactions, and legendary actions.
func compile(sec *markdown.Section) (*Template, []Problem) {
	b := newBuilder(sec)
	for _, line := range sec.Body {
		if err := b.scanLine(line); err != nil {
			return nil, append(b.problems, Problem{Section: sec.Path(), Err: err})
		}
	}
	for _, child := range sec.Children {
		var err error
		switch strings.TrimSpace(child.Title) {
		case "Actions":
			err = b.scanActions(child.Body)
		case "Reactions":
			err = b.scanReactions(child.Body)
		case "Legendary Actions":
			err = b.scanLegendary(child.Body)
		}
		if err != nil {
			return nil, append(b.problems, Problem{Section: sec.Path(), Err: err})
		}
	}
	return b.tmpl, b.problems
}

// builder carries the scan state for one block: the template under
// construction plus which entry, if any, loose paragraphs should extend.
type builder struct {
	tmpl     *Template
	where    string
	problems []Problem

	abilityRow bool
	lastList   *[]Entry
	lastName   string
	lastAttack *Attack
	descRegex  *regexp.Regexp
}

func newBuilder(sec *markdown.Section) *builder {
	name := strings.TrimSpace(sec.Title)
	tmpl := &Template{
		Name:      name,
		Speeds:    map[string]int{},
		Abilities: map[string]int{},
		Saves:     map[string]int{},
		Skills:    map[string]int{},
	}
	for _, ability := range abilityOrder {
		tmpl.Abilities[ability] = 10
	}
	return &builder{
		tmpl:  tmpl,
		where: sec.Path(),
		// A bolded occurrence of the creature's name, singular or plural,
		// marks the start of flavor description inside the Actions section.
		descRegex: regexp.MustCompile(`(?i)\*\*` + regexp.QuoteMeta(name) + `e?s?\*\*`),
	}
}

func (b *builder) scanLine(line string) error {
	switch {
	case b.abilityRow:
		if len(line) > 1 && line[1] != '-' {
			b.abilityRow = false
			return b.parseAbilityRow(line)
		}
		return nil
	case hasSizePrefix(line):
		return b.parseSizeLine(line)
	case strings.HasPrefix(line, "***"):
		parts := strings.SplitN(line, "***", 3)
		if len(parts) < 3 {
			return lorerr.MalformedStatBlockf("feature %q has an unterminated name marker", line)
		}
		b.openFeature(parts[1], parts[2])
		return nil
	case strings.HasPrefix(line, "**"):
		parts := strings.SplitN(line, "**", 3)
		if len(parts) < 3 {
			return lorerr.MalformedStatBlockf("field %q has an unterminated name marker", line)
		}
		return b.scanField(parts[1], parts[2])
	case strings.HasPrefix(line, "| STR"):
		b.abilityRow = true
		return nil
	case strings.TrimSpace(line) != "":
		b.appendLoose(line)
	}
	return nil
}

// scanField dispatches a bolded line by its exact keyword. Anything that is
// not a reserved field keyword is a feature.
func (b *builder) scanField(title, text string) error {
	switch title {
	case "Armor Class":
		return b.parseArmorClass(text)
	case "Hit Points":
		return b.parseHitPoints(text)
	case "Speed":
		return b.parseSpeed(text)
	case "Skills":
		return b.parseSkills(text)
	case "Saving Throws", "Saves":
		return b.parseSaves(text)
	case "Senses":
		b.tmpl.Senses = strings.TrimSpace(text)
	case "Languages":
		b.tmpl.Languages = strings.TrimSpace(text)
	case "Challenge":
		return b.parseChallenge(text)
	default:
		b.openFeature(title, text)
	}
	return nil
}

func (b *builder) scanActions(body []string) error {
	b.lastList, b.lastAttack = nil, nil
	for _, line := range body {
		switch {
		case strings.HasPrefix(line, "***"):
			parts := strings.SplitN(line, "***", 3)
			if len(parts) < 3 {
				return lorerr.MalformedStatBlockf("action %q has an unterminated name marker", line)
			}
			name := entryName(parts[1])
			text := entryText(parts[2])
			if attackMarkerRegex.MatchString(line) {
				atk, err := ParseAttack(name, text)
				if err != nil {
					return err
				}
				b.tmpl.Attacks = append(b.tmpl.Attacks, atk)
				b.lastAttack = atk
				b.lastList = nil
			} else {
				if putEntry(&b.tmpl.Actions, name, text) {
					b.warn(lorerr.DuplicateFeatureOverwritef("action %q redefined, keeping the later text", name))
				}
				b.lastList = &b.tmpl.Actions
				b.lastName = name
				b.lastAttack = nil
			}
		case strings.TrimSpace(line) != "":
			if b.descRegex.MatchString(line) {
				b.tmpl.Description = line
				b.lastList, b.lastAttack = nil, nil
			} else {
				b.appendLoose(line)
			}
		}
	}
	return nil
}

func (b *builder) scanReactions(body []string) error {
	b.lastList, b.lastAttack = nil, nil
	for _, line := range body {
		switch {
		case strings.HasPrefix(line, "***"):
			parts := strings.SplitN(line, "***", 3)
			if len(parts) < 3 {
				return lorerr.MalformedStatBlockf("reaction %q has an unterminated name marker", line)
			}
			name := entryName(parts[1])
			if putEntry(&b.tmpl.Reactions, name, entryText(parts[2])) {
				b.warn(lorerr.DuplicateFeatureOverwritef("reaction %q redefined, keeping the later text", name))
			}
			b.lastList = &b.tmpl.Reactions
			b.lastName = name
		case strings.TrimSpace(line) != "":
			b.appendLoose(line)
		}
	}
	return nil
}

func (b *builder) scanLegendary(body []string) error {
	b.lastList, b.lastAttack = nil, nil
	b.lastName = ""
	for _, line := range body {
		switch {
		case strings.HasPrefix(line, "**"):
			parts := strings.SplitN(line, "**", 3)
			if len(parts) < 3 {
				return lorerr.MalformedStatBlockf("legendary action %q has an unterminated name marker", line)
			}
			name := entryName(parts[1])
			if putEntry(&b.tmpl.Legendary, name, entryText(parts[2])) {
				b.warn(lorerr.DuplicateFeatureOverwritef("legendary action %q redefined, keeping the later text", name))
			}
			b.lastList = &b.tmpl.Legendary
			b.lastName = name
		case strings.TrimSpace(line) != "":
			if b.lastList != nil {
				appendEntry(b.lastList, b.lastName, line)
			} else {
				// The paragraph before any named entry explains how
				// legendary actions work in general.
				putEntry(&b.tmpl.Legendary, "Legendary Actions", line)
			}
		}
	}
	return nil
}

func (b *builder) openFeature(name, text string) {
	cleaned := entryName(name)
	if putEntry(&b.tmpl.Features, cleaned, entryText(text)) {
		b.warn(lorerr.DuplicateFeatureOverwritef("feature %q redefined, keeping the later text", cleaned))
	}
	b.lastList = &b.tmpl.Features
	b.lastName = cleaned
	b.lastAttack = nil
}

// appendLoose extends the most recently opened entry with a paragraph.
// Prose arriving before any entry is the creature's description.
func (b *builder) appendLoose(line string) {
	switch {
	case b.lastAttack != nil:
		b.lastAttack.appendEffect(line)
	case b.lastList != nil:
		appendEntry(b.lastList, b.lastName, line)
	default:
		b.tmpl.Description = joinParagraph(b.tmpl.Description, line)
	}
}

func (b *builder) warn(err error) {
	b.problems = append(b.problems, Problem{Section: b.where, Err: err})
}

func (b *builder) parseSizeLine(line string) error {
	words := strings.Fields(line)
	if len(words) < 2 {
		return lorerr.MalformedStatBlockf("descriptor %q is too short", line)
	}
	b.tmpl.Size = strings.Trim(words[0], "*")
	b.tmpl.Type = strings.Trim(words[1], ",*")
	from := 0
	if open := strings.IndexByte(line, '('); open >= 0 {
		if end := strings.IndexByte(line, ')'); end > open {
			b.tmpl.SubType = line[open+1 : end]
			from = end
		}
	}
	comma := strings.IndexByte(line[from:], ',')
	if comma < 0 {
		return lorerr.MalformedStatBlockf("descriptor %q has no alignment", line)
	}
	b.tmpl.Alignment = strings.Trim(line[from+comma+1:], " *")
	return nil
}

func (b *builder) parseAbilityRow(line string) error {
	scores := make([]int, 0, len(abilityOrder))
	for _, cell := range strings.Split(line, "|") {
		fields := strings.Fields(cell)
		if len(fields) == 0 {
			continue
		}
		score, err := strconv.Atoi(fields[0])
		if err != nil {
			return lorerr.MalformedStatBlockf("ability cell %q does not start with a score", strings.TrimSpace(cell))
		}
		scores = append(scores, score)
	}
	if len(scores) != len(abilityOrder) {
		return lorerr.MalformedStatBlockf("ability table has %d scores, want %d", len(scores), len(abilityOrder))
	}
	for i, ability := range abilityOrder {
		b.tmpl.Abilities[ability] = scores[i]
	}
	return nil
}

func (b *builder) parseArmorClass(text string) error {
	head, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	ac, err := strconv.Atoi(head)
	if err != nil {
		return lorerr.MalformedStatBlockf("armor class %q is not an integer", head)
	}
	b.tmpl.ArmorClass = ac
	b.tmpl.ArmorDesc = strings.TrimSpace(rest)
	return nil
}

func (b *builder) parseHitPoints(text string) error {
	head, tail, found := strings.Cut(text, "(")
	avg, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return lorerr.MalformedStatBlockf("hit point average %q is not an integer", strings.TrimSpace(head))
	}
	if !found {
		return lorerr.MalformedStatBlockf("hit points %q have no dice group", strings.TrimSpace(text))
	}
	expr, err := dice.Parse(strings.Trim(tail, ") "))
	if err != nil {
		return lorerr.Wrapf(err, "hit dice of %q", b.tmpl.Name)
	}
	b.tmpl.HitPoints = avg
	b.tmpl.HitDice = expr
	return nil
}

func (b *builder) parseSpeed(text string) error {
	for _, chunk := range strings.Split(text, ",") {
		fields := strings.Fields(chunk)
		if len(fields) == 0 {
			continue
		}
		if pace, err := strconv.Atoi(fields[0]); err == nil {
			b.tmpl.Speeds["walk"] = pace
			continue
		}
		kind := strings.ToLower(strings.Trim(fields[0], ".,"))
		for _, field := range fields[1:] {
			if pace, err := strconv.Atoi(field); err == nil {
				b.tmpl.Speeds[kind] = pace
				break
			}
		}
	}
	if len(b.tmpl.Speeds) == 0 {
		return lorerr.MalformedStatBlockf("speed %q lists no paces", strings.TrimSpace(text))
	}
	return nil
}

func (b *builder) parseSkills(text string) error {
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		fields := strings.Fields(part)
		if len(fields) >= 2 {
			if bonus, err := strconv.Atoi(strings.TrimPrefix(fields[len(fields)-1], "+")); err == nil {
				b.tmpl.Skills[skillKey(strings.Join(fields[:len(fields)-1], " "))] = bonus
				continue
			}
		}
		// A parenthesized qualifier after the bonus, like
		// "Stealth +6 (while underground)", becomes a feature.
		main, qualifier, found := strings.Cut(part, "(")
		if !found {
			return lorerr.MalformedStatBlockf("skill %q is not a name and bonus", strings.TrimSpace(part))
		}
		fields = strings.Fields(main)
		if len(fields) < 2 {
			return lorerr.MalformedStatBlockf("skill %q is not a name and bonus", strings.TrimSpace(main))
		}
		bonus, err := strconv.Atoi(strings.TrimPrefix(fields[len(fields)-1], "+"))
		if err != nil {
			return lorerr.MalformedStatBlockf("skill %q has no integer bonus", strings.TrimSpace(main))
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		b.tmpl.Skills[skillKey(name)] = bonus
		b.putQualifierFeature(name, qualifier)
	}
	return nil
}

func (b *builder) putQualifierFeature(name, qualifier string) {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(qualifier), ")"))
	if putEntry(&b.tmpl.Features, name, text) {
		b.warn(lorerr.DuplicateFeatureOverwritef("feature %q redefined, keeping the later text", name))
	}
}

func (b *builder) parseSaves(text string) error {
	for _, part := range strings.Split(text, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return lorerr.MalformedStatBlockf("save %q is not an ability and bonus", strings.TrimSpace(part))
		}
		bonus, err := strconv.Atoi(strings.TrimPrefix(fields[1], "+"))
		if err != nil {
			return lorerr.MalformedStatBlockf("save %q has no integer bonus", strings.TrimSpace(part))
		}
		b.tmpl.Saves[strings.ToUpper(fields[0])] = bonus
	}
	return nil
}

func (b *builder) parseChallenge(text string) error {
	head, tail, found := strings.Cut(text, "(")
	if !found {
		return lorerr.MalformedStatBlockf("challenge %q has no XP group", strings.TrimSpace(text))
	}
	head = strings.TrimSpace(head)
	if numText, denText, isFraction := strings.Cut(head, "/"); isFraction {
		num, numErr := strconv.Atoi(strings.TrimSpace(numText))
		den, denErr := strconv.Atoi(strings.TrimSpace(denText))
		if numErr != nil || denErr != nil || den == 0 {
			return lorerr.MalformedStatBlockf("challenge rating %q is not a fraction", head)
		}
		b.tmpl.Challenge = Rating{Num: num, Den: den}
	} else {
		num, err := strconv.Atoi(head)
		if err != nil {
			return lorerr.MalformedStatBlockf("challenge rating %q is not an integer", head)
		}
		b.tmpl.Challenge = Rating{Num: num, Den: 1}
	}
	mark := strings.IndexByte(tail, 'X')
	if mark < 0 {
		return lorerr.MalformedStatBlockf("challenge %q has no XP value", strings.TrimSpace(text))
	}
	xp, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(tail[:mark]), ",", ""))
	if err != nil {
		return lorerr.MalformedStatBlockf("challenge XP %q is not an integer", strings.TrimSpace(tail[:mark]))
	}
	b.tmpl.XP = xp
	return nil
}

// entryName trims the emphasis spacing and trailing period from a feature or
// action name: "Keen Smell." keys as "Keen Smell".
func entryName(name string) string {
	return strings.TrimRight(strings.TrimSpace(name), ".")
}

func entryText(text string) string {
	return strings.TrimSpace(text)
}

func skillKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// putEntry writes a named entry, replacing in place when the name already
// exists, and reports whether it overwrote.
func putEntry(entries *[]Entry, name, text string) bool {
	for i := range *entries {
		if (*entries)[i].Name == name {
			(*entries)[i].Text = text
			return true
		}
	}
	*entries = append(*entries, Entry{Name: name, Text: text})
	return false
}

// appendEntry joins a continuation paragraph onto the named entry.
func appendEntry(entries *[]Entry, name, line string) {
	for i := range *entries {
		if (*entries)[i].Name == name {
			(*entries)[i].Text = joinParagraph((*entries)[i].Text, line)
			return
		}
	}
}

func joinParagraph(text, line string) string {
	if text == "" {
		return line
	}
	return text + "\n\n" + line
}
