// Package creature extracts stat blocks from campaign documents and turns
// them into typed templates for combat and reference display.
package creature

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/wrenfold/loresmith/internal/dice"
)

// abilityOrder is the fixed column order of an ability table.
var abilityOrder = []string{"STR", "DEX", "CON", "INT", "WIS", "CHA"}

// skillAbilities maps each skill to the ability that backs it when the stat
// block lists no explicit bonus.
var skillAbilities = map[string]string{
	"acrobatics":      "DEX",
	"animal-handling": "WIS",
	"arcana":          "INT",
	"athletics":       "STR",
	"deception":       "CHA",
	"history":         "INT",
	"insight":         "WIS",
	"intimidation":    "CHA",
	"investigation":   "INT",
	"medicine":        "WIS",
	"nature":          "INT",
	"perception":      "WIS",
	"performance":     "CHA",
	"persuasion":      "CHA",
	"religion":        "INT",
	"sleight-of-hand": "DEX",
	"stealth":         "DEX",
	"survival":        "WIS",
}

// Entry is one named block of rules text, such as a feature or an action.
// Declaration order is preserved; writing an existing name replaces its text
// in place.
type Entry struct {
	Name string
	Text string
}

// Rating is a challenge rating, kept as a fraction because low-tier ratings
// like 1/2 and 1/4 must survive display unchanged.
type Rating struct {
	Num int
	Den int
}

// Value returns the rating as a float for difficulty comparisons.
func (r Rating) Value() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rating) String() string {
	if r.Den > 1 {
		return fmt.Sprintf("%d/%d", r.Num, r.Den)
	}
	return fmt.Sprintf("%d", r.Num)
}

// Template is one compiled stat block. It is immutable once built; combat
// collaborators call Clone to get per-instance copies they can mutate.
type Template struct {
	Name      string
	Size      string
	Type      string
	SubType   string
	Alignment string

	ArmorClass int
	ArmorDesc  string
	HitPoints  int
	HitDice    dice.Expression
	Speeds     map[string]int

	Abilities map[string]int
	Saves     map[string]int
	Skills    map[string]int

	Senses    string
	Languages string
	Challenge Rating
	XP        int

	Description string
	Features    []Entry
	Actions     []Entry
	Attacks     []*Attack
	Reactions   []Entry
	Legendary   []Entry
}

// AbilityBonus converts an ability score to its bonus, floor((score-10)/2).
func AbilityBonus(score int) int {
	return score/2 - 5
}

// SaveBonus returns the creature's saving throw bonus for an ability,
// falling back to the plain ability bonus when the block lists none.
func (t *Template) SaveBonus(ability string) int {
	if bonus, ok := t.Saves[ability]; ok {
		return bonus
	}
	return AbilityBonus(t.Abilities[ability])
}

// SkillBonus returns the creature's bonus for a skill, falling back to the
// bonus of the ability behind that skill.
func (t *Template) SkillBonus(skill string) int {
	if bonus, ok := t.Skills[skill]; ok {
		return bonus
	}
	return AbilityBonus(t.Abilities[skillAbilities[skill]])
}

// InitiativeBonus is the bonus a combat collaborator adds to initiative rolls.
func (t *Template) InitiativeBonus() int {
	return AbilityBonus(t.Abilities["DEX"])
}

// Clone returns an independent copy safe for per-instance mutation.
func (t *Template) Clone() *Template {
	clone := *t
	clone.Speeds = maps.Clone(t.Speeds)
	clone.Abilities = maps.Clone(t.Abilities)
	clone.Saves = maps.Clone(t.Saves)
	clone.Skills = maps.Clone(t.Skills)
	clone.Features = slices.Clone(t.Features)
	clone.Actions = slices.Clone(t.Actions)
	clone.Reactions = slices.Clone(t.Reactions)
	clone.Legendary = slices.Clone(t.Legendary)
	clone.Attacks = make([]*Attack, len(t.Attacks))
	for i, atk := range t.Attacks {
		copied := *atk
		copied.Damage = slices.Clone(atk.Damage)
		if atk.Alternate != nil {
			alt := *atk.Alternate
			copied.Alternate = &alt
		}
		clone.Attacks[i] = &copied
	}
	return &clone
}

// Descriptor renders the size/type/alignment line, the block's first line.
func (t *Template) Descriptor() string {
	text := t.Size + " " + t.Type
	if t.SubType != "" {
		text += " (" + t.SubType + ")"
	}
	if t.Alignment != "" {
		text += ", " + t.Alignment
	}
	return text
}

// Render returns the template as display text for reference lookups.
func (t *Template) Render() string {
	var b strings.Builder
	b.WriteString(t.Name + "\n")
	b.WriteString(t.Descriptor() + "\n\n")

	fmt.Fprintf(&b, "AC: %d", t.ArmorClass)
	if t.ArmorDesc != "" {
		fmt.Fprintf(&b, " %s", t.ArmorDesc)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "HP: %d (%s)\n", t.HitPoints, t.HitDice)
	b.WriteString("Speed: " + t.renderSpeeds() + "\n")

	bits := make([]string, len(abilityOrder))
	for i, name := range abilityOrder {
		score := t.Abilities[name]
		bits[i] = fmt.Sprintf("%s %d (%+d)", name, score, AbilityBonus(score))
	}
	b.WriteString(strings.Join(bits, ", ") + "\n")

	if len(t.Saves) > 0 {
		b.WriteString("Saves: " + renderBonuses(t.Saves) + "\n")
	}
	if len(t.Skills) > 0 {
		b.WriteString("Skills: " + renderBonuses(t.Skills) + "\n")
	}
	if t.Senses != "" {
		b.WriteString("Senses: " + t.Senses + "\n")
	}
	if t.Languages != "" {
		b.WriteString("Languages: " + t.Languages + "\n")
	}
	fmt.Fprintf(&b, "Challenge: %s (%d XP)\n", t.Challenge, t.XP)

	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	writeEntries(&b, "Features", t.Features)
	writeEntries(&b, "Actions", t.Actions)
	if len(t.Attacks) > 0 {
		b.WriteString("\nAttacks:\n")
		for i, atk := range t.Attacks {
			fmt.Fprintf(&b, "   %c: %s\n", 'A'+i, atk)
		}
	}
	writeEntries(&b, "Reactions", t.Reactions)
	writeEntries(&b, "Legendary Actions", t.Legendary)
	return b.String()
}

func (t *Template) renderSpeeds() string {
	names := make([]string, 0, len(t.Speeds))
	for name := range t.Speeds {
		if name != "walk" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if _, ok := t.Speeds["walk"]; ok {
		names = append([]string{"walk"}, names...)
	}
	bits := make([]string, len(names))
	for i, name := range names {
		bits[i] = fmt.Sprintf("%s %d ft.", name, t.Speeds[name])
	}
	return strings.Join(bits, ", ")
}

func renderBonuses(bonuses map[string]int) string {
	names := slices.Sorted(maps.Keys(bonuses))
	bits := make([]string, len(names))
	for i, name := range names {
		bits[i] = fmt.Sprintf("%s %+d", name, bonuses[name])
	}
	return strings.Join(bits, ", ")
}

func writeEntries(b *strings.Builder, heading string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\n" + heading + ":\n")
	for _, entry := range entries {
		text := strings.ReplaceAll(entry.Text, "\n\n", "\n      ")
		fmt.Fprintf(b, "   %s: %s\n", entry.Name, text)
	}
}
