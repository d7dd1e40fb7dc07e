package creature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wrenfold/loresmith/internal/dice"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// attackMarkerRegex finds the bonus marker. Source text writes it as
// "Attack:*" with the emphasis closing after the colon, but transcriptions
// that close early ("Attack*:") appear in the wild, so any run of the two
// punctuation characters is accepted.
var attackMarkerRegex = regexp.MustCompile(`Attack[:*]+`)

// hitMarker opens the damage sentence of an attack entry.
const hitMarker = "*Hit:* "

// DamageComponent is one roll of an attack's damage along with its type.
type DamageComponent struct {
	Dice dice.Expression
	Type string
}

// Attack is one parsed attack entry from a stat block's Actions section.
// Damage holds the rolls dealt together; Alternate holds the roll after an
// "or" in the hit sentence, the versatile-weapon case where the wielder
// picks one.
type Attack struct {
	Name   string
	Text   string
	Bonus  int
	Melee  bool
	Ranged bool
	Spell  bool

	Damage    []DamageComponent
	Alternate *DamageComponent
	Effect    string
}

// ParseAttack reads one attack entry. The bonus is the first token after the
// attack marker. The hit sentence runs from the hit marker to the next
// period; inside it, every parenthesized group that parses as dice notation
// becomes a damage component typed by the word that follows it. Groups with
// internal whitespace never match, which is how the source grammar behaves.
// When the hit sentence carries no damage at all, the whole sentence and
// everything after it lands in Effect instead.
func ParseAttack(name, text string) (*Attack, error) {
	atk := &Attack{
		Name:   name,
		Text:   text,
		Melee:  strings.Contains(text, "Melee"),
		Ranged: strings.Contains(text, "Ranged"),
		Spell:  strings.Contains(text, "Spell"),
	}

	marker := attackMarkerRegex.FindStringIndex(text)
	if marker == nil {
		return nil, lorerr.MalformedStatBlockf("attack %q has no attack marker", name)
	}
	tokens := strings.Fields(text[marker[1]:])
	if len(tokens) == 0 {
		return nil, lorerr.MalformedStatBlockf("attack %q has no bonus after the marker", name)
	}
	bonus, err := strconv.Atoi(strings.TrimPrefix(tokens[0], "+"))
	if err != nil {
		return nil, lorerr.MalformedStatBlockf("attack %q has bonus %q, want an integer", name, tokens[0])
	}
	atk.Bonus = bonus

	hit := strings.Index(text, hitMarker)
	if hit < 0 {
		return nil, lorerr.MalformedStatBlockf("attack %q has no hit marker", name)
	}
	start := hit + len(hitMarker)
	period := strings.IndexByte(text[start:], '.')
	if period < 0 {
		return nil, lorerr.MalformedStatBlockf("attack %q has an unterminated hit sentence", name)
	}

	var pending dice.Expression
	havePending := false
	orSeen := false
	for _, word := range strings.Fields(text[start : start+period]) {
		if len(word) > 2 && word[0] == '(' && word[len(word)-1] == ')' {
			if expr, parseErr := dice.Parse(word[1 : len(word)-1]); parseErr == nil {
				pending = expr
				havePending = true
				continue
			}
		}
		switch {
		case havePending:
			component := DamageComponent{Dice: pending, Type: strings.Trim(word, ",.")}
			if orSeen && atk.Alternate == nil {
				atk.Alternate = &component
			} else {
				atk.Damage = append(atk.Damage, component)
			}
			havePending = false
		case strings.EqualFold(word, "or"):
			orSeen = true
		}
	}

	if len(atk.Damage) == 0 && atk.Alternate == nil {
		atk.Effect = strings.TrimSpace(text[start:])
	} else {
		atk.Effect = strings.TrimSpace(text[start+period+1:])
	}
	return atk, nil
}

// String renders the attack one line for combat reference. A versatile
// attack shows the lower average damage first.
func (a *Attack) String() string {
	text := fmt.Sprintf("%s, %+d to hit", a.Name, a.Bonus)

	bits := make([]string, len(a.Damage))
	total := 0
	for i, component := range a.Damage {
		bits[i] = component.Dice.String() + " " + component.Type
		total += component.Dice.Average()
	}
	primary := fmt.Sprintf("%d (%s)", total, strings.Join(bits, ", "))

	switch {
	case a.Alternate != nil:
		alternate := fmt.Sprintf("%d (%s %s)", a.Alternate.Dice.Average(), a.Alternate.Dice, a.Alternate.Type)
		if a.Alternate.Dice.Average() < total {
			text += ", " + alternate + " or " + primary
		} else {
			text += ", " + primary + " or " + alternate
		}
	case len(a.Damage) > 0:
		text += ", " + primary
	}

	if a.Effect != "" {
		text += " and more"
	}
	return text
}

// appendEffect adds a follow-on paragraph from the stat block to the
// attack's effect text.
func (a *Attack) appendEffect(line string) {
	a.Effect = joinParagraph(a.Effect, line)
}
