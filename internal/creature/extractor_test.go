package creature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfold/loresmith/internal/creature"
	"github.com/wrenfold/loresmith/internal/dice"
	"github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
)

const orcDoc = `# Monsters

## Orc

*Medium humanoid (orc), chaotic evil*

**Armor Class** 13 (hide armor)

**Hit Points** 15 (2d8+6)

**Speed** 30 ft.

| STR | DEX | CON | INT | WIS | CHA |
|---|---|---|---|---|---|
| 16 (+3) | 12 (+1) | 16 (+3) | 7 (-2) | 11 (+0) | 10 (+0) |

**Skills** Intimidation +2

**Senses** darkvision 60 ft., passive Perception 10

**Languages** Common, Orc

**Challenge** 1/2 (100 XP)

***Aggressive.*** As a bonus action, the orc can move up to its speed toward a hostile creature that it can see.

### Actions

***Greataxe.*** *Melee Weapon Attack:* +5 to hit, reach 5 ft., one target. *Hit:* 9 (1d12+3) slashing damage.

***Javelin.*** *Melee or Ranged Weapon Attack:* +5 to hit, reach 5 ft. or range 30/120 ft., one target. *Hit:* 6 (1d6+3) piercing damage.
`

func extract(t *testing.T, key, text string) *creature.Result {
	t.Helper()
	doc, err := markdown.Build(key, text)
	require.NoError(t, err)
	return creature.Extract(doc)
}

func TestExtractOrc(t *testing.T) {
	result := extract(t, "monsters", orcDoc)

	require.Empty(t, result.Problems)
	require.Len(t, result.Creatures, 1)
	orc := result.Creatures[0]

	assert.Equal(t, "Orc", orc.Name)
	assert.Equal(t, "Medium", orc.Size)
	assert.Equal(t, "humanoid", orc.Type)
	assert.Equal(t, "orc", orc.SubType)
	assert.Equal(t, "chaotic evil", orc.Alignment)

	assert.Equal(t, 13, orc.ArmorClass)
	assert.Equal(t, "(hide armor)", orc.ArmorDesc)
	assert.Equal(t, 15, orc.HitPoints)
	assert.Equal(t, dice.MustParse("2d8+6"), orc.HitDice)
	assert.Equal(t, map[string]int{"walk": 30}, orc.Speeds)

	assert.Equal(t, map[string]int{
		"STR": 16, "DEX": 12, "CON": 16, "INT": 7, "WIS": 11, "CHA": 10,
	}, orc.Abilities)
	assert.Equal(t, map[string]int{"intimidation": 2}, orc.Skills)

	assert.Equal(t, "darkvision 60 ft., passive Perception 10", orc.Senses)
	assert.Equal(t, "Common, Orc", orc.Languages)
	assert.Equal(t, creature.Rating{Num: 1, Den: 2}, orc.Challenge)
	assert.Equal(t, "1/2", orc.Challenge.String())
	assert.InDelta(t, 0.5, orc.Challenge.Value(), 1e-9)
	assert.Equal(t, 100, orc.XP)

	require.Len(t, orc.Features, 1)
	assert.Equal(t, "Aggressive", orc.Features[0].Name)
	assert.Contains(t, orc.Features[0].Text, "bonus action")

	require.Len(t, orc.Attacks, 2)
	assert.Equal(t, "Greataxe", orc.Attacks[0].Name)
	assert.Equal(t, 5, orc.Attacks[0].Bonus)
	require.Len(t, orc.Attacks[0].Damage, 1)
	assert.Equal(t, dice.MustParse("1d12+3"), orc.Attacks[0].Damage[0].Dice)
	assert.Equal(t, "slashing", orc.Attacks[0].Damage[0].Type)
	assert.True(t, orc.Attacks[0].Melee)
	assert.False(t, orc.Attacks[0].Ranged)

	assert.Equal(t, "Javelin", orc.Attacks[1].Name)
	assert.True(t, orc.Attacks[1].Melee)
	assert.True(t, orc.Attacks[1].Ranged)
	assert.Empty(t, orc.Actions)
}

func TestExtractBonusFallbacks(t *testing.T) {
	result := extract(t, "monsters", orcDoc)
	require.Len(t, result.Creatures, 1)
	orc := result.Creatures[0]

	// Explicit skill bonus wins; everything else derives from the scores.
	assert.Equal(t, 2, orc.SkillBonus("intimidation"))
	assert.Equal(t, 1, orc.SkillBonus("stealth"))
	assert.Equal(t, 3, orc.SaveBonus("CON"))
	assert.Equal(t, -2, orc.SaveBonus("INT"))
	assert.Equal(t, 1, orc.InitiativeBonus())
}

func TestExtractSiblingIsolation(t *testing.T) {
	text := `# Monsters

## Orc

*Medium humanoid (orc), chaotic evil*

**Armor Class** 13 (hide armor)

## Broken Golem

*Large construct, unaligned*

| STR | DEX | CON | INT | WIS | CHA |
|---|---|---|---|---|---|
| 22 (+6) | 9 (-1) | 20 (+5) | 3 (-4) | 11 (+0) |

## Wolf

*Medium beast, unaligned*

**Armor Class** 13 (natural armor)
`
	result := extract(t, "monsters", text)

	require.Len(t, result.Problems, 1)
	assert.True(t, errors.IsMalformedStatBlock(result.Problems[0].Err))
	assert.Contains(t, result.Problems[0].Section, "Broken Golem")

	require.Len(t, result.Creatures, 2)
	assert.Equal(t, "Orc", result.Creatures[0].Name)
	assert.Equal(t, "Wolf", result.Creatures[1].Name)
}

func TestExtractAbilityTableMustHaveSixScores(t *testing.T) {
	text := `# Monsters

## Lopsided Ogre

*Large giant, chaotic evil*

| STR | DEX | CON | INT | WIS | CHA |
|---|---|---|---|---|---|
| 19 (+4) | 8 (-1) | 16 (+3) | 5 (-3) | 7 (-2) | 7 (-2) | 12 (+1) |
`
	result := extract(t, "monsters", text)

	assert.Empty(t, result.Creatures)
	require.Len(t, result.Problems, 1)
	assert.True(t, errors.IsMalformedStatBlock(result.Problems[0].Err))
}

func TestExtractDefaultsWhenLinesMissing(t *testing.T) {
	text := `# Monsters

## Shade

*Medium undead, neutral evil*
`
	result := extract(t, "monsters", text)

	require.Empty(t, result.Problems)
	require.Len(t, result.Creatures, 1)
	shade := result.Creatures[0]

	assert.Zero(t, shade.ArmorClass)
	assert.Zero(t, shade.HitPoints)
	assert.Empty(t, shade.Speeds)
	assert.Equal(t, map[string]int{
		"STR": 10, "DEX": 10, "CON": 10, "INT": 10, "WIS": 10, "CHA": 10,
	}, shade.Abilities)
}

func TestExtractDuplicateFeatureWarns(t *testing.T) {
	text := `# Monsters

## Hound

*Medium beast, unaligned*

***Keen Smell.*** The hound has advantage on Wisdom (Perception) checks that rely on smell.

***Keen Smell.*** The hound smells everything.
`
	result := extract(t, "monsters", text)

	require.Len(t, result.Creatures, 1)
	hound := result.Creatures[0]
	require.Len(t, hound.Features, 1)
	assert.Equal(t, "Keen Smell", hound.Features[0].Name)
	assert.Equal(t, "The hound smells everything.", hound.Features[0].Text)

	require.Len(t, result.Problems, 1)
	assert.True(t, errors.IsDuplicateFeatureOverwrite(result.Problems[0].Err))
}

func TestExtractContinuationParagraphs(t *testing.T) {
	text := `# Monsters

## Mimic

*Medium monstrosity, neutral*

***Shapechanger.*** The mimic can use its action to polymorph into an object.

Its statistics are the same in each form.

### Actions

***Pseudopod.*** *Melee Weapon Attack:* +5 to hit, reach 5 ft., one target. *Hit:* 7 (1d8+3) bludgeoning damage.

If the mimic is in object form, the target is subjected to its Adhesive trait.
`
	result := extract(t, "monsters", text)

	require.Empty(t, result.Problems)
	require.Len(t, result.Creatures, 1)
	mimic := result.Creatures[0]

	require.Len(t, mimic.Features, 1)
	assert.Equal(t,
		"The mimic can use its action to polymorph into an object.\n\nIts statistics are the same in each form.",
		mimic.Features[0].Text)

	require.Len(t, mimic.Attacks, 1)
	assert.Equal(t, "If the mimic is in object form, the target is subjected to its Adhesive trait.",
		mimic.Attacks[0].Effect)
}

func TestExtractReactionsAndLegendary(t *testing.T) {
	text := `# Monsters

## Young Dragon

*Large dragon, chaotic evil*

**Armor Class** 18 (natural armor)

### Actions

***Bite.*** *Melee Weapon Attack:* +7 to hit, reach 10 ft., one target. *Hit:* 15 (2d10+4) piercing damage.

***Frightful Presence.*** Each creature of the dragon's choice within 120 feet must succeed on a DC 16 Wisdom saving throw or become frightened.

### Reactions

***Parry.*** The dragon adds 2 to its AC against one melee attack that would hit it.

### Legendary Actions

The dragon can take 3 legendary actions, choosing from the options below.

**Detect.** The dragon makes a Wisdom (Perception) check.

**Wing Sweep.** The dragon beats its wings.

Each creature within 10 feet must succeed on a DC 15 Dexterity saving throw.
`
	result := extract(t, "monsters", text)

	require.Empty(t, result.Problems)
	require.Len(t, result.Creatures, 1)
	dragon := result.Creatures[0]

	require.Len(t, dragon.Attacks, 1)
	require.Len(t, dragon.Actions, 1)
	assert.Equal(t, "Frightful Presence", dragon.Actions[0].Name)

	require.Len(t, dragon.Reactions, 1)
	assert.Equal(t, "Parry", dragon.Reactions[0].Name)

	require.Len(t, dragon.Legendary, 3)
	assert.Equal(t, "Legendary Actions", dragon.Legendary[0].Name)
	assert.Contains(t, dragon.Legendary[0].Text, "3 legendary actions")
	assert.Equal(t, "Detect", dragon.Legendary[1].Name)
	assert.Equal(t, "Wing Sweep", dragon.Legendary[2].Name)
	assert.Contains(t, dragon.Legendary[2].Text, "DC 15 Dexterity saving throw")
}

func TestExtractDescription(t *testing.T) {
	text := `# Monsters

## Orc

*Medium humanoid (orc), chaotic evil*

**Armor Class** 13 (hide armor)

### Actions

***Greataxe.*** *Melee Weapon Attack:* +5 to hit, reach 5 ft., one target. *Hit:* 9 (1d12+3) slashing damage.

**Orcs** are savage raiders and pillagers with stooped postures.

They gather in tribes that satisfy their bloodlust.
`
	result := extract(t, "monsters", text)

	require.Empty(t, result.Problems)
	require.Len(t, result.Creatures, 1)
	orc := result.Creatures[0]

	assert.Contains(t, orc.Description, "savage raiders")
	assert.Contains(t, orc.Description, "bloodlust")
	// The flavor paragraphs never leak into the attack's effect text.
	require.Len(t, orc.Attacks, 1)
	assert.Empty(t, orc.Attacks[0].Effect)
}

func TestExtractSkillQualifier(t *testing.T) {
	text := `# Monsters

## Deep Gnome

*Small humanoid (gnome), neutral good*

**Skills** Investigation +3, Stealth +4 (advantage while underground)
`
	result := extract(t, "monsters", text)

	require.Len(t, result.Creatures, 1)
	gnome := result.Creatures[0]

	assert.Equal(t, map[string]int{"investigation": 3, "stealth": 4}, gnome.Skills)
	require.Len(t, gnome.Features, 1)
	assert.Equal(t, "Stealth", gnome.Features[0].Name)
	assert.Equal(t, "advantage while underground", gnome.Features[0].Text)
}

func TestExtractSavesAndSpeeds(t *testing.T) {
	text := `# Monsters

## Wyvern

*Large dragon, unaligned*

**Speed** 20 ft., fly 80 ft., swim 20 ft.

**Saving Throws** Dex +5, Wis +4
`
	result := extract(t, "monsters", text)

	require.Empty(t, result.Problems)
	require.Len(t, result.Creatures, 1)
	wyvern := result.Creatures[0]

	assert.Equal(t, map[string]int{"walk": 20, "fly": 80, "swim": 20}, wyvern.Speeds)
	assert.Equal(t, map[string]int{"DEX": 5, "WIS": 4}, wyvern.Saves)
	assert.Equal(t, 5, wyvern.SaveBonus("DEX"))
}

func TestExtractIgnoresDeepAndPlainSections(t *testing.T) {
	text := `# Gamemastering

## Travel Pace

A party can move at a normal pace for 8 hours.

###### Fast Orc

*Medium humanoid (orc), chaotic evil*
`
	result := extract(t, "gamemastering", text)

	assert.Empty(t, result.Creatures)
	assert.Empty(t, result.Problems)
}

func TestAbilityBonus(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{1, -5},
		{3, -4},
		{7, -2},
		{10, 0},
		{11, 0},
		{16, 3},
		{20, 5},
		{30, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, creature.AbilityBonus(tt.score), "score %d", tt.score)
	}
}

func TestTemplateClone(t *testing.T) {
	result := extract(t, "monsters", orcDoc)
	require.Len(t, result.Creatures, 1)
	orc := result.Creatures[0]

	clone := orc.Clone()
	clone.Abilities["STR"] = 1
	clone.Speeds["walk"] = 5
	clone.Features[0].Text = "changed"
	clone.Attacks[0].Bonus = -1
	clone.Attacks[0].Damage[0].Type = "radiant"

	assert.Equal(t, 16, orc.Abilities["STR"])
	assert.Equal(t, 30, orc.Speeds["walk"])
	assert.Contains(t, orc.Features[0].Text, "bonus action")
	assert.Equal(t, 5, orc.Attacks[0].Bonus)
	assert.Equal(t, "slashing", orc.Attacks[0].Damage[0].Type)
}

func TestTemplateRender(t *testing.T) {
	result := extract(t, "monsters", orcDoc)
	require.Len(t, result.Creatures, 1)
	text := result.Creatures[0].Render()

	assert.Contains(t, text, "Orc\nMedium humanoid (orc), chaotic evil")
	assert.Contains(t, text, "AC: 13 (hide armor)")
	assert.Contains(t, text, "HP: 15 (2d8+6)")
	assert.Contains(t, text, "Speed: walk 30 ft.")
	assert.Contains(t, text, "STR 16 (+3)")
	assert.Contains(t, text, "Challenge: 1/2 (100 XP)")
	assert.Contains(t, text, "A: Greataxe, +5 to hit, 9 (1d12+3 slashing)")
	assert.Contains(t, text, "B: Javelin, +5 to hit, 6 (1d6+3 piercing)")
}
