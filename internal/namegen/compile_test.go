package namegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
	"github.com/wrenfold/loresmith/internal/namegen"
)

func compile(t *testing.T, text string) *namegen.Grammar {
	t.Helper()
	doc, err := markdown.Build("names", text)
	require.NoError(t, err)
	grammar, err := namegen.Compile(doc)
	require.NoError(t, err)
	return grammar
}

const namesDoc = `# Names

Names for the peoples of the vale.

## Valefolk

**First** Ash, Bren, Corin, Darro
**Last** Brook, Fell, Marsh

### Female

[30] {first} of {last}
[70] {first} {last}

### Male

{first} {last}

### Any

[50] {first}
[50] {last}

## Hill Clans

**Clan** Stonefist, Ironjaw
**Given** Bok, Grum, Tarn

### Any

{given} {clan}
`

func TestCompileGrammar(t *testing.T) {
	grammar := compile(t, namesDoc)

	assert.Equal(t, []string{"hill clans", "valefolk"}, grammar.CultureNames())

	vale := grammar.Cultures["valefolk"]
	require.NotNil(t, vale)
	assert.Equal(t, "Valefolk", vale.Name)
	assert.Equal(t, []string{"Ash", "Bren", "Corin", "Darro"}, vale.Parts["first"])
	assert.Equal(t, []string{"Brook", "Fell", "Marsh"}, vale.Parts["last"])

	genders, err := grammar.GenderNames("Valefolk")
	require.NoError(t, err)
	assert.Equal(t, []string{"any", "female", "male"}, genders)

	require.Len(t, vale.Genders["female"], 2)
	assert.Equal(t, namegen.Format{Weight: 30, Template: "{first} of {last}"}, vale.Genders["female"][0])
	assert.Equal(t, namegen.Format{Weight: 70, Template: "{first} {last}"}, vale.Genders["female"][1])

	require.Len(t, vale.Genders["male"], 1)
	assert.Equal(t, namegen.Format{Weight: 100, Template: "{first} {last}"}, vale.Genders["male"][0],
		"bare format lines weigh 100")

	clans := grammar.Cultures["hill clans"]
	require.NotNil(t, clans)
	assert.Equal(t, []string{"Stonefist", "Ironjaw"}, clans.Parts["clan"])
}

func TestCompilePartKeysLowerCased(t *testing.T) {
	grammar := compile(t, `# Names

## Elves

**Male First** Adran, Aelar

### Male

{male first}
`)

	elves := grammar.Cultures["elves"]
	require.NotNil(t, elves)
	assert.Equal(t, []string{"Adran", "Aelar"}, elves.Parts["male first"])
}

func TestCompileColonAfterPartName(t *testing.T) {
	// Some documents write "**First**: a, b" with a colon after the marker.
	grammar := compile(t, `# Names

## Elves

**First**: Adran, Aelar

### Any

{first}
`)

	assert.Equal(t, []string{"Adran", "Aelar"}, grammar.Cultures["elves"].Parts["first"])
}

func TestCompileIgnoresStrayGenderSections(t *testing.T) {
	// A level-3 header outside any culture has no home and compiles to
	// nothing rather than failing the document.
	grammar := compile(t, `# Names

### Orphan

{first}

## Elves

**First** Adran

### Any

{first}
`)

	assert.Equal(t, []string{"elves"}, grammar.CultureNames())
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "zero weight",
			text: "# Names\n\n## Elves\n\n**First** Adran\n\n### Any\n\n[0] {first}\n",
		},
		{
			name: "negative weight",
			text: "# Names\n\n## Elves\n\n**First** Adran\n\n### Any\n\n[-5] {first}\n",
		},
		{
			name: "non-integer weight",
			text: "# Names\n\n## Elves\n\n**First** Adran\n\n### Any\n\n[lots] {first}\n",
		},
		{
			name: "unterminated weight",
			text: "# Names\n\n## Elves\n\n**First** Adran\n\n### Any\n\n[30 {first}\n",
		},
		{
			name: "gender with no formats",
			text: "# Names\n\n## Elves\n\n**First** Adran\n\n### Any\n",
		},
		{
			name: "part line with extra emphasis",
			text: "# Names\n\n## Elves\n\n**First** Adran, **special**\n\n### Any\n\n{first}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := markdown.Build("names", tt.text)
			require.NoError(t, err)

			_, err = namegen.Compile(doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeInvalidNameSpec))
		})
	}
}

func TestCompileEmptyNamesDocument(t *testing.T) {
	// A names document with no cultures compiles to an empty grammar;
	// generation against it reports the missing culture.
	grammar := compile(t, "# Names\n\nNothing defined yet.\n")

	assert.Empty(t, grammar.CultureNames())

	_, err := grammar.GenderNames("elves")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
