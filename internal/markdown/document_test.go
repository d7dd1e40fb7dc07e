package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
)

const chapterText = `# Gamemastering

An introduction to running the game.

## Pacing

The pace of the game matters more than the rules.

### Downtime

Days pass between adventures.

## Combat Options

### Grappling

When you want to grab a creature, make a contested check.

### Shoving a Creature

Knock a creature prone or push it away.

## Afterword

Closing notes.
`

func buildChapter(t *testing.T) *markdown.Document {
	t.Helper()
	doc, err := markdown.Build("gamemastering", chapterText)
	require.NoError(t, err)
	return doc
}

func TestBuild_TreeShape(t *testing.T) {
	doc := buildChapter(t)

	root := doc.Root
	assert.Equal(t, 1, root.Level)
	assert.Equal(t, "Gamemastering", root.Title)
	assert.Equal(t, "Gamemastering", doc.Title())
	assert.Equal(t, []string{"An introduction to running the game."}, root.Body)
	require.Len(t, root.Children, 3)

	pacing := root.Children[0]
	assert.Equal(t, 2, pacing.Level)
	assert.Equal(t, "Pacing", pacing.Title)
	assert.Equal(t, []string{"The pace of the game matters more than the rules."}, pacing.Body)
	require.Len(t, pacing.Children, 1)
	assert.Equal(t, "Downtime", pacing.Children[0].Title)

	combat := root.Children[1]
	assert.Equal(t, "Combat Options", combat.Title)
	assert.Empty(t, combat.Body)
	require.Len(t, combat.Children, 2)
	assert.Equal(t, "Grappling", combat.Children[0].Title)
	assert.Equal(t, "Shoving a Creature", combat.Children[1].Title)

	// Afterword is level 2, so it climbs back up past the level-3 sections.
	assert.Equal(t, "Afterword", root.Children[2].Title)
	assert.Equal(t, root, root.Children[2].Parent())
	assert.Nil(t, root.Parent())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "prose only", text: "just some text\nwith no headers\n"},
		{name: "opens below level one", text: "## Orc\n\nNot a chapter.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := markdown.Build("broken", tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsEmptyDocument(err))
			assert.Equal(t, "broken", errors.GetMeta(err)["document"])
		})
	}
}

func TestBuild_SecondLevelOneHeaderJoinsRoot(t *testing.T) {
	doc, err := markdown.Build("double", "# First\n\nbody\n\n# Second\n\nmore\n")
	require.NoError(t, err)

	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "Second", doc.Root.Children[0].Title)
	assert.Equal(t, 1, doc.Root.Children[0].Level)
}

func TestBuild_BodyHandling(t *testing.T) {
	text := "# Top\n\n\n  \nfirst line\n\nsecond block   \n\n\n## Sub\n####### seven hashes is body\n\n"
	doc, err := markdown.Build("body", text)
	require.NoError(t, err)

	assert.Equal(t, []string{"first line", "", "second block"}, doc.Root.Body)

	sub := doc.Root.Children[0]
	assert.Equal(t, []string{"####### seven hashes is body"}, sub.Body)
}

func TestBuild_HeaderWithoutSpace(t *testing.T) {
	doc, err := markdown.Build("tight", "# Top\n\n##Orc\n\nbody\n")
	require.NoError(t, err)

	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "Orc", doc.Root.Children[0].Title)
}

func TestSectionPath(t *testing.T) {
	doc := buildChapter(t)

	grappling := doc.Root.Children[1].Children[0]
	assert.Equal(t, "Gamemastering > Combat Options > Grappling", grappling.Path())
}

func TestSectionChild(t *testing.T) {
	doc := buildChapter(t)

	assert.NotNil(t, doc.Root.Child("combat options"))
	assert.NotNil(t, doc.Root.Child("PACING"))
	assert.Nil(t, doc.Root.Child("Treasure"))
}

func TestSectionText(t *testing.T) {
	doc, err := markdown.Build("tiny", "# Top\n\nintro\n\n## Sub\n\nline one\nline two\n")
	require.NoError(t, err)

	want := "# Top\n\nintro\n\n## Sub\n\nline one\nline two"
	assert.Equal(t, want, doc.Root.Text())
}

func TestSectionWalkOrder(t *testing.T) {
	doc := buildChapter(t)

	var titles []string
	doc.Root.Walk(func(s *markdown.Section) {
		titles = append(titles, s.Title)
	})

	assert.Equal(t, []string{
		"Gamemastering",
		"Pacing",
		"Downtime",
		"Combat Options",
		"Grappling",
		"Shoving a Creature",
		"Afterword",
	}, titles)
}
