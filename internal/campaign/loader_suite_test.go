package campaign_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wrenfold/loresmith/internal/campaign"
	"github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/testutils"
	"github.com/wrenfold/loresmith/internal/uuid"
)

const calendarDocText = `# Vale Reckoning

**Days in Year** 90

## Months

| Month | Days |
|-------|------|
| First | 29 |
| Second | 30 |
| Third | 31 |

## Formats

**default** {month-name} {day-of-month}
`

const namesDocText = `# Names

## Valefolk

**First** Ash, Bren

### Any

{first}
`

const treasuresDocText = `# Treasures

**Table- Trinkets**

| d6 | Trinket |
|----|---------|
| 1-3 | A carved acorn |
| 4-6 | A glass bead |
`

// guardBlock is a stat block whose armor class marks which document it came
// from in overwrite tests.
func guardBlock(ac int) string {
	return fmt.Sprintf(`## Guard

*Medium humanoid (any race), lawful neutral*

**Armor Class** %d (chain shirt)

**Hit Points** 11 (2d8+2)

**Speed** 30 ft.

| STR | DEX | CON | INT | WIS | CHA |
|---|---|---|---|---|---|
| 13 (+1) | 12 (+1) | 12 (+1) | 10 (+0) | 11 (+0) | 10 (+0) |

**Challenge** 1/8 (25 XP)
`, ac)
}

// LoaderTestSuite exercises folder loading end to end against temp dirs.
type LoaderTestSuite struct {
	suite.Suite
	loader *campaign.Loader
	ctx    context.Context
}

// SetupTest runs before each test
func (s *LoaderTestSuite) SetupTest() {
	s.loader = campaign.NewLoader(&campaign.LoaderConfig{
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		IDs: uuid.NewSequentialGenerator("load"),
	})
	s.ctx = context.Background()
}

// Test suite runner
func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (s *LoaderTestSuite) TestLoadFullCampaign() {
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md":          "# Monsters\n\n" + testutils.StatBlock("Orc") + "\n" + testutils.StatBlock("Goblin"),
		"02-player characters.md": "# Player Characters\n\n" + testutils.StatBlock("Mira Brook"),
		"03.calendar.md":          calendarDocText,
		"04_names.md":             namesDocText,
		"05-treasures.md":         treasuresDocText,
	})

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)

	s.Equal("load-1", report.LoadID)
	s.Equal(5, report.Documents)
	s.Equal(2, report.Creatures)
	s.Equal(1, report.PCs)
	s.Equal(1, report.Tables)
	s.Empty(report.Problems)

	s.Equal([]string{"goblin", "orc"}, lib.Catalog.Names())
	s.Equal([]string{"mira-brook"}, lib.PCs.Names())

	s.Require().NotNil(lib.Calendar)
	s.Equal("Vale Reckoning", lib.Calendar.Name)

	s.Require().NotNil(lib.Names)
	s.Equal([]string{"valefolk"}, lib.Names.CultureNames())

	tbl, err := lib.Table("trinkets")
	s.Require().NoError(err)
	s.Equal("d6", tbl.Roll)
}

func (s *LoaderTestSuite) TestLoadOverwritesByFileOrder() {
	// Both documents define Guard; the later filename folds last and wins.
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-watch.md":   "# Watch\n\n" + guardBlock(16),
		"02-militia.md": "# Militia\n\n" + guardBlock(12),
	})

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)
	s.Equal(1, report.Creatures)

	guard, err := lib.Catalog.Get("guard")
	s.Require().NoError(err)
	s.Equal(12, guard.ArmorClass)
}

func (s *LoaderTestSuite) TestLoadLaterFolderOverrides() {
	reference := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + guardBlock(16),
	})
	home := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + guardBlock(12),
	})

	lib, report, err := s.loader.Load(s.ctx, reference, home)
	s.Require().NoError(err)
	s.Equal(2, report.Documents)
	s.Equal(1, report.Creatures)

	guard, err := lib.Catalog.Get("guard")
	s.Require().NoError(err)
	s.Equal(12, guard.ArmorClass)
}

func (s *LoaderTestSuite) TestLoadSkipsBadCalendar() {
	// A fractional year without an overage month cannot compile; the
	// document is dropped, the rest of the folder loads.
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + testutils.StatBlock("Orc"),
		"02-calendar.md": "# Broken Reckoning\n\n**Days in Year** 365.25\n\n## Months\n\n|----|\n| Only | 365 |\n",
	})

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)

	s.Nil(lib.Calendar)
	s.Equal(1, report.Documents)
	s.Equal([]string{"orc"}, lib.Catalog.Names())

	s.Require().Len(report.Problems, 1)
	s.Equal("calendar", report.Problems[0].Document)
	s.True(errors.IsInvalidCalendarSpec(report.Problems[0].Err))
}

func (s *LoaderTestSuite) TestLoadSkipsHeaderlessDocument() {
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + testutils.StatBlock("Orc"),
		"02-broken.md":   "just prose, no header at all\n",
	})

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)

	s.Equal(1, report.Documents)
	s.Equal([]string{"orc"}, lib.Catalog.Names())

	s.Require().Len(report.Problems, 1)
	s.Equal("broken", report.Problems[0].Document)
	s.True(errors.IsEmptyDocument(report.Problems[0].Err))
}

func (s *LoaderTestSuite) TestLoadMalformedBlockIsolated() {
	// Five ability scores instead of six poisons only that block.
	badBlock := `## Ogre

*Large giant, chaotic evil*

| STR | DEX | CON | INT | WIS | CHA |
|---|---|---|---|---|---|
| 19 (+4) | 8 (-1) | 16 (+3) | 5 (-3) | 7 (-2) |
`
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + testutils.StatBlock("Orc") + "\n" + badBlock,
	})

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)

	s.Equal(1, report.Documents)
	s.Equal([]string{"orc"}, lib.Catalog.Names())

	s.Require().Len(report.Problems, 1)
	s.Equal("monsters", report.Problems[0].Document)
	s.NotEmpty(report.Problems[0].Section)
	s.True(errors.IsMalformedStatBlock(report.Problems[0].Err))
}

func (s *LoaderTestSuite) TestLoadIgnoresUnnumberedFiles() {
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + testutils.StatBlock("Orc"),
		"notes.md":       "# Notes\n\nScratch space.\n",
		"1x-almost.md":   "# Almost\n\nOne digit is not enough.\n",
		"02-scroll.txt":  "# Not Markdown\n",
	})

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)
	s.Equal(1, report.Documents)
	s.Len(lib.Documents, 1)
	s.Empty(report.Problems)
}

func (s *LoaderTestSuite) TestLoadEmptyFolder() {
	folder := s.T().TempDir()

	lib, report, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)
	s.Equal("load-1", report.LoadID)
	s.Equal(0, report.Documents)
	s.Empty(lib.Documents)

	_, report2, err := s.loader.Load(s.ctx, folder)
	s.Require().NoError(err)
	s.Equal("load-2", report2.LoadID)
}

func (s *LoaderTestSuite) TestLoadMissingFolder() {
	_, _, err := s.loader.Load(s.ctx, filepath.Join(s.T().TempDir(), "nowhere"))
	s.Require().Error(err)
}

func (s *LoaderTestSuite) TestLoadHonorsCancellation() {
	folder := testutils.WriteCampaign(s.T(), map[string]string{
		"01-monsters.md": "# Monsters\n\n" + testutils.StatBlock("Orc"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.loader.Load(ctx, folder)
	s.Require().Error(err)
	s.ErrorIs(err, context.Canceled)
}
