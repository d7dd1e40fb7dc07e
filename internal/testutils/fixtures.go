// Package testutils provides fixture helpers shared across package tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wrenfold/loresmith/internal/markdown"
)

// MustBuild parses markdown text into a document, failing the test on error.
func MustBuild(t *testing.T, key, text string) *markdown.Document {
	t.Helper()
	doc, err := markdown.Build(key, text)
	require.NoError(t, err)
	return doc
}

// WriteCampaign materializes a campaign folder under a test temp dir: one
// file per map entry, keyed by filename.
func WriteCampaign(t *testing.T, files map[string]string) string {
	t.Helper()
	folder := t.TempDir()
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(folder, name), []byte(text), 0o644))
	}
	return folder
}

// StatBlock renders a minimal well-formed stat-block section for tests that
// need a creature without caring about its numbers.
func StatBlock(name string) string {
	return fmt.Sprintf(`## %s

*Medium humanoid (any alignment), neutral*

**Armor Class** 12 (leather armor)

**Hit Points** 9 (2d8)

**Speed** 30 ft.

| STR | DEX | CON | INT | WIS | CHA |
|---|---|---|---|---|---|
| 10 (+0) | 12 (+1) | 10 (+0) | 10 (+0) | 10 (+0) | 10 (+0) |

**Challenge** 1/8 (25 XP)
`, name)
}
