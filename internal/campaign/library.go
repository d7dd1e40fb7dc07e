package campaign

import (
	"maps"
	"slices"
	"strings"

	"github.com/wrenfold/loresmith/internal/calendar"
	"github.com/wrenfold/loresmith/internal/creature"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
	"github.com/wrenfold/loresmith/internal/namegen"
)

// Library is every typed model one load produced. Catalog holds creatures
// from ordinary documents, PCs holds creatures from documents rooted at a
// "Player Characters" header. Calendar and Names stay nil when the folders
// define none.
type Library struct {
	Catalog *Registry
	PCs     *Registry

	Calendar *calendar.Calendar
	Names    *namegen.Grammar
	Tables   map[string]*markdown.Table

	// Documents in fold order, for corpus search.
	Documents []*markdown.Document
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		Catalog: NewRegistry(),
		PCs:     NewRegistry(),
		Tables:  make(map[string]*markdown.Table),
	}
}

// Creature finds a template by name in the catalog, falling back to the
// player characters.
func (l *Library) Creature(name string) (*creature.Template, error) {
	if tmpl, err := l.Catalog.Get(name); err == nil {
		return tmpl, nil
	}
	return l.PCs.Get(name)
}

// Table finds a rollable table by case-insensitive name.
func (l *Library) Table(name string) (*markdown.Table, error) {
	tbl, ok := l.Tables[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, lorerr.NotFoundf("no table %q", name)
	}
	return tbl, nil
}

// TableNames returns every loaded table name in sorted order.
func (l *Library) TableNames() []string {
	return slices.Sorted(maps.Keys(l.Tables))
}

// Search runs one query across every loaded document in fold order.
func (l *Library) Search(query string) ([]*markdown.Section, error) {
	return markdown.Search(query, l.Documents...)
}
