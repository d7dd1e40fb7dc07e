package campaign

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wrenfold/loresmith/internal/calendar"
	"github.com/wrenfold/loresmith/internal/creature"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/markdown"
	"github.com/wrenfold/loresmith/internal/namegen"
	"github.com/wrenfold/loresmith/internal/uuid"
)

// Document keys with whole-document compile steps beyond creature and table
// scanning.
const (
	calendarKey = "calendar"
	namesKey    = "names"
)

// Problem is one non-fatal diagnostic recorded during a load. The offending
// document (and section, when known) identify where the input went wrong.
type Problem struct {
	Document string
	Section  string
	Err      error
}

// Report summarizes one load.
type Report struct {
	LoadID    string
	Folders   []string
	Documents int
	Creatures int
	PCs       int
	Tables    int
	Problems  []Problem
}

// Loader reads campaign folders into Libraries.
type Loader struct {
	log *slog.Logger
	ids uuid.Generator
}

// LoaderConfig holds the loader's collaborators.
type LoaderConfig struct {
	Log *slog.Logger   // Optional: defaults to slog.Default()
	IDs uuid.Generator // Optional: defaults to random UUIDs
}

// NewLoader creates a loader, filling in defaults for absent collaborators.
func NewLoader(cfg *LoaderConfig) *Loader {
	loader := &Loader{}
	if cfg != nil {
		loader.log = cfg.Log
		loader.ids = cfg.IDs
	}
	if loader.log == nil {
		loader.log = slog.Default()
	}
	if loader.ids == nil {
		loader.ids = uuid.NewGoogleUUIDGenerator()
	}
	return loader
}

// campaignFile is one numbered markdown file waiting to be parsed.
type campaignFile struct {
	path string
	key  string
}

// docKey derives a document's identity from its filename: the numeric prefix
// and its separator go, the extension goes, the rest lower-cases. So
// "07-The Vale Calendar.md" and "07.calendar.md" both key on what follows
// the number.
func docKey(filename string) string {
	key := strings.TrimSuffix(filename, ".md")
	key = strings.TrimLeft(key, "0123456789")
	key = strings.TrimLeft(key, ".-_ ")
	return strings.ToLower(key)
}

// isCampaignFile reports whether a directory entry is a numbered markdown
// file: two leading digits and a .md suffix.
func isCampaignFile(name string) bool {
	if len(name) < 2 || !strings.HasSuffix(name, ".md") {
		return false
	}
	return name[0] >= '0' && name[0] <= '9' && name[1] >= '0' && name[1] <= '9'
}

// listFolder returns the folder's campaign files in ascending filename
// order, which is the fold order.
func listFolder(folder string) ([]campaignFile, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, lorerr.Wrapf(err, "listing campaign folder %q", folder)
	}

	var files []campaignFile
	for _, entry := range entries {
		if entry.IsDir() || !isCampaignFile(entry.Name()) {
			continue
		}
		files = append(files, campaignFile{
			path: filepath.Join(folder, entry.Name()),
			key:  docKey(entry.Name()),
		})
	}
	return files, nil
}

// Load reads every numbered markdown file under the folders, parses them
// concurrently, and folds the results into a Library one document at a time.
// Folders fold in argument order, files in filename order, so a campaign
// folder listed after a reference folder overwrites it name by name. A
// document that fails to parse or compile is skipped and reported; only I/O
// failures abort the load.
func (l *Loader) Load(ctx context.Context, folders ...string) (*Library, *Report, error) {
	report := &Report{
		LoadID:  l.ids.New(),
		Folders: folders,
	}

	var files []campaignFile
	for _, folder := range folders {
		found, err := listFolder(folder)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, found...)
	}

	docs := make([]*markdown.Document, len(files))
	skips := make([]*Problem, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(file.path)
			if err != nil {
				return lorerr.Wrapf(err, "reading %s", file.path)
			}
			doc, err := markdown.Build(file.key, string(raw))
			if err != nil {
				skips[i] = &Problem{Document: file.key, Err: err}
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Sequential fold: the single writer for every overwrite decision.
	lib := NewLibrary()
	for i, doc := range docs {
		if skip := skips[i]; skip != nil {
			report.Problems = append(report.Problems, *skip)
			l.log.Warn("skipped document",
				slog.String("document", skip.Document),
				slog.String("error", skip.Err.Error()))
			continue
		}
		l.fold(lib, doc, report)
	}

	report.Documents = len(lib.Documents)
	report.Creatures = lib.Catalog.Len()
	report.PCs = lib.PCs.Len()
	report.Tables = len(lib.Tables)

	l.log.Info("campaign loaded",
		slog.String("load_id", report.LoadID),
		slog.Int("documents", report.Documents),
		slog.Int("creatures", report.Creatures),
		slog.Int("pcs", report.PCs),
		slog.Int("tables", report.Tables),
		slog.Int("problems", len(report.Problems)))

	return lib, report, nil
}

// fold merges one parsed document into the library.
func (l *Loader) fold(lib *Library, doc *markdown.Document, report *Report) {
	// Calendar and names documents compile as a whole; a bad spec skips the
	// entire document.
	switch doc.Key {
	case calendarKey:
		cal, err := calendar.Compile(doc)
		if err != nil {
			l.skipDocument(doc, err, report)
			return
		}
		lib.Calendar = cal
	case namesKey:
		grammar, err := namegen.Compile(doc)
		if err != nil {
			l.skipDocument(doc, err, report)
			return
		}
		lib.Names = grammar
	}

	target := lib.Catalog
	if strings.EqualFold(strings.TrimSpace(doc.Root.Title), "player characters") {
		target = lib.PCs
	}

	result := creature.Extract(doc)
	for _, problem := range result.Problems {
		report.Problems = append(report.Problems, Problem{
			Document: doc.Key,
			Section:  problem.Section,
			Err:      problem.Err,
		})
	}
	for _, tmpl := range result.Creatures {
		if target.Put(tmpl) {
			l.log.Warn("creature overwritten",
				slog.String("document", doc.Key),
				slog.String("creature", Key(tmpl.Name)))
		}
	}

	tables := markdown.ScanTables(doc)
	for name, table := range tables {
		if _, exists := lib.Tables[name]; exists {
			l.log.Warn("table overwritten",
				slog.String("document", doc.Key),
				slog.String("table", name))
		}
		lib.Tables[name] = table
	}

	lib.Documents = append(lib.Documents, doc)
	l.log.Debug("folded document",
		slog.String("document", doc.Key),
		slog.Int("creatures", len(result.Creatures)),
		slog.Int("tables", len(tables)))
}

// skipDocument records a whole-document compile failure.
func (l *Loader) skipDocument(doc *markdown.Document, err error, report *Report) {
	problem := Problem{Document: doc.Key, Err: err}
	if meta := lorerr.GetMeta(err); meta != nil {
		if section, ok := meta["section"].(string); ok {
			problem.Section = section
		}
	}
	report.Problems = append(report.Problems, problem)
	l.log.Warn("skipped document",
		slog.String("document", doc.Key),
		slog.String("error", err.Error()))
}
