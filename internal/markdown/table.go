package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wrenfold/loresmith/internal/dice"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// rowValueRegex matches a table row's value cell: a single number or a
// low-high range. Separator rows have no digits and fall through.
var rowValueRegex = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)

// TableRow is one result band of a rollable table.
type TableRow struct {
	Low    int
	High   int
	Result string
}

// Table is a rollable table lifted out of body text: a `**Table- Name**`
// marker followed by a pipe table whose first column is a die roll.
type Table struct {
	Name string
	Roll string
	Rows []TableRow
}

// ScanTables collects every rollable table in the document, keyed by
// lower-cased name. Pipe tables without a die roll in the first column are
// left alone.
func ScanTables(doc *Document) map[string]*Table {
	tables := make(map[string]*Table)
	doc.Root.Walk(func(s *Section) {
		scanBody(s.Body, tables)
	})
	return tables
}

const tableMarker = "**Table"

func scanBody(body []string, tables map[string]*Table) {
	const (
		modeText = iota
		modeNamed
		modeRollable
	)

	mode := modeText
	var name, roll string
	var rows []TableRow

	finish := func() {
		tables[strings.ToLower(name)] = &Table{Name: name, Roll: roll, Rows: rows}
		rows = nil
	}

	for _, line := range body {
		switch {
		case strings.HasPrefix(line, tableMarker):
			if mode == modeRollable {
				finish()
			}
			mode = modeText
			if trimmed, ok := tableName(line); ok {
				name = trimmed
				mode = modeNamed
			}

		case mode == modeNamed && strings.HasPrefix(line, "|"):
			cell, ok := firstCell(line)
			if ok && dice.HasRoll(cell) {
				roll = strings.TrimSpace(cell)
				rows = nil
				mode = modeRollable
			} else {
				mode = modeText
			}

		case mode == modeRollable && strings.HasPrefix(line, "|"):
			if row, ok := parseRow(line); ok {
				rows = append(rows, row)
			}

		case mode == modeRollable:
			finish()
			mode = modeText
		}
	}

	if mode == modeRollable {
		finish()
	}
}

// tableName pulls "Name" out of a `**Table- Name**` marker line.
func tableName(line string) (string, bool) {
	if len(line) < len(tableMarker)+2 || !strings.HasSuffix(line, "**") {
		return "", false
	}
	name := strings.Trim(line[len(tableMarker):len(line)-2], "- \t")
	if name == "" {
		return "", false
	}
	return name, true
}

// firstCell returns the text between the first two pipes.
func firstCell(line string) (string, bool) {
	end := strings.Index(line[1:], "|")
	if end < 0 {
		return "", false
	}
	return line[1 : 1+end], true
}

// parseRow reads `| value | result |` where value is N or N-M.
func parseRow(line string) (TableRow, bool) {
	cells := strings.Split(line, "|")
	if len(cells) < 3 {
		return TableRow{}, false
	}

	groups := rowValueRegex.FindStringSubmatch(strings.TrimSpace(cells[1]))
	if groups == nil {
		return TableRow{}, false
	}

	low, err := strconv.Atoi(groups[1])
	if err != nil {
		return TableRow{}, false
	}
	high := low
	if groups[2] != "" {
		high, err = strconv.Atoi(groups[2])
		if err != nil {
			return TableRow{}, false
		}
	}

	return TableRow{Low: low, High: high, Result: strings.TrimSpace(cells[2])}, true
}

// Pick returns the result whose band covers value.
func (t *Table) Pick(value int) (string, error) {
	for _, row := range t.Rows {
		if row.Low <= value && value <= row.High {
			return row.Result, nil
		}
	}
	return "", lorerr.NotFoundf("no row of table %q covers %d", t.Name, value)
}

// Draw rolls the table's die and picks the matching result.
func (t *Table) Draw(roller dice.Roller) (string, error) {
	expr, err := dice.Parse(strings.TrimSpace(t.Roll))
	if err != nil {
		return "", lorerr.Wrapf(err, "table %q has no rollable first column", t.Name)
	}

	value, err := dice.RollExpression(roller, expr)
	if err != nil {
		return "", err
	}
	return t.Pick(value)
}
