package formatter

import (
	"fmt"
	"strconv"

	"github.com/futig/question-generator/internal/entity"
)

const (
	finalTitle    = "Survey questions"
	modifiedTitle = "Survey questions (modified)"
	personalTitle = "Personal questions"
)

// Table is the format-neutral shape every formatter renders. Cells hold
// string, int or bool values.
type Table struct {
	Title  string
	Header []string
	Rows   [][]any
}

// FromOutput converts a generated table using the export column names
func FromOutput(kind entity.ExportKind, t *entity.OutputTable) *Table {
	title := finalTitle
	if kind == entity.ExportModified {
		title = modifiedTitle
	}

	table := &Table{
		Title:  title,
		Header: append([]string{}, entity.OutputColumns...),
		Rows:   make([][]any, 0, t.Len()),
	}
	if t == nil {
		return table
	}

	for _, r := range t.Rows {
		table.Rows = append(table.Rows, []any{
			r.RowNumber,
			r.Question,
			r.Relevant,
			r.Domain,
			r.Timeline,
			r.Stakeholder,
			r.Metric,
			r.Options,
		})
	}
	return table
}

// FromPersonal converts the personal-questions table verbatim
func FromPersonal(p *entity.PersonalTable) *Table {
	table := &Table{
		Title:  personalTitle,
		Header: append([]string{}, p.Header...),
		Rows:   make([][]any, 0, len(p.Rows)),
	}

	for _, r := range p.Rows {
		row := make([]any, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// StringRows returns every row with its cells rendered as text
func (t *Table) StringRows() [][]string {
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = make([]string, len(r))
		for j, cell := range r {
			rows[i][j] = cellString(cell)
		}
	}
	return rows
}

func cellString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case bool:
		return strconv.FormatBool(c)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}
