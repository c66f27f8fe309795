package entity

import "fmt"

// Export column names, in export order
const (
	OutputColumnRowNumber   = "row_number"
	OutputColumnQuestion    = "questions"
	OutputColumnRelevant    = "relevant?"
	OutputColumnDomain      = "domain"
	OutputColumnTimeline    = "timeline (in months)"
	OutputColumnStakeholder = "stakeholders"
	OutputColumnMetric      = "metrics"
	OutputColumnOptions     = "options"
)

var OutputColumns = []string{
	OutputColumnRowNumber,
	OutputColumnQuestion,
	OutputColumnRelevant,
	OutputColumnDomain,
	OutputColumnTimeline,
	OutputColumnStakeholder,
	OutputColumnMetric,
	OutputColumnOptions,
}

// OutputRow is a generated question annotated for export
type OutputRow struct {
	RowNumber   int    `json:"row_number"`
	Question    string `json:"questions"`
	Relevant    bool   `json:"relevant?"`
	Domain      string `json:"domain"`
	Timeline    int    `json:"timeline (in months)"`
	Stakeholder string `json:"stakeholders"`
	Metric      string `json:"metrics"`
	Options     string `json:"options"`
}

// OutputTable is the generated question set. Its methods never mutate the
// receiver; edits return a modified copy.
type OutputTable struct {
	Rows []OutputRow `json:"rows"`
}

// Len returns the number of rows
func (t *OutputTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns an independent copy of the table
func (t *OutputTable) Clone() *OutputTable {
	if t == nil {
		return nil
	}
	rows := make([]OutputRow, len(t.Rows))
	copy(rows, t.Rows)
	return &OutputTable{Rows: rows}
}

// CheckRow reports ErrRowOutOfRange unless 0 <= row < Len()
func (t *OutputTable) CheckRow(row int) error {
	if row < 0 || row >= t.Len() {
		return fmt.Errorf("%w: row %d, table has %d rows", ErrRowOutOfRange, row, t.Len())
	}
	return nil
}

// WithQuestion returns a copy with the question text of one row replaced
func (t *OutputTable) WithQuestion(row int, question string) (*OutputTable, error) {
	if err := t.CheckRow(row); err != nil {
		return nil, err
	}
	modified := t.Clone()
	modified.Rows[row].Question = question
	return modified, nil
}

// WithRelevant returns a copy with the relevant flag of one row set
func (t *OutputTable) WithRelevant(row int, relevant bool) (*OutputTable, error) {
	if err := t.CheckRow(row); err != nil {
		return nil, err
	}
	modified := t.Clone()
	modified.Rows[row].Relevant = relevant
	return modified, nil
}
