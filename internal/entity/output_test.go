package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *OutputTable {
	return &OutputTable{Rows: []OutputRow{
		{RowNumber: 0, Question: "First?", Timeline: 12},
		{RowNumber: 1, Question: "Second?", Timeline: 12},
	}}
}

func TestOutputTable_WithQuestionCopies(t *testing.T) {
	table := sampleTable()

	modified, err := table.WithQuestion(1, "Changed?")
	require.NoError(t, err)

	assert.Equal(t, "Changed?", modified.Rows[1].Question)
	assert.Equal(t, "First?", modified.Rows[0].Question)
	assert.Equal(t, "Second?", table.Rows[1].Question, "receiver must not change")
}

func TestOutputTable_CheckRow(t *testing.T) {
	table := sampleTable()

	assert.NoError(t, table.CheckRow(0))
	assert.NoError(t, table.CheckRow(1))
	assert.ErrorIs(t, table.CheckRow(2), ErrRowOutOfRange)
	assert.ErrorIs(t, table.CheckRow(-1), ErrRowOutOfRange)

	var empty *OutputTable
	assert.Equal(t, 0, empty.Len())
	assert.ErrorIs(t, empty.CheckRow(0), ErrRowOutOfRange)

	_, err := table.WithQuestion(5, "x")
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestParseExportName(t *testing.T) {
	tests := []struct {
		name    string
		formats []ResultFormat
		want    ExportName
		wantErr bool
	}{
		{name: "finalQuestions.csv", want: ExportName{Kind: ExportFinal, Format: FormatCSV}},
		{name: "finalQuestionsModified.json", want: ExportName{Kind: ExportModified, Format: FormatJSON}},
		{name: "personalQuestions.md", want: ExportName{Kind: ExportPersonal, Format: FormatMarkdown}},
		{name: "FINALQUESTIONS.XLSX", want: ExportName{Kind: ExportFinal, Format: FormatXLSX}},
		{name: "finalQuestions.markdown", wantErr: true},
		{name: "summary.csv", wantErr: true},
		{name: "", wantErr: true},
		{name: "finalQuestions.docx", want: ExportName{Kind: ExportFinal, Format: FormatDOCX}},
		{name: "finalQuestions.docx", formats: []ResultFormat{FormatCSV, FormatJSON}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formats := tt.formats
			if formats == nil {
				formats = ResultFormats
			}
			got, err := ParseExportName(tt.name, formats)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownExport)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportName_String(t *testing.T) {
	assert.Equal(t, "finalQuestionsModified.docx", ExportName{Kind: ExportModified, Format: FormatDOCX}.String())
	assert.Equal(t, "personalQuestions.md", ExportName{Kind: ExportPersonal, Format: FormatMarkdown}.String())
}

func TestSessionClone(t *testing.T) {
	s := &Session{
		ID:        "s1",
		Selection: Selection{Domains: []string{"Individual"}, Timeline: 3},
		Questions: sampleTable(),
		Override:  &RowOverride{Row: 0, Question: "x"},
	}

	clone := s.Clone()
	clone.Selection.Domains[0] = "changed"
	clone.Questions.Rows[0].Question = "changed"
	clone.Override.Question = "changed"

	assert.Equal(t, "Individual", s.Selection.Domains[0])
	assert.Equal(t, "First?", s.Questions.Rows[0].Question)
	assert.Equal(t, "x", s.Override.Question)
}
