package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/question-generator/internal/entity"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const questionsCSV = "\ufeffDomain,Stakeholder,Metric Area,Question Type,Question,Answer Options\n" +
	"Funding Organisation,Grant Recipients,Funding Impact,Text response,Describe project activities.,\n" +
	"\n" +
	"  Individual , Self ,Personal Growth,Yes or no,\"Did you finish, on time?\",Yes; No\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadQuestions_CSV(t *testing.T) {
	path := writeFile(t, "mainDB.csv", questionsCSV)

	rows, err := NewQuestionFile().LoadQuestions(context.Background(), path)
	require.NoError(t, err)

	want := []entity.QuestionRow{
		{
			Domain:       "Funding Organisation",
			Stakeholder:  "Grant Recipients",
			MetricArea:   "Funding Impact",
			QuestionType: "Text response",
			Question:     "Describe project activities.",
		},
		{
			Domain:        "Individual",
			Stakeholder:   "Self",
			MetricArea:    "Personal Growth",
			QuestionType:  "Yes or no",
			Question:      "Did you finish, on time?",
			AnswerOptions: "Yes; No",
		},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadQuestions_ColumnsByName(t *testing.T) {
	path := writeFile(t, "reordered.csv",
		"Question,Answer Options,Question Type,Metric Area,Stakeholder,Domain,Notes\n"+
			"Q1,,Numerical,Funding Impact,Grant Recipients,Funding Organisation,ignored\n")

	rows, err := NewQuestionFile().LoadQuestions(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Funding Organisation", rows[0].Domain)
	assert.Equal(t, "Numerical", rows[0].QuestionType)
	assert.Equal(t, "Q1", rows[0].Question)
}

func TestLoadQuestions_MissingColumn(t *testing.T) {
	path := writeFile(t, "broken.csv", "Domain,Stakeholder,Question Type,Question,Answer Options\n")

	_, err := NewQuestionFile().LoadQuestions(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMissingColumn)
	assert.Contains(t, err.Error(), "Metric Area")
}

func TestLoadQuestions_Errors(t *testing.T) {
	repo := NewQuestionFile()
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.LoadQuestions(ctx, filepath.Join(t.TempDir(), "absent.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "questions.json", "[]")
		_, err := repo.LoadQuestions(ctx, path)
		assert.ErrorIs(t, err, entity.ErrUnsupportedFile)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")
		_, err := repo.LoadQuestions(ctx, path)
		assert.ErrorIs(t, err, entity.ErrMalformedTable)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := repo.LoadQuestions(ctx, t.TempDir())
		assert.ErrorIs(t, err, entity.ErrUnsupportedFile)
	})
}

func TestLoadQuestions_Memoized(t *testing.T) {
	path := writeFile(t, "mainDB.csv", questionsCSV)
	repo := NewQuestionFile()

	first, err := repo.LoadQuestions(context.Background(), path)
	require.NoError(t, err)

	// Callers get a copy and cannot corrupt the cached table
	first[0].Question = "changed"

	second, err := repo.LoadQuestions(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Describe project activities.", second[0].Question)
}

func TestLoadQuestions_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Domain", "Stakeholder", "Metric Area", "Question Type", "Question", "Answer Options"}))
	// Trailing empty cell is dropped by the reader and padded back
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Individual", "Self", "Funding Impact", "Numerical", "How much?"}))

	path := filepath.Join(t.TempDir(), "mainDB.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := NewQuestionFile().LoadQuestions(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.QuestionRow{
		Domain:       "Individual",
		Stakeholder:  "Self",
		MetricArea:   "Funding Impact",
		QuestionType: "Numerical",
		Question:     "How much?",
	}, rows[0])
}

func TestLoadPersonalQuestions(t *testing.T) {
	path := writeFile(t, "personalDB.csv",
		"Question,Question Type,Answer Options\n"+
			"What is your name?,Text response,\n"+
			"What is your gender?,Single-select,Female; Male\n")

	personal, err := NewQuestionFile().LoadPersonalQuestions(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Question", "Question Type", "Answer Options"}, personal.Header)
	assert.Equal(t, [][]string{
		{"What is your name?", "Text response", ""},
		{"What is your gender?", "Single-select", "Female; Male"},
	}, personal.Rows)
}

func TestLoadPersonalQuestions_Verbatim(t *testing.T) {
	path := writeFile(t, "personalDB.csv",
		"Question,Question Type,Answer Options\n"+
			"  What is your age? ,Numerical , \n")

	personal, err := NewQuestionFile().LoadPersonalQuestions(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"  What is your age? ", "Numerical ", " "}}, personal.Rows)
}

func writeWorkbook(t *testing.T, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "table.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadPersonalQuestions_XLSXRowWiderThanHeader(t *testing.T) {
	path := writeWorkbook(t,
		[]any{"Question", "Question Type"},
		[]any{"What is your age?", "Numerical"},
		[]any{"What is your role?", "Text response", "stray note"},
	)

	_, err := NewQuestionFile().LoadPersonalQuestions(context.Background(), path)
	require.ErrorIs(t, err, entity.ErrMalformedTable)
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoadQuestions_XLSXRowWiderThanHeader(t *testing.T) {
	header := []any{"Domain", "Stakeholder", "Metric Area", "Question Type", "Question", "Answer Options"}

	t.Run("extra value", func(t *testing.T) {
		path := writeWorkbook(t, header,
			[]any{"Individual", "Self", "Funding Impact", "Numerical", "How much?", "", "extra"})
		_, err := NewQuestionFile().LoadQuestions(context.Background(), path)
		assert.ErrorIs(t, err, entity.ErrMalformedTable)
	})

	t.Run("empty trailing cells", func(t *testing.T) {
		path := writeWorkbook(t, header,
			[]any{"Individual", "Self", "Funding Impact", "Numerical", "How much?", "", ""})
		rows, err := NewQuestionFile().LoadQuestions(context.Background(), path)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestLoadShippedData(t *testing.T) {
	repo := NewQuestionFile()
	ctx := context.Background()

	rows, err := repo.LoadQuestions(ctx, filepath.Join("..", "..", "data", "mainDB.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, rows)

	personal, err := repo.LoadPersonalQuestions(ctx, filepath.Join("..", "..", "data", "personalDB.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, personal.Rows)
}
