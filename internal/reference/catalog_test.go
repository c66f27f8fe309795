package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/question-generator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Len(t, cat.QuestionTypes, 6)
	for _, qt := range []string{
		entity.QuestionTypeText,
		entity.QuestionTypeNumerical,
		entity.QuestionTypeSingleSelect,
		entity.QuestionTypeYesNo,
		entity.QuestionTypeDate,
		entity.QuestionTypeSlidingScale,
	} {
		_, err := cat.DescriptionOf(entity.CategoryQuestionType, qt)
		assert.NoError(t, err, qt)
	}

	desc, err := cat.DescriptionOf(entity.CategoryDomain, "Funding Organisation")
	require.NoError(t, err)
	assert.Contains(t, desc, "financial support")
}

func TestDescriptionOf_Unknown(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	_, err = cat.DescriptionOf(entity.CategoryMetric, "Not A Metric")
	assert.ErrorIs(t, err, entity.ErrUnknownCategoryValue)

	_, err = cat.DescriptionOf(entity.Category("colour"), "red")
	assert.ErrorIs(t, err, entity.ErrUnknownCategory)
}

func TestKeysSorted(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	keys := cat.Keys(entity.CategoryQuestionType)
	assert.Equal(t, []string{"Date", "Numerical", "Single-select", "Sliding scale", "Text response", "Yes or no"}, keys)
}

func TestValidate_ReportsEveryMissingValue(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	rows := []entity.QuestionRow{
		{Domain: "Individual", Stakeholder: "Self", MetricArea: "Personal Growth", QuestionType: "Date"},
		{Domain: "Mystery Org", Stakeholder: "Self", MetricArea: "Unknown Metric", QuestionType: "Date"},
		{Domain: "Mystery Org", Stakeholder: "Self", MetricArea: "Personal Growth", QuestionType: "Essay"},
	}

	err = cat.Validate(rows)
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	for _, e := range errs {
		assert.ErrorIs(t, e, entity.ErrUnknownCategoryValue)
	}
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "Essay")
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded data", func(t *testing.T) {
		cat, err := Load("")
		require.NoError(t, err)
		assert.NotEmpty(t, cat.Domains)
	})

	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ref.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
domains: {"D": "a domain"}
stakeholders: {"S": "a stakeholder"}
metrics: {"M": "a metric"}
question_types: {"T": "a type"}
`), 0o644))

		cat, err := Load(path)
		require.NoError(t, err)
		desc, err := cat.DescriptionOf(entity.CategoryStakeholder, "S")
		require.NoError(t, err)
		assert.Equal(t, "a stakeholder", desc)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := Parse([]byte(`domains: {"D": "a domain"}`))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
