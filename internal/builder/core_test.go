package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/futig/question-generator/internal/config"
	"github.com/futig/question-generator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func shippedConfig() *config.Config {
	return &config.Config{
		DataCfg: config.DataConfig{
			QuestionsFile:         "../../data/mainDB.csv",
			PersonalQuestionsFile: "../../data/personalDB.csv",
		},
		SessionCfg: config.SessionConfig{
			TTL:               time.Hour,
			CleanupInterval:   time.Minute,
			MaxQuestionLength: 2000,
		},
		ExportCacheTTL: time.Minute,
	}
}

func TestBuildCore_ShippedData(t *testing.T) {
	ctx := context.Background()

	core, err := BuildCore(ctx, shippedConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Positive(t, core.Generator.RowCount())

	uc := core.SessionUC
	st, err := uc.StartSession(ctx)
	require.NoError(t, err)

	_, err = uc.SetDomains(ctx, st.ID, []string{"Funding Organisation"})
	require.NoError(t, err)
	_, err = uc.SetTimeline(ctx, st.ID, 12)
	require.NoError(t, err)
	_, err = uc.SetStakeholders(ctx, st.ID, []string{"Grant Recipients"})
	require.NoError(t, err)
	_, err = uc.SetMetrics(ctx, st.ID, []string{"Funding Impact"})
	require.NoError(t, err)

	q, err := uc.Generate(ctx, st.ID)
	require.NoError(t, err)
	require.NotEmpty(t, q.Rows)
	assert.Equal(t, "Describe project activities.", q.Rows[0].Question)
	assert.Equal(t, 12, q.Rows[0].Timeline)
	assert.False(t, q.Rows[0].Relevant)

	st, err = uc.SetIncludePersonal(ctx, st.ID, true)
	require.NoError(t, err)
	require.Len(t, st.Exports, len(entity.ExportKinds)*len(core.Formats))

	// every advertised download must render
	for _, name := range st.Exports {
		file, err := uc.Export(ctx, st.ID, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, file.Data, name)
	}
}

func TestBuildCore_DOCXNeedsLicenseKey(t *testing.T) {
	ctx := context.Background()

	core, err := BuildCore(ctx, shippedConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.NotContains(t, core.Formats, entity.FormatDOCX)

	st, err := core.SessionUC.StartSession(ctx)
	require.NoError(t, err)
	_, err = core.SessionUC.SetIncludePersonal(ctx, st.ID, true)
	require.NoError(t, err)

	_, err = core.SessionUC.Export(ctx, st.ID, "personalQuestions.docx")
	assert.ErrorIs(t, err, entity.ErrUnknownExport)
}

func TestBuildCore_MissingQuestions(t *testing.T) {
	cfg := shippedConfig()
	cfg.DataCfg.QuestionsFile = "../../data/none.csv"

	_, err := BuildCore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildCore_InconsistentReference(t *testing.T) {
	cfg := shippedConfig()
	cfg.DataCfg.ReferenceFile = writeReference(t)

	_, err := BuildCore(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnknownCategoryValue)
}

// writeReference stores a catalog that knows a single value per category
func writeReference(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "descriptions.yaml")
	data := `domains:
  "Individual": "A person."
stakeholders:
  "Self": "The person."
metrics:
  "Personal Growth": "Growth."
question_types:
  "Date": "A date."
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}
