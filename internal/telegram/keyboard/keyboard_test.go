package keyboard

import (
	"strings"
	"testing"

	"github.com/futig/question-generator/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	cb, err := ParseCallback("dl:finalQuestions.csv")
	require.NoError(t, err)
	assert.Equal(t, ActionDownload, cb.Action)
	assert.Equal(t, "finalQuestions.csv", cb.Value)

	cb, err = ParseCallback("tl:-12")
	require.NoError(t, err)
	assert.Equal(t, "-12", cb.Value)

	_, err = ParseCallback("garbage")
	assert.Error(t, err)
}

func TestOptionRoundTrip(t *testing.T) {
	candidates := []string{"Text response", "Date", "Numerical", "Yes or no", "Sliding scale"}
	data := EncodeOption(entity.CategoryQuestionType, 4, candidates)
	assert.Equal(t, "opt:question_type.4."+Fingerprint(candidates), data)

	cb, err := ParseCallback(data)
	require.NoError(t, err)
	require.Equal(t, ActionOption, cb.Action)

	ref, err := ParseOption(cb.Value)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryQuestionType, ref.Category)
	assert.Equal(t, 4, ref.Index)

	value, err := ref.Resolve(&entity.StepState{Category: entity.CategoryQuestionType, Candidates: candidates})
	require.NoError(t, err)
	assert.Equal(t, "Sliding scale", value)
}

func TestParseOption_Invalid(t *testing.T) {
	for _, value := range []string{"", ".1", "domain", "domain.1", "domain.1.", "domain.x.ab", "domain.-1.ab", "colour.1.ab"} {
		_, err := ParseOption(value)
		assert.Error(t, err, value)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"Funding Impact", "Program Experience"})
	assert.Len(t, a, 8)
	assert.Equal(t, a, Fingerprint([]string{"Funding Impact", "Program Experience"}))
	assert.NotEqual(t, a, Fingerprint([]string{"Program Experience", "Funding Impact"}))
	assert.NotEqual(t, Fingerprint([]string{"ab", "c"}), Fingerprint([]string{"a", "bc"}))
}

func TestOptionRef_ResolveStale(t *testing.T) {
	drawn := []string{"Funding Impact", "Application Process", "Program Experience"}
	ref, err := ParseOption(strings.TrimPrefix(EncodeOption(entity.CategoryMetric, 2, drawn), ActionOption+":"))
	require.NoError(t, err)

	tests := []struct {
		name string
		step *entity.StepState
	}{
		{"reordered", &entity.StepState{Category: entity.CategoryMetric, Candidates: []string{"Funding Impact", "Program Experience", "Application Process"}}},
		{"shrunk", &entity.StepState{Category: entity.CategoryMetric, Candidates: drawn[:2]}},
		{"other step", &entity.StepState{Category: entity.CategoryDomain, Candidates: drawn}},
		{"missing step", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ref.Resolve(tt.step)
			assert.ErrorIs(t, err, entity.ErrUnknownOption)
		})
	}
}

func TestStepKeyboard(t *testing.T) {
	b := NewBuilder()
	long := strings.Repeat("Organisation ", 10)

	kb := b.StepKeyboard(&entity.StepState{
		Category:   entity.CategoryDomain,
		Candidates: []string{"Individual", long},
		Selected:   []entity.Option{{Value: "Individual"}},
	})

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "✅ Individual", kb.InlineKeyboard[0][0].Text)
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[1][0].Text, "▫️ "))
	assert.Equal(t, "opt:domain.1."+Fingerprint([]string{"Individual", long}), *kb.InlineKeyboard[1][0].CallbackData)

	// Domain step has no back button.
	nav := kb.InlineKeyboard[2]
	require.Len(t, nav, 1)
	assert.Equal(t, "nav:next", *nav[0].CallbackData)

	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			assert.LessOrEqual(t, len(*btn.CallbackData), 64)
		}
	}
}

func TestStepKeyboard_NothingSelectedHidesNext(t *testing.T) {
	kb := NewBuilder().StepKeyboard(&entity.StepState{
		Category:   entity.CategoryMetric,
		Candidates: []string{"Funding Impact"},
	})

	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	require.Len(t, nav, 1)
	assert.Equal(t, "nav:back", *nav[0].CallbackData)
}

func TestTimelineKeyboard_SkipsButtonsPastBounds(t *testing.T) {
	b := NewBuilder()

	atMin := b.TimelineKeyboard(entity.TimelineState{Months: 3, Min: 3, Max: 60})
	assert.Equal(t, []string{"tl:+1", "tl:+12"}, callbacks(atMin.InlineKeyboard[0]))

	middle := b.TimelineKeyboard(entity.TimelineState{Months: 24, Min: 3, Max: 60})
	assert.Equal(t, []string{"tl:-12", "tl:-1", "tl:+1", "tl:+12"}, callbacks(middle.InlineKeyboard[0]))

	atMax := b.TimelineKeyboard(entity.TimelineState{Months: 60, Min: 3, Max: 60})
	assert.Equal(t, []string{"tl:-12", "tl:-1"}, callbacks(atMax.InlineKeyboard[0]))
}

func TestResultsKeyboard(t *testing.T) {
	b := NewBuilder()

	st := &entity.SessionState{
		Generated: true,
		Exports:   []string{"finalQuestions.csv", "finalQuestionsModified.csv"},
	}
	kb := b.ResultsKeyboard(st)

	// edit, personal, two download rows, nav
	require.Len(t, kb.InlineKeyboard, 5)
	assert.Len(t, kb.InlineKeyboard[0], 1)
	assert.Equal(t, "dlk:finalQuestions", *kb.InlineKeyboard[2][0].CallbackData)
	assert.Equal(t, "dlk:finalQuestionsModified", *kb.InlineKeyboard[3][0].CallbackData)

	st.Override = &entity.RowOverride{Row: 1, Question: "x"}
	st.IncludePersonal = true
	st.Exports = append(st.Exports, "personalQuestions.csv")
	kb = b.ResultsKeyboard(st)

	require.Len(t, kb.InlineKeyboard, 6)
	assert.Equal(t, "action:reset_edit", *kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "👤 Remove personal questions", kb.InlineKeyboard[1][0].Text)
}

func TestFormatKeyboard(t *testing.T) {
	exports := []string{
		"finalQuestions.csv",
		"personalQuestions.csv", "personalQuestions.json", "personalQuestions.xlsx",
		"personalQuestions.pdf", "personalQuestions.md",
	}
	kb := NewBuilder().FormatKeyboard(entity.ExportPersonal, exports)

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Equal(t, "dl:personalQuestions.csv", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, []string{"dl:personalQuestions.pdf", "dl:personalQuestions.md"}, callbacks(kb.InlineKeyboard[1]))
	assert.Equal(t, "Markdown", kb.InlineKeyboard[1][1].Text)
}

func callbacks(row []tgbotapi.InlineKeyboardButton) []string {
	out := make([]string, 0, len(row))
	for _, btn := range row {
		out = append(out, *btn.CallbackData)
	}
	return out
}
