package validator

import (
	"strings"
	"testing"

	"github.com/futig/question-generator/internal/config"
	"github.com/futig/question-generator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(config.SessionConfig{MaxQuestionLength: 10})
}

func TestValidateSelection(t *testing.T) {
	v := newTestValidator()
	candidates := []string{"A", "B", "C", "D"}

	tests := []struct {
		name    string
		cat     entity.Category
		values  []string
		want    []string
		wantErr error
	}{
		{"dedup keeps input order", entity.CategoryMetric, []string{"C", "A", "C"}, []string{"C", "A"}, nil},
		{"empty is allowed", entity.CategoryStakeholder, []string{}, []string{}, nil},
		{"unknown value", entity.CategoryMetric, []string{"A", "Z"}, nil, entity.ErrUnknownOption},
		{"three domains", entity.CategoryDomain, []string{"A", "B", "C", "A"}, []string{"A", "B", "C"}, nil},
		{"four domains", entity.CategoryDomain, []string{"A", "B", "C", "D"}, nil, entity.ErrTooManyDomains},
		{"four metrics are fine", entity.CategoryMetric, []string{"A", "B", "C", "D"}, []string{"A", "B", "C", "D"}, nil},
		{"unknown category", entity.Category("colour"), []string{"A"}, nil, entity.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateSelection(tt.cat, tt.values, candidates)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTimeline(t *testing.T) {
	v := newTestValidator()

	for _, m := range []int{entity.TimelineMin, 12, entity.TimelineMax} {
		assert.NoError(t, v.ValidateTimeline(m), "months=%d", m)
	}
	for _, m := range []int{0, entity.TimelineMin - 1, entity.TimelineMax + 1} {
		assert.ErrorIs(t, v.ValidateTimeline(m), entity.ErrTimelineOutOfRange, "months=%d", m)
	}
}

func TestValidateOverride(t *testing.T) {
	v := newTestValidator()
	row := func(n int) *int { return &n }

	assert.NoError(t, v.ValidateOverride(&entity.OverrideRequest{Row: row(0), Question: "Short"}))
	assert.NoError(t, v.ValidateOverride(&entity.OverrideRequest{Row: row(2), Question: "Вопрос ок"}))

	assert.ErrorIs(t, v.ValidateOverride(&entity.OverrideRequest{Question: "x"}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateOverride(&entity.OverrideRequest{Row: row(-1)}), entity.ErrRowOutOfRange)
	assert.ErrorIs(t, v.ValidateOverride(&entity.OverrideRequest{Row: row(0), Question: strings.Repeat("x", 11)}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateOverride(&entity.OverrideRequest{Row: row(0), Question: "a\x00b"}), entity.ErrInvalidParameter)
}
