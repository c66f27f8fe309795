package session

import (
	"slices"

	"github.com/futig/question-generator/internal/entity"
)

// reconcile brings downstream steps in line with upstream choices. Chosen
// values that are no longer candidates are dropped. Question types are reset
// to every candidate whenever their candidate list changed. A generated table
// is recomputed, which clears relevant flags and the override.
func (uc *SessionUsecase) reconcile(s *entity.Session, previousTypes []string) {
	sel := &s.Selection

	sel.Stakeholders = keepCandidates(sel.Stakeholders, uc.generator.StakeholderCandidates(sel.Domains))
	sel.Metrics = keepCandidates(sel.Metrics, uc.generator.MetricCandidates(sel.Stakeholders))

	types := uc.generator.QuestionTypeCandidates(sel.Metrics)
	if slices.Equal(types, previousTypes) {
		sel.QuestionTypes = keepCandidates(sel.QuestionTypes, types)
	} else {
		sel.QuestionTypes = append([]string{}, types...)
	}

	if s.Generated {
		s.Questions = uc.generator.Generate(*sel)
		s.Override = nil
	}
}

func keepCandidates(values, candidates []string) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if slices.Contains(candidates, v) {
			kept = append(kept, v)
		}
	}
	return kept
}

func setValues(sel *entity.Selection, cat entity.Category, values []string) {
	switch cat {
	case entity.CategoryDomain:
		sel.Domains = values
	case entity.CategoryStakeholder:
		sel.Stakeholders = values
	case entity.CategoryMetric:
		sel.Metrics = values
	case entity.CategoryQuestionType:
		sel.QuestionTypes = values
	}
}
