package session

import (
	"fmt"

	"github.com/futig/question-generator/internal/entity"
)

// sessionToState builds the client view of a session
func (uc *SessionUsecase) sessionToState(s *entity.Session) (*entity.SessionState, error) {
	candidates := uc.generator.Candidates(s.Selection)

	steps := make([]entity.StepState, 0, len(entity.Categories))
	for _, cat := range entity.Categories {
		selected, err := uc.generator.Describe(cat, s.Selection.Values(cat))
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", cat, err)
		}

		step := entity.StepState{
			Category:   cat,
			Candidates: candidates.Values(cat),
			Selected:   selected,
		}
		if cat == entity.CategoryDomain {
			step.MaxSelect = entity.MaxDomains
		}
		steps = append(steps, step)
	}

	var override *entity.RowOverride
	if s.Override != nil {
		o := *s.Override
		override = &o
	}

	return &entity.SessionState{
		ID:    s.ID,
		Steps: steps,
		Timeline: entity.TimelineState{
			Months:  s.Selection.Timeline,
			Min:     entity.TimelineMin,
			Max:     entity.TimelineMax,
			Step:    entity.TimelineStep,
			Default: entity.TimelineDefault,
		},
		Generated:       s.Generated,
		QuestionCount:   s.Questions.Len(),
		IncludePersonal: s.IncludePersonal,
		Override:        override,
		Exports:         availableExports(s, uc.exporter.Formats()),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}, nil
}

// availableExports lists the download names a session can serve right now
func availableExports(s *entity.Session, formats []entity.ResultFormat) []string {
	names := make([]string, 0)
	if s.Generated {
		for _, kind := range []entity.ExportKind{entity.ExportFinal, entity.ExportModified} {
			for _, format := range formats {
				names = append(names, entity.ExportName{Kind: kind, Format: format}.String())
			}
		}
	}
	if s.IncludePersonal {
		for _, format := range formats {
			names = append(names, entity.ExportName{Kind: entity.ExportPersonal, Format: format}.String())
		}
	}
	return names
}

func questionsToResponse(s *entity.Session) *entity.QuestionsResponse {
	rows := make([]entity.OutputRow, 0, s.Questions.Len())
	if s.Questions != nil {
		rows = append(rows, s.Questions.Rows...)
	}
	return &entity.QuestionsResponse{
		SessionID: s.ID,
		Rows:      rows,
		Override:  s.Override,
	}
}
