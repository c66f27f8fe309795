package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/question-generator/internal/config"
	"github.com/futig/question-generator/internal/entity"
)

// Validator checks user input before it reaches session state
type Validator struct {
	cfg config.SessionConfig
}

func NewValidator(cfg config.SessionConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateSelection checks chosen values against the current candidates and
// returns them deduplicated in input order
func (v *Validator) ValidateSelection(cat entity.Category, values, candidates []string) ([]string, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		allowed[c] = true
	}

	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		if !allowed[value] {
			return nil, fmt.Errorf("%w: %s %q", entity.ErrUnknownOption, cat, value)
		}
		seen[value] = true
		unique = append(unique, value)
	}

	if cat == entity.CategoryDomain && len(unique) > entity.MaxDomains {
		return nil, fmt.Errorf("%w: %d chosen, at most %d allowed", entity.ErrTooManyDomains, len(unique), entity.MaxDomains)
	}

	return unique, nil
}

// ValidateTimeline checks the timeline bounds
func (v *Validator) ValidateTimeline(months int) error {
	if months < entity.TimelineMin || months > entity.TimelineMax {
		return fmt.Errorf("%w: %d months, expected %d to %d",
			entity.ErrTimelineOutOfRange, months, entity.TimelineMin, entity.TimelineMax)
	}
	return nil
}

// ValidateOverride checks a manual question edit. Bounds against the
// generated table are checked by the table itself.
func (v *Validator) ValidateOverride(req *entity.OverrideRequest) error {
	if req.Row == nil {
		return fmt.Errorf("%w: row", entity.ErrMissingField)
	}
	if *req.Row < 0 {
		return fmt.Errorf("%w: row %d", entity.ErrRowOutOfRange, *req.Row)
	}
	if utf8.RuneCountInString(req.Question) > v.cfg.MaxQuestionLength {
		return fmt.Errorf("%w: question longer than %d characters", entity.ErrInvalidParameter, v.cfg.MaxQuestionLength)
	}
	if strings.ContainsRune(req.Question, 0) {
		return fmt.Errorf("%w: question contains NUL", entity.ErrInvalidParameter)
	}
	return nil
}
