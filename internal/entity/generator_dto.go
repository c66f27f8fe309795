package entity

// Option is a selectable value together with its description
type Option struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Candidates are the values offered at each selection step
type Candidates struct {
	Domains       []string `json:"domains"`
	Stakeholders  []string `json:"stakeholders"`
	Metrics       []string `json:"metrics"`
	QuestionTypes []string `json:"question_types"`
}

// Values returns the candidate list of one step
func (c Candidates) Values(cat Category) []string {
	switch cat {
	case CategoryDomain:
		return c.Domains
	case CategoryStakeholder:
		return c.Stakeholders
	case CategoryMetric:
		return c.Metrics
	case CategoryQuestionType:
		return c.QuestionTypes
	default:
		return nil
	}
}

// StepState is one selection step as presented to the user
type StepState struct {
	Category   Category `json:"category"`
	Candidates []string `json:"candidates"`
	Selected   []Option `json:"selected"`
	MaxSelect  int      `json:"max_select,omitempty"`
}

// TimelineState describes the timeline control
type TimelineState struct {
	Months  int `json:"months"`
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step"`
	Default int `json:"default"`
}
