package entity

import "time"

type SelectionRequest struct {
	Values []string `json:"values"`
}

type TimelineRequest struct {
	Months *int `json:"months"`
}

type RelevantRequest struct {
	Relevant *bool `json:"relevant"`
}

type OverrideRequest struct {
	Row      *int   `json:"row"`
	Question string `json:"question"`
}

type PersonalRequest struct {
	Include *bool `json:"include"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SessionState is the full view of a session returned to clients
type SessionState struct {
	ID              string        `json:"session_id"`
	Steps           []StepState   `json:"steps"`
	Timeline        TimelineState `json:"timeline"`
	Generated       bool          `json:"generated"`
	QuestionCount   int           `json:"question_count"`
	IncludePersonal bool          `json:"include_personal"`
	Override        *RowOverride  `json:"override,omitempty"`
	Exports         []string      `json:"exports"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Step returns the state of one selection step
func (s *SessionState) Step(cat Category) *StepState {
	for i := range s.Steps {
		if s.Steps[i].Category == cat {
			return &s.Steps[i]
		}
	}
	return nil
}

// QuestionsResponse carries the current generated table
type QuestionsResponse struct {
	SessionID string       `json:"session_id"`
	Rows      []OutputRow  `json:"rows"`
	Override  *RowOverride `json:"override,omitempty"`
}
