package entity

import (
	"fmt"
	"time"
)

// Category identifies one of the four tagged dimensions of a question row
type Category string

const (
	CategoryDomain       Category = "domain"
	CategoryStakeholder  Category = "stakeholder"
	CategoryMetric       Category = "metric"
	CategoryQuestionType Category = "question_type"
)

// Categories lists the dimensions in waterfall order
var Categories = []Category{
	CategoryDomain,
	CategoryStakeholder,
	CategoryMetric,
	CategoryQuestionType,
}

func (c Category) Validate() error {
	switch c {
	case CategoryDomain, CategoryStakeholder, CategoryMetric, CategoryQuestionType:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
}

// Question types known to the reference data
const (
	QuestionTypeText         = "Text response"
	QuestionTypeNumerical    = "Numerical"
	QuestionTypeSingleSelect = "Single-select"
	QuestionTypeYesNo        = "Yes or no"
	QuestionTypeDate         = "Date"
	QuestionTypeSlidingScale = "Sliding scale"
)

// Selection limits
const (
	MaxDomains      = 3
	TimelineMin     = 3
	TimelineMax     = 60
	TimelineDefault = 3
	TimelineStep    = 1
)

// Source table column names
const (
	ColumnDomain        = "Domain"
	ColumnStakeholder   = "Stakeholder"
	ColumnMetricArea    = "Metric Area"
	ColumnQuestionType  = "Question Type"
	ColumnQuestion      = "Question"
	ColumnAnswerOptions = "Answer Options"
)

// QuestionColumns are the columns a question table must carry
var QuestionColumns = []string{
	ColumnDomain,
	ColumnStakeholder,
	ColumnMetricArea,
	ColumnQuestionType,
	ColumnQuestion,
	ColumnAnswerOptions,
}

// QuestionRow is one candidate survey question
type QuestionRow struct {
	Domain        string `json:"domain"`
	Stakeholder   string `json:"stakeholder"`
	MetricArea    string `json:"metric_area"`
	QuestionType  string `json:"question_type"`
	Question      string `json:"question"`
	AnswerOptions string `json:"answer_options"`
}

// Value returns the row's value for a tagged dimension
func (r QuestionRow) Value(c Category) string {
	switch c {
	case CategoryDomain:
		return r.Domain
	case CategoryStakeholder:
		return r.Stakeholder
	case CategoryMetric:
		return r.MetricArea
	case CategoryQuestionType:
		return r.QuestionType
	default:
		return ""
	}
}

// Selection holds the in-progress user choices of one session
type Selection struct {
	Domains       []string `json:"domains"`
	Timeline      int      `json:"timeline"`
	Stakeholders  []string `json:"stakeholders"`
	Metrics       []string `json:"metrics"`
	QuestionTypes []string `json:"question_types"`
}

// NewSelection returns an empty selection with the default timeline
func NewSelection() Selection {
	return Selection{
		Domains:       []string{},
		Timeline:      TimelineDefault,
		Stakeholders:  []string{},
		Metrics:       []string{},
		QuestionTypes: []string{},
	}
}

// Values returns the chosen values for a dimension
func (s Selection) Values(c Category) []string {
	switch c {
	case CategoryDomain:
		return s.Domains
	case CategoryStakeholder:
		return s.Stakeholders
	case CategoryMetric:
		return s.Metrics
	case CategoryQuestionType:
		return s.QuestionTypes
	default:
		return nil
	}
}

// Clone returns a deep copy of the selection
func (s Selection) Clone() Selection {
	return Selection{
		Domains:       append([]string{}, s.Domains...),
		Timeline:      s.Timeline,
		Stakeholders:  append([]string{}, s.Stakeholders...),
		Metrics:       append([]string{}, s.Metrics...),
		QuestionTypes: append([]string{}, s.QuestionTypes...),
	}
}

// RowOverride replaces the question text of a single generated row
type RowOverride struct {
	Row      int    `json:"row"`
	Question string `json:"question"`
}

// Session is the ephemeral state of one generation session
type Session struct {
	ID              string       `json:"session_id"`
	Selection       Selection    `json:"selection"`
	Generated       bool         `json:"generated"`
	Questions       *OutputTable `json:"questions,omitempty"`
	Override        *RowOverride `json:"override,omitempty"`
	IncludePersonal bool         `json:"include_personal"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// PersonalTable is the personal-questions table, kept verbatim
type PersonalTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	clone := *s
	clone.Selection = s.Selection.Clone()
	clone.Questions = s.Questions.Clone()
	if s.Override != nil {
		override := *s.Override
		clone.Override = &override
	}
	return &clone
}
