package session

import (
	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/formatter"
)

// QuestionGenerator is the selection pipeline over the question table
type QuestionGenerator interface {
	Candidates(sel entity.Selection) entity.Candidates
	StakeholderCandidates(domains []string) []string
	MetricCandidates(stakeholders []string) []string
	QuestionTypeCandidates(metrics []string) []string
	Describe(cat entity.Category, values []string) ([]entity.Option, error)
	Generate(sel entity.Selection) *entity.OutputTable
}

type Exporter interface {
	Export(name entity.ExportName, table *formatter.Table) (*entity.ExportFile, error)
	Formats() []entity.ResultFormat
}
