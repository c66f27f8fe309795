package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/reference"
	gocache "github.com/patrickmn/go-cache"
)

// Options tune the candidate narrowing rules
type Options struct {
	// NarrowStakeholdersByDomain restricts stakeholder candidates to the
	// chosen domains. When false every stakeholder of the table is offered.
	NarrowStakeholdersByDomain bool
}

// Generator runs the cascading selection pipeline over one question table
type Generator struct {
	rows     []entity.QuestionRow
	catalog  *reference.Catalog
	opts     Options
	tableKey string
	cache    *gocache.Cache
}

// New validates rows against the catalog and returns a generator over them.
// A value without a description is a data-integrity error.
func New(rows []entity.QuestionRow, catalog *reference.Catalog, opts Options) (*Generator, error) {
	if err := catalog.Validate(rows); err != nil {
		return nil, fmt.Errorf("question table is inconsistent with reference data: %w", err)
	}

	owned := make([]entity.QuestionRow, len(rows))
	copy(owned, rows)

	return &Generator{
		rows:     owned,
		catalog:  catalog,
		opts:     opts,
		tableKey: hashRows(owned),
		cache:    gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Catalog returns the reference data used for descriptions
func (g *Generator) Catalog() *reference.Catalog {
	return g.catalog
}

// RowCount returns the size of the source table
func (g *Generator) RowCount() int {
	return len(g.rows)
}

// DomainCandidates lists every distinct domain of the table
func (g *Generator) DomainCandidates() []string {
	return g.distinct(entity.CategoryDomain, "", nil)
}

// StakeholderCandidates lists the stakeholders offered for the chosen domains.
// An empty domain choice does not narrow.
func (g *Generator) StakeholderCandidates(domains []string) []string {
	if !g.opts.NarrowStakeholdersByDomain {
		return g.distinct(entity.CategoryStakeholder, "", nil)
	}
	return g.distinct(entity.CategoryStakeholder, entity.CategoryDomain, domains)
}

// MetricCandidates lists the metric areas offered for the chosen stakeholders
func (g *Generator) MetricCandidates(stakeholders []string) []string {
	return g.distinct(entity.CategoryMetric, entity.CategoryStakeholder, stakeholders)
}

// QuestionTypeCandidates lists the question types offered for the chosen metrics
func (g *Generator) QuestionTypeCandidates(metrics []string) []string {
	return g.distinct(entity.CategoryQuestionType, entity.CategoryMetric, metrics)
}

// Candidates computes every step's candidate list for a selection
func (g *Generator) Candidates(sel entity.Selection) entity.Candidates {
	return entity.Candidates{
		Domains:       g.DomainCandidates(),
		Stakeholders:  g.StakeholderCandidates(sel.Domains),
		Metrics:       g.MetricCandidates(sel.Stakeholders),
		QuestionTypes: g.QuestionTypeCandidates(sel.Metrics),
	}
}

// Describe pairs each value with its reference description
func (g *Generator) Describe(cat entity.Category, values []string) ([]entity.Option, error) {
	options := make([]entity.Option, 0, len(values))
	for _, v := range values {
		desc, err := g.catalog.DescriptionOf(cat, v)
		if err != nil {
			return nil, err
		}
		options = append(options, entity.Option{Value: v, Description: desc})
	}
	return options, nil
}

// Filter returns the rows matching every chosen set. An empty set in any
// dimension matches nothing. Results are memoized per selection.
func (g *Generator) Filter(sel entity.Selection) []entity.QuestionRow {
	key := g.filterKey(sel)
	if cached, ok := g.cache.Get(key); ok {
		return cloneRows(cached.([]entity.QuestionRow))
	}

	domains := toSet(sel.Domains)
	stakeholders := toSet(sel.Stakeholders)
	metrics := toSet(sel.Metrics)
	types := toSet(sel.QuestionTypes)

	matched := make([]entity.QuestionRow, 0)
	for _, row := range g.rows {
		if domains[row.Domain] &&
			stakeholders[row.Stakeholder] &&
			metrics[row.MetricArea] &&
			types[row.QuestionType] {
			matched = append(matched, row)
		}
	}

	g.cache.Set(key, matched, gocache.NoExpiration)
	return cloneRows(matched)
}

// Generate filters the table and builds the output table for a selection
func (g *Generator) Generate(sel entity.Selection) *entity.OutputTable {
	return BuildOutput(g.Filter(sel), sel.Timeline)
}

// BuildOutput annotates filtered rows with a contiguous row number, a false
// relevant flag and the broadcast timeline
func BuildOutput(rows []entity.QuestionRow, timeline int) *entity.OutputTable {
	out := make([]entity.OutputRow, len(rows))
	for i, row := range rows {
		out[i] = entity.OutputRow{
			RowNumber:   i,
			Question:    row.Question,
			Relevant:    false,
			Domain:      row.Domain,
			Timeline:    timeline,
			Stakeholder: row.Stakeholder,
			Metric:      row.MetricArea,
			Options:     row.AnswerOptions,
		}
	}
	return &entity.OutputTable{Rows: out}
}

// distinct returns the distinct values of column in first-appearance order,
// over rows whose by column is in within. Empty within means no restriction.
func (g *Generator) distinct(column, by entity.Category, within []string) []string {
	allowed := toSet(within)
	seen := make(map[string]bool)
	values := make([]string, 0)

	for _, row := range g.rows {
		if len(allowed) > 0 && !allowed[row.Value(by)] {
			continue
		}
		v := row.Value(column)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	return values
}

func (g *Generator) filterKey(sel entity.Selection) string {
	parts := []string{g.tableKey}
	for _, values := range [][]string{sel.Domains, sel.Stakeholders, sel.Metrics, sel.QuestionTypes} {
		sorted := append([]string{}, values...)
		sort.Strings(sorted)
		parts = append(parts, strings.Join(sorted, "\x1f"))
	}
	return strings.Join(parts, "\x1e")
}

func hashRows(rows []entity.QuestionRow) string {
	h := sha256.New()
	for _, r := range rows {
		for _, cell := range []string{r.Domain, r.Stakeholder, r.MetricArea, r.QuestionType, r.Question, r.AnswerOptions} {
			h.Write([]byte(cell))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func cloneRows(rows []entity.QuestionRow) []entity.QuestionRow {
	out := make([]entity.QuestionRow, len(rows))
	copy(out, rows)
	return out
}
