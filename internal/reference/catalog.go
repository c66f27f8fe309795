package reference

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/futig/question-generator/internal/entity"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed descriptions.yaml
var defaultDescriptions []byte

// Catalog holds the human-readable description of every category value
type Catalog struct {
	Domains       map[string]string `yaml:"domains"`
	Stakeholders  map[string]string `yaml:"stakeholders"`
	Metrics       map[string]string `yaml:"metrics"`
	QuestionTypes map[string]string `yaml:"question_types"`
}

// Default returns the catalog shipped with the binary
func Default() (*Catalog, error) {
	return Parse(defaultDescriptions)
}

// Load reads a catalog from a YAML file, falling back to the embedded one when
// path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}

	for _, cat := range entity.Categories {
		m, _ := c.Mapping(cat)
		if len(m) == 0 {
			return nil, fmt.Errorf("reference data has no %s descriptions", cat)
		}
	}

	return &c, nil
}

// Mapping returns the description map of one category
func (c *Catalog) Mapping(cat entity.Category) (map[string]string, error) {
	switch cat {
	case entity.CategoryDomain:
		return c.Domains, nil
	case entity.CategoryStakeholder:
		return c.Stakeholders, nil
	case entity.CategoryMetric:
		return c.Metrics, nil
	case entity.CategoryQuestionType:
		return c.QuestionTypes, nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownCategory, cat)
	}
}

// DescriptionOf looks up the description of a category value
func (c *Catalog) DescriptionOf(cat entity.Category, key string) (string, error) {
	m, err := c.Mapping(cat)
	if err != nil {
		return "", err
	}

	desc, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %s %q", entity.ErrUnknownCategoryValue, cat, key)
	}
	return desc, nil
}

// Keys returns the sorted keys of one category
func (c *Catalog) Keys(cat entity.Category) []string {
	m, _ := c.Mapping(cat)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every tagged value in rows has a description. All
// missing values are reported together, each with the first data row it
// appears on (1-based, header excluded).
func (c *Catalog) Validate(rows []entity.QuestionRow) error {
	var errs error
	seen := make(map[string]bool)

	for i, row := range rows {
		for _, cat := range entity.Categories {
			value := row.Value(cat)
			key := string(cat) + "\x00" + value
			if seen[key] {
				continue
			}
			seen[key] = true

			if _, err := c.DescriptionOf(cat, value); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("row %d: %w", i+1, err))
			}
		}
	}

	return errs
}
