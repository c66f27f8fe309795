package reference

import "github.com/futig/question-generator/internal/entity"

type Catalog interface {
	Mapping(cat entity.Category) (map[string]string, error)
}
