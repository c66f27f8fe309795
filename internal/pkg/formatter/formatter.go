package formatter

import (
	"fmt"
	"slices"

	"github.com/futig/question-generator/internal/entity"
)

type Formatter interface {
	Format(table *Table) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct {
	docx bool
}

type FactoryOption func(*Factory)

// WithDOCX enables Word export. unioffice refuses to save documents until
// SetDOCXLicense succeeds.
func WithDOCX() FactoryOption {
	return func(f *Factory) {
		f.docx = true
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Formats lists the formats Create accepts, in entity.ResultFormats order
func (f *Factory) Formats() []entity.ResultFormat {
	formats := make([]entity.ResultFormat, 0, len(entity.ResultFormats))
	for _, format := range entity.ResultFormats {
		if format == entity.FormatDOCX && !f.docx {
			continue
		}
		formats = append(formats, format)
	}
	return formats
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	if format.IsValid() && !slices.Contains(f.Formats(), format) {
		return nil, fmt.Errorf("%w: format %s is disabled", entity.ErrUnknownExport, format)
	}

	switch format {
	case entity.FormatCSV:
		return NewCSVFormatter(), nil
	case entity.FormatJSON:
		return NewJSONFormatter(), nil
	case entity.FormatXLSX:
		return NewXLSXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", entity.ErrUnknownExport, format)
	}
}
