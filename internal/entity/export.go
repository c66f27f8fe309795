package entity

import (
	"fmt"
	"strings"
)

type ResultFormat string

const (
	FormatCSV      ResultFormat = "csv"
	FormatJSON     ResultFormat = "json"
	FormatXLSX     ResultFormat = "xlsx"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
	FormatMarkdown ResultFormat = "markdown"
)

// ResultFormats lists every supported export format
var ResultFormats = []ResultFormat{
	FormatCSV,
	FormatJSON,
	FormatXLSX,
	FormatPDF,
	FormatDOCX,
	FormatMarkdown,
}

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatCSV, FormatJSON, FormatXLSX, FormatPDF, FormatDOCX, FormatMarkdown:
		return true
	default:
		return false
	}
}

// Extension returns the file extension of the format, dot included
func (f ResultFormat) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// ExportKind is the table an export is built from
type ExportKind string

const (
	ExportFinal    ExportKind = "finalQuestions"
	ExportModified ExportKind = "finalQuestionsModified"
	ExportPersonal ExportKind = "personalQuestions"
)

// ExportKinds lists every export kind
var ExportKinds = []ExportKind{ExportFinal, ExportModified, ExportPersonal}

// ExportName identifies an export file such as finalQuestions.csv
type ExportName struct {
	Kind   ExportKind
	Format ResultFormat
}

func (n ExportName) String() string {
	return string(n.Kind) + n.Format.Extension()
}

// ParseExportName resolves a download file name against the enabled formats
func ParseExportName(name string, formats []ResultFormat) (ExportName, error) {
	for _, kind := range ExportKinds {
		for _, format := range formats {
			candidate := ExportName{Kind: kind, Format: format}
			if strings.EqualFold(candidate.String(), name) {
				return candidate, nil
			}
		}
	}
	return ExportName{}, fmt.Errorf("%w: %s", ErrUnknownExport, name)
}

// ExportFile is a rendered export ready for download
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
