package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/futig/question-generator/internal/entity"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// rawTable is a header row plus data records padded to the header width
type rawTable struct {
	header  []string
	records [][]string
}

// readTable reads a delimited text file or the first sheet of an xlsx
// workbook. Cells are whitespace-trimmed when trim is set and kept verbatim
// otherwise. A non-empty cell outside the header is an error.
func readTable(path string, trim bool) (*rawTable, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readExcelRows(path)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", entity.ErrMalformedTable, path)
	}

	clean := func(cells []string) []string { return slices.Clone(cells) }
	if trim {
		clean = trimAll
	}

	header := clean(rows[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	records := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells, err := fitHeader(clean(row), len(header))
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", entity.ErrMalformedTable, path, i+2, err)
		}
		records = append(records, cells)
	}

	return &rawTable{header: header, records: records}, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv file %s: %v", entity.ErrMalformedTable, path, err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", entity.ErrMalformedTable, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", entity.ErrMalformedTable, sheets[0], err)
	}
	return rows, nil
}

// column returns the index of a named header cell
func (t *rawTable) column(name string) (int, error) {
	for i, h := range t.header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", entity.ErrMissingColumn, name)
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// fitHeader pads short xlsx rows, which drop trailing empty cells, and cuts
// empty trailing cells of wide ones
func fitHeader(cells []string, n int) ([]string, error) {
	for len(cells) < n {
		cells = append(cells, "")
	}
	for i := n; i < len(cells); i++ {
		if cells[i] != "" {
			return nil, fmt.Errorf("%d cells but the header has %d columns", len(cells), n)
		}
	}
	return cells[:n], nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
