package formatter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/futig/question-generator/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

// Exporter renders tables through the factory and memoizes the bytes by
// format and table content
type Exporter struct {
	factory *Factory
	cache   *gocache.Cache
}

func NewExporter(factory *Factory, ttl time.Duration) *Exporter {
	return &Exporter{
		factory: factory,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

// Formats lists the formats the exporter can render
func (e *Exporter) Formats() []entity.ResultFormat {
	return e.factory.Formats()
}

type rendered struct {
	data        []byte
	contentType string
}

// Export renders table in format, reusing earlier output for identical content
func (e *Exporter) Export(name entity.ExportName, table *Table) (*entity.ExportFile, error) {
	key := contentKey(name.Format, table)

	if cached, ok := e.cache.Get(key); ok {
		r := cached.(rendered)
		return newExportFile(name, r), nil
	}

	f, err := e.factory.Create(name.Format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(table)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	r := rendered{data: data, contentType: f.ContentType()}
	e.cache.SetDefault(key, r)

	return newExportFile(name, r), nil
}

func newExportFile(name entity.ExportName, r rendered) *entity.ExportFile {
	return &entity.ExportFile{
		Name:        name.String(),
		ContentType: r.contentType,
		Data:        append([]byte(nil), r.data...),
	}
}

func contentKey(format entity.ResultFormat, table *Table) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", format, table.Title)
	for _, col := range table.Header {
		fmt.Fprintf(h, "%q\x1f", col)
	}
	for _, row := range table.Rows {
		h.Write([]byte{0x1e})
		for _, cell := range row {
			fmt.Fprintf(h, "%T:%q\x1f", cell, cellString(cell))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
