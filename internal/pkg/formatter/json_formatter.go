package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	jsonContentType   = "application/json"
	jsonFileExtension = ".json"
)

// JSONFormatter writes an array of records whose keys follow the header order
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (jf *JSONFormatter) Format(table *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, row := range table.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, key := range table.Header {
			if j > 0 {
				buf.WriteByte(',')
			}

			var value any
			if j < len(row) {
				value = row[j]
			}

			if err := writeJSONPair(&buf, key, value); err != nil {
				return nil, fmt.Errorf("encode row %d: %w", i, err)
			}
		}
		buf.WriteByte('}')
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	if value == nil {
		value = ""
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}

	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func (jf *JSONFormatter) ContentType() string {
	return jsonContentType
}

func (jf *JSONFormatter) FileExtension() string {
	return jsonFileExtension
}
