package export

import (
	"bytes"
	"fmt"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
//
// Every value is wrapped in double quotes as-is; embedded quotes or commas in
// field values are not escaped and will corrupt the affected row. This
// mirrors the exact output format consumers of the export already parse.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	for i, header := range data.Headers {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(header)
	}
	buf.WriteByte('\n')
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(row[header])
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
