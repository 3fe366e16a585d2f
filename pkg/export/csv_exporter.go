package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Fill is a cell background colour.
type Fill struct {
	R, G, B int
}

// Dataset defines tabular export content. Fills, when set, runs parallel to
// Rows and colours individual cells in formats that support it.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	Fills   []map[string]Fill
}

func (d Dataset) fill(row int, header string) (Fill, bool) {
	if row >= len(d.Fills) || d.Fills[row] == nil {
		return Fill{}, false
	}
	f, ok := d.Fills[row][header]
	return f, ok
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct {
	// LineSeparator replaces newlines inside cell values. Empty keeps them,
	// quoted, as encoding/csv does.
	LineSeparator string
}

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
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			value := row[header]
			if e.LineSeparator != "" {
				value = strings.ReplaceAll(value, "\n", e.LineSeparator)
			}
			record[i] = value
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
