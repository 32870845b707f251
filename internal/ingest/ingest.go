// Package ingest parses uploaded spreadsheet files into raw rows for the
// pipeline. It owns no schema knowledge; headers pass through verbatim and
// the normalizer decides what they mean.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/repleniq/backend-go/internal/domain"
)

// ReadFile dispatches on the file extension. Only .xlsx and .csv are
// supported.
func ReadFile(path string) ([]domain.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file extension for %s (expected .xlsx or .csv)", path)
	}
}

// ReadCSV reads header-keyed rows from a CSV stream. Blank cells become nil
// values so downstream absence handling stays uniform with XLSX input.
func ReadCSV(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	rows := make([]domain.RawRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		rows = append(rows, rowFromRecord(header, record))
	}

	return rows, nil
}

func rowFromRecord(header, record []string) domain.RawRow {
	row := make(domain.RawRow, 0, len(header))
	for i, key := range header {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		cell := domain.RawCell{Header: key}
		if i < len(record) {
			if value := strings.TrimSpace(record[i]); value != "" {
				cell.Value = value
			}
		}
		row = append(row, cell)
	}
	return row
}
