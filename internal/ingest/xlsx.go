package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/repleniq/backend-go/internal/domain"
)

// ReadXLSX reads the first sheet of an XLSX workbook into header-keyed rows.
// The first row is the header; subsequent rows become one map each. Cells are
// kept as raw strings, blank cells as nil.
func ReadXLSX(path string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheets[0], err)
	}
	defer iter.Close()

	var header []string
	rows := make([]domain.RawRow, 0)

	for iter.Next() {
		record, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row from %s: %w", path, err)
		}

		if header == nil {
			header = record
			continue
		}

		rows = append(rows, rowFromRecord(header, record))
	}

	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate rows in %s: %w", path, err)
	}

	return rows, nil
}
