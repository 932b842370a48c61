package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ingestExcel parses an Excel-family workbook: first sheet, row 0 as header. An
// absent header or a sheet with zero data rows is a descriptive error, never a
// silently empty summary.
func ingestExcel(r io.Reader) *Summary {
	buf, err := readAll(r)
	if err != nil {
		return &Summary{Err: fmt.Sprintf("failed to read file: %v", err)}
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		return &Summary{Err: fmt.Sprintf("failed to parse workbook: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Summary{Err: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return &Summary{Err: fmt.Sprintf("failed to read sheet %q: %v", sheets[0], err)}
	}
	if len(rows) == 0 {
		return &Summary{Err: "file has no header row"}
	}

	header := trimHeader(rows[0])
	if len(header) == 0 {
		return &Summary{Err: "file has no header row"}
	}
	if len(rows) == 1 {
		return &Summary{Err: "file has no data rows"}
	}

	return &Summary{
		RowCount:    len(rows) - 1,
		ColumnNames: header,
		SampleData:  sampleRows(header, rows[1:]),
	}
}
