// Package ingest validates uploaded tabular files and parses them into a bounded
// structural summary: row count, header columns and at most ten sample rows.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	// MaxSampleRows bounds sample data regardless of parse strategy, to keep both
	// the stored document and the AI prompt small.
	MaxSampleRows = 10

	// DefaultMaxUploadBytes is the upload size ceiling when none is configured.
	DefaultMaxUploadBytes = 10 << 20

	// csvExactParseLimit is the file size up to which CSVs are parsed in full for
	// an exact row count. Larger files are sampled by byte prefix instead.
	csvExactParseLimit = 256 << 10

	// csvPrefixBytes is how much of a large CSV is read for the sampled parse.
	csvPrefixBytes = 64 << 10
)

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// Summary is the structural result of parsing an upload. Err carries a user-facing
// parse failure; a summary never mixes partial results with an error.
type Summary struct {
	RowCount int
	// RowCountEstimated is true when RowCount was extrapolated from a byte-range
	// prefix rather than counted exactly.
	RowCountEstimated bool
	ColumnNames       []string
	SampleData        []map[string]any
	Err               string
}

// Validate gates an upload before any bytes are parsed. Both checks are advisory,
// not security boundaries.
func Validate(filename string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if size > maxBytes {
		return fmt.Errorf("file exceeds the maximum upload size of %d bytes", maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		// excelize reads OOXML only, so legacy BIFF workbooks would pass here
		// and fail deep inside the parser with an unhelpful message.
		return fmt.Errorf("legacy .xls files are not supported, please convert to .xlsx or .csv")
	}
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", ext)
	}
	return nil
}

// Ingest parses an upload into a Summary. Parse failures of any kind are reported
// through Summary.Err; this function never panics past its boundary.
func Ingest(r io.Reader, filename string, size int64) (s *Summary) {
	defer func() {
		if rec := recover(); rec != nil {
			s = &Summary{Err: fmt.Sprintf("failed to parse file: %v", rec)}
		}
	}()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		if size > csvExactParseLimit {
			return ingestCSVPrefix(r, size)
		}
		return ingestCSV(r)
	case ".xlsx":
		return ingestExcel(r)
	default:
		return &Summary{Err: fmt.Sprintf("unsupported file type %q", filepath.Ext(filename))}
	}
}

// ingestCSV parses the whole file for an exact row count.
func ingestCSV(r io.Reader) *Summary {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return &Summary{Err: fmt.Sprintf("failed to parse CSV: %v", err)}
	}
	if len(records) == 0 {
		return &Summary{Err: "file has no header row"}
	}

	header := trimHeader(records[0])
	if len(header) == 0 {
		return &Summary{Err: "file has no header row"}
	}
	if len(records) == 1 {
		return &Summary{Err: "file has no data rows"}
	}

	return &Summary{
		RowCount:    len(records) - 1,
		ColumnNames: header,
		SampleData:  sampleRows(header, records[1:]),
	}
}

// ingestCSVPrefix reads only the leading bytes of a large CSV. The header and up to
// ten rows are parsed from the prefix and the total row count is estimated from the
// observed average line length. The estimate trades exactness for bounded memory.
func ingestCSVPrefix(r io.Reader, size int64) *Summary {
	prefix := make([]byte, csvPrefixBytes)
	n, err := io.ReadFull(r, prefix)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return &Summary{Err: fmt.Sprintf("failed to read file: %v", err)}
	}
	prefix = prefix[:n]

	lines := strings.Split(string(prefix), "\n")
	if n == csvPrefixBytes && len(lines) > 1 {
		// The last line is almost certainly truncated mid-record.
		lines = lines[:len(lines)-1]
	}

	var records [][]string
	var dataBytes int
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil {
			return &Summary{Err: fmt.Sprintf("failed to parse CSV: %v", err)}
		}
		if i > 0 {
			dataBytes += len(line) + 1
		}
		records = append(records, record)
		if len(records) > MaxSampleRows {
			break
		}
	}

	if len(records) == 0 {
		return &Summary{Err: "file has no header row"}
	}
	header := trimHeader(records[0])
	if len(header) == 0 {
		return &Summary{Err: "file has no header row"}
	}
	if len(records) == 1 {
		return &Summary{Err: "file has no data rows"}
	}

	dataRows := records[1:]
	avgLine := float64(dataBytes) / float64(len(dataRows))
	headerBytes := int64(len(lines[0]) + 1)
	estimated := int(float64(size-headerBytes) / avgLine)
	if estimated < len(dataRows) {
		estimated = len(dataRows)
	}

	return &Summary{
		RowCount:          estimated,
		RowCountEstimated: true,
		ColumnNames:       header,
		SampleData:        sampleRows(header, dataRows),
	}
}

// trimHeader strips a UTF-8 byte-order mark and whitespace from header cells. A
// header whose cells are all empty counts as absent.
func trimHeader(cells []string) []string {
	if len(cells) == 0 {
		return nil
	}
	header := make([]string, len(cells))
	nonEmpty := false
	for i, cell := range cells {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		header[i] = strings.TrimSpace(cell)
		if header[i] != "" {
			nonEmpty = true
		}
	}
	if !nonEmpty {
		return nil
	}
	return header
}

// sampleRows converts up to MaxSampleRows raw records into row objects keyed by
// column name. Short rows are padded with null; cells beyond the header are dropped.
func sampleRows(header []string, records [][]string) []map[string]any {
	limit := len(records)
	if limit > MaxSampleRows {
		limit = MaxSampleRows
	}
	rows := make([]map[string]any, 0, limit)
	for _, record := range records[:limit] {
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// readAll buffers a reader; excelize needs an io.Reader it can seek over.
func readAll(r io.Reader) (*bytes.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
