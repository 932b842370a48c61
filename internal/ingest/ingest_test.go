package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("sales.csv", 100, 0))
	assert.NoError(t, Validate("sales.XLSX", 100, 0))
	assert.Error(t, Validate("sales.json", 100, 0), "extension outside the allow-list")
	assert.Error(t, Validate("sales.csv", DefaultMaxUploadBytes+1, 0), "over the size ceiling")
	assert.Error(t, Validate("sales.csv", 2048, 1024), "over a configured ceiling")
}

func TestValidateRejectsLegacyExcel(t *testing.T) {
	err := Validate("sales.xls", 100, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert to .xlsx or .csv")
}

func TestIngestCSVExact(t *testing.T) {
	data := "id,amount\n1,10\n2,20\n3,30\n"
	s := Ingest(strings.NewReader(data), "sales.csv", int64(len(data)))

	require.Empty(t, s.Err)
	assert.Equal(t, 3, s.RowCount)
	assert.False(t, s.RowCountEstimated)
	assert.Equal(t, []string{"id", "amount"}, s.ColumnNames)
	require.Len(t, s.SampleData, 3)
	assert.Equal(t, "10", s.SampleData[0]["amount"])
}

func TestIngestCSVStripsBOM(t *testing.T) {
	data := "\ufeffid, amount \n1,10\n"
	s := Ingest(strings.NewReader(data), "sales.csv", int64(len(data)))

	require.Empty(t, s.Err)
	assert.Equal(t, []string{"id", "amount"}, s.ColumnNames)
}

func TestIngestCSVSampleTruncatedToTen(t *testing.T) {
	var b strings.Builder
	b.WriteString("id\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	s := Ingest(strings.NewReader(b.String()), "many.csv", int64(b.Len()))

	require.Empty(t, s.Err)
	assert.Equal(t, 25, s.RowCount)
	assert.Len(t, s.SampleData, MaxSampleRows)
}

func TestIngestCSVShortRowsPaddedWithNull(t *testing.T) {
	data := "a,b,c\n1,2\n"
	s := Ingest(strings.NewReader(data), "short.csv", int64(len(data)))

	require.Empty(t, s.Err)
	require.Len(t, s.SampleData, 1)
	assert.Equal(t, "1", s.SampleData[0]["a"])
	assert.Equal(t, "2", s.SampleData[0]["b"])
	assert.Nil(t, s.SampleData[0]["c"])
}

func TestIngestCSVHeaderOnly(t *testing.T) {
	data := "id,amount\n"
	s := Ingest(strings.NewReader(data), "empty.csv", int64(len(data)))

	assert.Equal(t, "file has no data rows", s.Err)
	assert.Empty(t, s.ColumnNames, "error and partial success are mutually exclusive")
	assert.Empty(t, s.SampleData)
}

func TestIngestCSVEmptyFile(t *testing.T) {
	s := Ingest(strings.NewReader(""), "empty.csv", 0)

	assert.Equal(t, "file has no header row", s.Err)
	assert.Empty(t, s.ColumnNames)
}

func TestIngestLargeCSVEstimatesRowCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,amount\n")
	rows := 50_000
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%06d,100.00\n", i)
	}
	data := b.String()
	require.Greater(t, int64(len(data)), int64(csvExactParseLimit))

	s := Ingest(strings.NewReader(data), "big.csv", int64(len(data)))

	require.Empty(t, s.Err)
	assert.True(t, s.RowCountEstimated)
	assert.Equal(t, []string{"id", "amount"}, s.ColumnNames)
	assert.Len(t, s.SampleData, MaxSampleRows)
	// Uniform line lengths make the estimate close to exact.
	assert.InDelta(t, rows, s.RowCount, float64(rows)*0.02)
}

func TestIngestXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"id", "amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{1, 10}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{2, 20}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	s := Ingest(&buf, "sales.xlsx", int64(buf.Len()))

	require.Empty(t, s.Err)
	assert.Equal(t, 2, s.RowCount)
	assert.False(t, s.RowCountEstimated)
	assert.Equal(t, []string{"id", "amount"}, s.ColumnNames)
	require.Len(t, s.SampleData, 2)
	assert.Equal(t, "10", s.SampleData[0]["amount"])
}

func TestIngestXLSXHeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]any{"id"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	s := Ingest(&buf, "empty.xlsx", int64(buf.Len()))
	assert.Equal(t, "file has no data rows", s.Err)
}

func TestIngestCorruptWorkbookReturnsErrorField(t *testing.T) {
	s := Ingest(strings.NewReader("not a workbook"), "broken.xlsx", 14)

	assert.NotEmpty(t, s.Err)
	assert.Empty(t, s.ColumnNames)
}
