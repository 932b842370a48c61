package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Madelsa/Dataset-publishing/internal/appcontext"
	"github.com/Madelsa/Dataset-publishing/internal/entity"
	"github.com/Madelsa/Dataset-publishing/internal/store"
)

// DownloadDataset streams a file regenerated from the stored sample rows. This is
// a preview of the dataset's shape, not the original byte-for-byte upload.
func DownloadDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
			return
		}

		format := c.DefaultQuery("format", "csv")
		if format != "csv" && format != "xlsx" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Format must be csv or xlsx"})
			return
		}

		ds, err := ctx.Store.GetByID(c.Request.Context(), id, true)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
				return
			}
			ctx.Logger.Error("Failed to fetch dataset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dataset"})
			return
		}
		if ds.File == nil || len(ds.File.ColumnNames) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dataset has no file data to download"})
			return
		}

		var (
			payload     []byte
			contentType string
		)
		if format == "xlsx" {
			payload, err = buildXLSX(ds.File)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		} else {
			payload, err = buildCSV(ds.File)
			contentType = "text/csv"
		}
		if err != nil {
			ctx.Logger.Error("Failed to regenerate file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate file"})
			return
		}

		filename := fmt.Sprintf("%s.%s", ds.Name, format)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, contentType, payload)
	}
}

func fileRows(fm *entity.FileMetadata) [][]string {
	rows := make([][]string, 0, len(fm.SampleData)+1)
	rows = append(rows, fm.ColumnNames)
	for _, sample := range fm.SampleData {
		row := make([]string, len(fm.ColumnNames))
		for i, col := range fm.ColumnNames {
			if v := sample[col]; v != nil {
				if s, ok := v.(string); ok {
					row[i] = s
				} else {
					row[i] = fmt.Sprintf("%v", v)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func buildCSV(fm *entity.FileMetadata) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range fileRows(fm) {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildXLSX(fm *entity.FileMetadata) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range fileRows(fm) {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		addr, err := excelize.JoinCellName("A", i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
