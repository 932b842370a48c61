package http

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Madelsa/Dataset-publishing/internal/appcontext"
	"github.com/Madelsa/Dataset-publishing/internal/entity"
	"github.com/Madelsa/Dataset-publishing/internal/ingest"
	"github.com/Madelsa/Dataset-publishing/internal/status"
	"github.com/Madelsa/Dataset-publishing/internal/store"
)

var datasetNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]{0,99}$`)

func CreateDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if !datasetNameRe.MatchString(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dataset name must be alphanumeric and at most 100 characters"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file in request"})
			return
		}

		if err := ingest.Validate(file.Filename, file.Size, ctx.MaxUploadBytes); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		exists, err := ctx.Store.ExistsByName(c.Request.Context(), name)
		if err != nil {
			ctx.Logger.Error("Failed to check dataset name", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check dataset name"})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A dataset with this name already exists"})
			return
		}

		src, err := file.Open()
		if err != nil {
			ctx.Logger.Error("Failed to open uploaded file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer src.Close()

		summary := ingest.Ingest(src, file.Filename, file.Size)
		if summary.Err != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": summary.Err})
			return
		}

		fileType := file.Header.Get("Content-Type")
		if fileType == "" {
			fileType = "application/octet-stream"
		}

		ds := &entity.Dataset{
			Name:         name,
			Description:  c.PostForm("description"),
			ContactEmail: c.PostForm("contact_email"),
			Status:       string(status.NeedsMetadata),
		}
		fm := &entity.FileMetadata{
			OriginalName:      file.Filename,
			FileSize:          file.Size,
			FileType:          fileType,
			RowCount:          summary.RowCount,
			RowCountEstimated: summary.RowCountEstimated,
			ColumnNames:       summary.ColumnNames,
			SampleData:        summary.SampleData,
		}

		if err := ctx.Store.Create(c.Request.Context(), ds, fm); err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A dataset with this name already exists"})
				return
			}
			ctx.Logger.Error("Failed to create dataset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dataset"})
			return
		}

		ctx.SearchIndex.IndexDataset(ds)

		c.JSON(http.StatusCreated, gin.H{"dataset": datasetResponse(ds)})
	}
}

func ListDatasets(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasets, err := ctx.Store.ListAll(c.Request.Context())
		if err != nil {
			ctx.Logger.Error("Failed to list datasets", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list datasets"})
			return
		}

		items := make([]map[string]any, 0, len(datasets))
		for i := range datasets {
			items = append(items, datasetListItem(&datasets[i]))
		}

		c.JSON(http.StatusOK, gin.H{"datasets": items})
	}
}

func GetDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
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

		c.JSON(http.StatusOK, gin.H{"dataset": datasetResponse(ds)})
	}
}

func DeleteDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
			return
		}

		if err := ctx.Store.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
				return
			}
			ctx.Logger.Error("Failed to delete dataset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dataset"})
			return
		}

		ctx.SearchIndex.RemoveDataset(id)

		c.JSON(http.StatusOK, gin.H{"message": "Dataset deleted"})
	}
}

func SearchDatasets(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
			return
		}
		if ctx.SearchIndex == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not configured"})
			return
		}

		hits, err := ctx.SearchIndex.Search(query)
		if err != nil {
			ctx.Logger.Error("Failed to perform search", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform search"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": hits})
	}
}

// datasetID parses the path parameter, answering 400 itself on bad input.
func datasetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("datasetID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID"})
		return uuid.Nil, false
	}
	return id, true
}

// datasetResponse is the detail-view shape: the full record plus the derived
// display status. displayStatus is computed here, at the API boundary, and
// nowhere else.
func datasetResponse(ds *entity.Dataset) map[string]any {
	resp := map[string]any{
		"id":            ds.ID,
		"name":          ds.Name,
		"description":   ds.Description,
		"status":        ds.Status,
		"displayStatus": status.Display(ds),
		"hasMetadata":   ds.HasDraft(),
		"language":      ds.MetadataLanguage,
		"created_at":    ds.CreatedAt,
		"updated_at":    ds.UpdatedAt,
	}
	if ds.ReviewComment != nil {
		resp["review_comment"] = *ds.ReviewComment
	}
	if ds.ReviewedBy != "" {
		resp["reviewed_by"] = ds.ReviewedBy
	}
	if ds.PublishedAt != nil {
		resp["published_at"] = ds.PublishedAt
	}
	if ds.File != nil {
		resp["file"] = ds.File
	}
	return resp
}

// datasetListItem is the list-view shape: no sample data, no suggestion bodies.
func datasetListItem(ds *entity.Dataset) map[string]any {
	item := map[string]any{
		"id":            ds.ID,
		"name":          ds.Name,
		"description":   ds.Description,
		"displayStatus": status.Display(ds),
		"hasMetadata":   ds.HasDraft(),
		"created_at":    ds.CreatedAt,
		"updated_at":    ds.UpdatedAt,
	}
	if ds.File != nil {
		item["file"] = map[string]any{
			"original_name":       ds.File.OriginalName,
			"file_size":           ds.File.FileSize,
			"file_type":           ds.File.FileType,
			"row_count":           ds.File.RowCount,
			"row_count_estimated": ds.File.RowCountEstimated,
			"column_names":        ds.File.ColumnNames,
		}
	}
	return item
}
