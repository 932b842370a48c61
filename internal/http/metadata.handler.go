package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Madelsa/Dataset-publishing/internal/appcontext"
	"github.com/Madelsa/Dataset-publishing/internal/entity"
	"github.com/Madelsa/Dataset-publishing/internal/status"
	"github.com/Madelsa/Dataset-publishing/internal/store"
)

func GetMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
			return
		}

		ds, err := ctx.Store.GetByID(c.Request.Context(), id, false)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
				return
			}
			ctx.Logger.Error("Failed to fetch dataset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dataset"})
			return
		}

		resp := gin.H{
			"suggested": entity.MetadataFields{
				Title:       ds.SuggestedTitle,
				Description: ds.SuggestedDescription,
				Tags:        ds.SuggestedTags,
				Category:    ds.SuggestedCategory,
			},
			"language": ds.MetadataLanguage,
			"status":   status.Display(ds),
		}
		if ds.HasDraft() {
			resp["draft"] = ds.DraftFields()
		}

		c.JSON(http.StatusOK, resp)
	}
}

type generateMetadataRequest struct {
	Language string `json:"language"`
}

// GenerateMetadata asks the AI for a suggestion based on the stored sample rows.
// The suggestion is recorded but the lifecycle state is deliberately untouched:
// AI output is a suggestion, not a submission.
func GenerateMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
			return
		}

		var req generateMetadataRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Language == "" {
			req.Language = entity.LanguageEnglish
		}
		if !entity.ValidLanguage(req.Language) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Language must be one of: en, ar"})
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

		var sampleData []map[string]any
		var columnNames []string
		if ds.File != nil {
			sampleData = ds.File.SampleData
			columnNames = ds.File.ColumnNames
		}

		fields := ctx.Suggester.Suggest(c.Request.Context(), sampleData, columnNames, req.Language)

		status.RecordSuggestion(ds, fields, req.Language)
		if err := ctx.Store.Update(c.Request.Context(), ds); err != nil {
			ctx.Logger.Error("Failed to save suggested metadata", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save suggested metadata"})
			return
		}

		ctx.SearchIndex.IndexDataset(ds)

		c.JSON(http.StatusOK, gin.H{
			"metadata": fields,
			"dataset":  datasetResponse(ds),
		})
	}
}

type saveDraftRequest struct {
	Metadata *entity.MetadataFields `json:"metadata" binding:"required"`
	Language string                 `json:"language"`
}

// SaveMetadataDraft stores the user-edited draft and moves the dataset into
// review. This is also the resubmission path after a rejection.
func SaveMetadataDraft(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
			return
		}

		var req saveDraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must include a metadata object"})
			return
		}
		if req.Language == "" {
			req.Language = entity.LanguageEnglish
		}
		if !entity.ValidLanguage(req.Language) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Language must be one of: en, ar"})
			return
		}

		ds, err := ctx.Store.GetByID(c.Request.Context(), id, false)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
				return
			}
			ctx.Logger.Error("Failed to fetch dataset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dataset"})
			return
		}

		fields := *req.Metadata
		if fields.Tags == nil {
			fields.Tags = []string{}
		}

		status.SaveDraft(ds, fields, req.Language)
		if err := ctx.Store.Update(c.Request.Context(), ds); err != nil {
			ctx.Logger.Error("Failed to save metadata draft", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save metadata draft"})
			return
		}

		ctx.SearchIndex.IndexDataset(ds)

		c.JSON(http.StatusOK, gin.H{"dataset": datasetResponse(ds)})
	}
}
