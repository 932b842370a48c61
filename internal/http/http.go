package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madelsa/Dataset-publishing/internal/appcontext"
	"github.com/Madelsa/Dataset-publishing/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupDatasetRoutes(v1)

	h.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (h *APIService) setupDatasetRoutes(group *gin.RouterGroup) {
	datasets := group.Group("/datasets")

	datasets.POST("", CreateDataset(h.context))
	datasets.GET("", ListDatasets(h.context))
	datasets.GET("/search", SearchDatasets(h.context))
	datasets.GET("/:datasetID", GetDataset(h.context))
	datasets.DELETE("/:datasetID", DeleteDataset(h.context))

	datasets.GET("/:datasetID/metadata", GetMetadata(h.context))
	datasets.POST("/:datasetID/metadata", GenerateMetadata(h.context))
	datasets.PUT("/:datasetID/metadata", SaveMetadataDraft(h.context))

	datasets.PUT("/:datasetID/publish", PublishDataset(h.context))
	datasets.GET("/:datasetID/download", DownloadDataset(h.context))
}
