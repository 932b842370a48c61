package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Madelsa/Dataset-publishing/internal/appcontext"
	"github.com/Madelsa/Dataset-publishing/internal/services"
	"github.com/Madelsa/Dataset-publishing/internal/status"
	"github.com/Madelsa/Dataset-publishing/internal/store"
)

type publishRequest struct {
	Status        string `json:"status" binding:"required"`
	ReviewComment string `json:"reviewComment"`
	Reviewer      string `json:"reviewer"`
}

// PublishDataset records a review decision. Transitions are validated against a
// freshly-read record inside the request; an invalid transition is a 400, never a
// silent status overwrite.
func PublishDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := datasetID(c)
		if !ok {
			return
		}

		var req publishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must include a status of APPROVED or REJECTED"})
			return
		}
		reviewer := req.Reviewer
		if reviewer == "" {
			reviewer = "reviewer"
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

		var decision string
		switch status.Status(req.Status) {
		case status.Approved:
			err = status.Approve(ds, req.ReviewComment, reviewer, time.Now())
			decision = "approved"
		case status.Rejected:
			err = status.Reject(ds, req.ReviewComment, reviewer)
			decision = "rejected"
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be APPROVED or REJECTED"})
			return
		}

		switch {
		case errors.Is(err, status.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Dataset is not pending review",
				"code":  "INVALID_TRANSITION",
			})
			return
		case errors.Is(err, status.ErrCommentRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Rejection requires a review comment",
				"code":  "COMMENT_REQUIRED",
			})
			return
		case err != nil:
			ctx.Logger.Error("Failed to apply review decision", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply review decision"})
			return
		}

		if err := ctx.Store.Update(c.Request.Context(), ds); err != nil {
			ctx.Logger.Error("Failed to save review decision", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review decision"})
			return
		}

		ctx.SearchIndex.IndexDataset(ds)

		if err := services.SendReviewDecisionEmail(ds.ContactEmail, ds.Name, decision, req.ReviewComment); err != nil {
			ctx.Logger.Warn("Failed to send review decision email", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"dataset": datasetResponse(ds)})
	}
}
