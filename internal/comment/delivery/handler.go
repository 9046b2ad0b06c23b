package delivery

import (
	"net/http"
	"strconv"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/comment/usecase"
	"vidtube-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUsecase usecase.CommentUsecase
}

func NewCommentHandler(commentUsecase usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// List handles GET /api/videos/:videoId/comments.
func (h *CommentHandler) List(c *gin.Context) {
	limit := 10
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	comments, total, err := h.commentUsecase.ListByVideo(c.Request.Context(), c.Param("videoId"), limit, offset)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// Add handles POST /api/videos/:videoId/comments.
func (h *CommentHandler) Add(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := c.GetString(authdelivery.CtxUserIDKey)
	comment, err := h.commentUsecase.Add(c.Request.Context(), ownerID, c.Param("videoId"), req.Content)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Update handles PATCH /api/comments/:commentId.
func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.GetString(authdelivery.CtxUserIDKey)
	comment, err := h.commentUsecase.Update(c.Request.Context(), callerID, c.Param("commentId"), req.Content)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// Delete handles DELETE /api/comments/:commentId.
func (h *CommentHandler) Delete(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	if err := h.commentUsecase.Delete(c.Request.Context(), callerID, c.Param("commentId")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
