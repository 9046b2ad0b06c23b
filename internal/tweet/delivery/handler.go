package delivery

import (
	"net/http"
	"strconv"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/tweet/usecase"
	"vidtube-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUsecase usecase.TweetUsecase
}

func NewTweetHandler(tweetUsecase usecase.TweetUsecase) *TweetHandler {
	return &TweetHandler{tweetUsecase: tweetUsecase}
}

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create handles POST /api/tweets.
func (h *TweetHandler) Create(c *gin.Context) {
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := c.GetString(authdelivery.CtxUserIDKey)
	tweet, err := h.tweetUsecase.Create(c.Request.Context(), ownerID, req.Content)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tweet": tweet})
}

// ListByUser handles GET /api/tweets/user/:userId.
func (h *TweetHandler) ListByUser(c *gin.Context) {
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

	tweets, total, err := h.tweetUsecase.ListByUser(c.Request.Context(), c.Param("userId"), limit, offset)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tweets": tweets,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Update handles PATCH /api/tweets/:tweetId.
func (h *TweetHandler) Update(c *gin.Context) {
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.GetString(authdelivery.CtxUserIDKey)
	tweet, err := h.tweetUsecase.Update(c.Request.Context(), callerID, c.Param("tweetId"), req.Content)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tweet": tweet})
}

// Delete handles DELETE /api/tweets/:tweetId.
func (h *TweetHandler) Delete(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	if err := h.tweetUsecase.Delete(c.Request.Context(), callerID, c.Param("tweetId")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tweet deleted"})
}
