package delivery

import (
	"net/http"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/engagement/domain"
	"vidtube-backend/internal/engagement/usecase"
	"vidtube-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	toggleUsecase usecase.ToggleUsecase
}

func NewEngagementHandler(toggleUsecase usecase.ToggleUsecase) *EngagementHandler {
	return &EngagementHandler{toggleUsecase: toggleUsecase}
}

// ToggleSubscription handles POST /api/subscriptions/:channelId.
func (h *EngagementHandler) ToggleSubscription(c *gin.Context) {
	h.toggle(c, domain.KindChannel, c.Param("channelId"))
}

// ToggleVideoLike handles POST /api/likes/video/:videoId.
func (h *EngagementHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, domain.KindVideo, c.Param("videoId"))
}

// ToggleCommentLike handles POST /api/likes/comment/:commentId.
func (h *EngagementHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, domain.KindComment, c.Param("commentId"))
}

// ToggleTweetLike handles POST /api/likes/tweet/:tweetId.
func (h *EngagementHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, domain.KindTweet, c.Param("tweetId"))
}

func (h *EngagementHandler) toggle(c *gin.Context, kind domain.TargetKind, targetID string) {
	subjectID := c.GetString(authdelivery.CtxUserIDKey)

	result, err := h.toggleUsecase.Toggle(c.Request.Context(), subjectID, kind, targetID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	count, err := h.toggleUsecase.Count(c.Request.Context(), kind, targetID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state": result.State,
		"edge":  result.Edge,
		"count": count,
	})
}

// ChannelSubscribers handles GET /api/subscriptions/:channelId/subscribers.
func (h *EngagementHandler) ChannelSubscribers(c *gin.Context) {
	channelID := c.Param("channelId")

	subscribers, err := h.toggleUsecase.ListSubjects(c.Request.Context(), domain.KindChannel, channelID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscribers": subscribers,
		"count":       len(subscribers),
	})
}

// SubscribedChannels handles GET /api/subscriptions/user/:userId/channels.
func (h *EngagementHandler) SubscribedChannels(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	channels, err := h.toggleUsecase.ListTargets(c.Request.Context(), userID, domain.KindChannel)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"count":    len(channels),
	})
}
