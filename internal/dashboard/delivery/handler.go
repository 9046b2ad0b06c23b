package delivery

import (
	"net/http"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/dashboard/usecase"
	"vidtube-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// Stats handles GET /api/dashboard/stats for the authenticated channel.
func (h *DashboardHandler) Stats(c *gin.Context) {
	channelID := c.GetString(authdelivery.CtxUserIDKey)
	stats, err := h.dashboardUsecase.Stats(c.Request.Context(), channelID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Videos handles GET /api/dashboard/videos, listing every video of the
// authenticated channel including unpublished ones.
func (h *DashboardHandler) Videos(c *gin.Context) {
	channelID := c.GetString(authdelivery.CtxUserIDKey)
	videos, err := h.dashboardUsecase.ChannelVideos(c.Request.Context(), channelID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}
