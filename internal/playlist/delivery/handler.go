package delivery

import (
	"net/http"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/playlist/usecase"
	"vidtube-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistUsecase usecase.PlaylistUsecase
}

func NewPlaylistHandler(playlistUsecase usecase.PlaylistUsecase) *PlaylistHandler {
	return &PlaylistHandler{playlistUsecase: playlistUsecase}
}

type createPlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /api/playlists.
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := c.GetString(authdelivery.CtxUserIDKey)
	playlist, err := h.playlistUsecase.Create(c.Request.Context(), usecase.CreateInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"playlist": playlist})
}

// ListByUser handles GET /api/playlists/user/:userId.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	playlists, err := h.playlistUsecase.ListByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

// Get handles GET /api/playlists/:playlistId.
func (h *PlaylistHandler) Get(c *gin.Context) {
	view, err := h.playlistUsecase.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": view})
}

// Update handles PATCH /api/playlists/:playlistId.
func (h *PlaylistHandler) Update(c *gin.Context) {
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.GetString(authdelivery.CtxUserIDKey)
	playlist, err := h.playlistUsecase.Update(c.Request.Context(), callerID, c.Param("playlistId"), usecase.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": playlist})
}

// Delete handles DELETE /api/playlists/:playlistId.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	if err := h.playlistUsecase.Delete(c.Request.Context(), callerID, c.Param("playlistId")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}

// AddVideo handles POST /api/playlists/:playlistId/videos/:videoId.
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	err := h.playlistUsecase.AddVideo(c.Request.Context(), callerID, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video added to playlist"})
}

// RemoveVideo handles DELETE /api/playlists/:playlistId/videos/:videoId.
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	err := h.playlistUsecase.RemoveVideo(c.Request.Context(), callerID, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video removed from playlist"})
}
