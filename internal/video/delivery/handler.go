package delivery

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videoUsecase usecase.VideoUsecase
}

func NewVideoHandler(videoUsecase usecase.VideoUsecase) *VideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

// Publish handles POST /api/videos (multipart: title, description,
// videoFile, thumbnail).
func (h *VideoHandler) Publish(c *gin.Context) {
	videoPath, err := saveTempFile(c, "videoFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read video file"})
		return
	}
	thumbPath, err := saveTempFile(c, "thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read thumbnail file"})
		return
	}

	ownerID := c.GetString(authdelivery.CtxUserIDKey)
	video, err := h.videoUsecase.Publish(c.Request.Context(), ownerID, usecase.PublishInput{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"video": video})
}

// Get handles GET /api/videos/:videoId.
func (h *VideoHandler) Get(c *gin.Context) {
	viewerID := c.GetString(authdelivery.CtxUserIDKey)

	view, err := h.videoUsecase.Get(c.Request.Context(), c.Param("videoId"), viewerID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// List handles GET /api/videos?owner_id=&q=&limit=&offset=.
func (h *VideoHandler) List(c *gin.Context) {
	limit, offset := pagination(c, 10)

	videos, total, err := h.videoUsecase.List(c.Request.Context(), c.Query("owner_id"), c.Query("q"), limit, offset)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Update handles PATCH /api/videos/:videoId (multipart: optional title,
// description, thumbnail).
func (h *VideoHandler) Update(c *gin.Context) {
	thumbPath, err := saveTempFile(c, "thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read thumbnail file"})
		return
	}

	callerID := c.GetString(authdelivery.CtxUserIDKey)
	video, err := h.videoUsecase.Update(c.Request.Context(), callerID, c.Param("videoId"), usecase.UpdateInput{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

// Delete handles DELETE /api/videos/:videoId.
func (h *VideoHandler) Delete(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	if err := h.videoUsecase.Delete(c.Request.Context(), callerID, c.Param("videoId")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}

// TogglePublish handles PATCH /api/videos/:videoId/publish.
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	callerID := c.GetString(authdelivery.CtxUserIDKey)
	video, err := h.videoUsecase.TogglePublish(c.Request.Context(), callerID, c.Param("videoId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

// LikedVideos handles GET /api/likes/videos.
func (h *VideoHandler) LikedVideos(c *gin.Context) {
	userID := c.GetString(authdelivery.CtxUserIDKey)
	videos, err := h.videoUsecase.LikedVideos(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func saveTempFile(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	dst := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
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
	return limit, offset
}
