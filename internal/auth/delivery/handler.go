package delivery

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/apperr"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// Register handles POST /api/auth/register (multipart: profile fields plus
// optional avatar and coverImage files).
func (h *AuthHandler) Register(c *gin.Context) {
	avatarPath, err := saveTempFile(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar file"})
		return
	}
	coverPath, err := saveTempFile(c, "coverImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read cover image file"})
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Username:       c.PostForm("username"),
		Email:          c.PostForm("email"),
		Password:       c.PostForm("password"),
		FullName:       c.PostForm("full_name"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.Login(c.Request.Context(), usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(CtxUserIDKey)
	if err := h.authUsecase.Logout(c.Request.Context(), userID); err != nil {
		apperr.Respond(c, err)
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RefreshToken handles POST /api/auth/refresh. The refresh token comes from
// the cookie slot or from the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if token == "" {
		var req authdto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	tokens, err := h.authUsecase.RedeemRefresh(c.Request.Context(), token)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get(CtxUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req authdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(CtxUserIDKey)
	if err := h.authUsecase.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	var req authdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(CtxUserIDKey)
	user, err := h.authUsecase.UpdateAccount(c.Request.Context(), userID, req.FullName, req.Email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.authUsecase.UpdateAvatar)
}

func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.authUsecase.UpdateCoverImage)
}

func (h *AuthHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID, localPath string) (*authdomain.User, error)) {
	localPath, err := saveTempFile(c, field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	userID := c.GetString(CtxUserIDKey)
	user, err := update(c.Request.Context(), userID, localPath)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Channel(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString(CtxUserIDKey)

	profile, err := h.authUsecase.ChannelProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) WatchHistory(c *gin.Context) {
	userID := c.GetString(CtxUserIDKey)
	limit, offset := pagination(c, 20)

	entries, err := h.authUsecase.WatchHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookieName, accessToken, int(h.config.AccessTokenExpiry.Seconds()), "/", "", h.config.CookieSecure, true)
	c.SetCookie(refreshCookieName, refreshToken, int(h.config.RefreshTokenExpiry.Seconds()), "/", "", h.config.CookieSecure, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookieName, "", -1, "/", "", h.config.CookieSecure, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.config.CookieSecure, true)
}

// saveTempFile stores an uploaded form file in the OS temp dir and returns
// its path. An absent file is not an error; the empty path means "no file".
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
