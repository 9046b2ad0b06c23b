package delivery

import (
	"net/http"
	"strings"

	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const (
	// CtxUserIDKey holds the authenticated account id on the gin context.
	CtxUserIDKey = "userID"
	// CtxUserKey holds the loaded account (password hash and refresh token
	// excluded from the projection).
	CtxUserKey = "user"

	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// AuthMiddleware resolves the caller identity from a bearer credential: the
// access-token cookie first, falling back to the Authorization header. Every
// failure is the same 401 so clients cannot tell which check rejected them.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized request"})
			c.Abort()
			return
		}

		userID, err := authUsecase.VerifyAccess(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		user, err := authUsecase.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, userID)
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
