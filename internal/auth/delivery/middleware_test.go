package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuth wires a single known token to a single known user.
type stubAuth struct {
	usecase.AuthUsecase
	validToken string
	user       *authdomain.User
}

func (s *stubAuth) VerifyAccess(token string) (string, error) {
	if token == s.validToken {
		return s.user.ID, nil
	}
	return "", assert.AnError
}

func (s *stubAuth) GetUser(ctx context.Context, id string) (*authdomain.User, error) {
	if id == s.user.ID {
		return s.user, nil
	}
	return nil, assert.AnError
}

func newProtectedRouter(auth usecase.AuthUsecase) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(CtxUserIDKey)})
	})
	return r
}

func newStub() *stubAuth {
	return &stubAuth{
		validToken: "good-token",
		user:       &authdomain.User{ID: "user-1", Username: "alice"},
	}
}

func TestAuthMiddlewareCookie(t *testing.T) {
	r := newProtectedRouter(newStub())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	r := newProtectedRouter(newStub())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareCookieWinsOverHeader(t *testing.T) {
	r := newProtectedRouter(newStub())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "bad-token"})
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The cookie is consulted first; a bad cookie is not papered over by
	// a valid header.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newProtectedRouter(newStub())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newProtectedRouter(newStub())

	for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newProtectedRouter(newStub())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
