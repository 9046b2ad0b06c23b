package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond writes err as a JSON error response. Unknown errors become a 500
// without leaking internal detail.
func Respond(c *gin.Context, err error) {
	if appErr, ok := As(err); ok {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": CodeStorage})
}
