// Package http contains the Gin HTTP handlers.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/middleware"
)

// ErrorResponse writes a JSON error body.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// SuccessResponse writes a JSON success body.
func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// currentUserID reads the authenticated user set by the Auth middleware.
// A missing or mistyped value aborts the request.
func currentUserID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.UserIDKey)
	if !exists {
		logrus.Warn("Handler: user ID not found in context, auth middleware missing or failed")
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("Handler: user ID in context is not uint")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error processing user ID")
		return 0, false
	}
	return userID, true
}
