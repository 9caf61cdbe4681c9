// Package websocket upgrades authenticated HTTP requests into hub clients.
package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/hub"
	"github.com/mertkozcan/gridlock-server/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the SPA is served from a different origin during development; token
	// auth on the upgrade request is the actual gate
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades connections and hands them to the hub.
type Handler struct {
	hub *hub.Hub
}

// NewHandler creates a websocket Handler.
func NewHandler(h *hub.Hub) *Handler {
	if h == nil {
		panic("Hub cannot be nil for websocket Handler")
	}
	return &Handler{hub: h}
}

// Serve handles GET /ws. The Auth middleware has already validated the token
// (via header or ?token= query parameter) and stored the user ID.
func (h *Handler) Serve(c *gin.Context) {
	userIDAny, exists := c.Get(middleware.UserIDKey)
	if !exists {
		logrus.Warn("WebSocket upgrade rejected: user ID missing from context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("WebSocket upgrade rejected: user ID in context is not uint")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		logrus.WithError(err).WithField("user_id", userID).Warn("WebSocket upgrade failed")
		return
	}

	client := hub.NewClient(h.hub, conn, userID)
	if !h.hub.Register(client) {
		logrus.WithField("user_id", userID).Error("Hub saturated, closing new websocket connection")
		conn.Close()
		return
	}

	logrus.WithField("user_id", userID).Info("WebSocket connection established")
	client.Run()
}
