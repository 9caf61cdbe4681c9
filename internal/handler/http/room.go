package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/service"
)

// RoomHandler serves the HTTP mirror of the room lifecycle. Realtime clients
// drive the same operations over the socket; the REST surface exists for
// lobby browsing and non-realtime clients.
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	if roomService == nil {
		panic("RoomService cannot be nil for RoomHandler")
	}
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest is the room creation request body.
type CreateRoomRequest struct {
	BoardID    uint            `json:"board_id" binding:"required"`
	MaxPlayers int             `json:"max_players" binding:"omitempty,min=2,max=16"`
	IsPrivate  bool            `json:"is_private"`
	Password   string          `json:"password"`
	GameMode   domain.GameMode `json:"game_mode"`
}

// Create handles POST /api/rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateRoom: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: board_id is required")
		return
	}
	if req.IsPrivate && req.Password == "" {
		ErrorResponse(c, http.StatusBadRequest, "Private rooms require a password")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), service.CreateRoomParams{
		BoardID:    req.BoardID,
		HostID:     userID,
		MaxPlayers: req.MaxPlayers,
		IsPrivate:  req.IsPrivate,
		Password:   req.Password,
		GameMode:   req.GameMode,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, room)
}

// List handles GET /api/rooms and returns rooms accepting players.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.ListOpenRooms(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"rooms": rooms})
}

// Get handles GET /api/rooms/:roomID and returns the room with its
// participants.
func (h *RoomHandler) Get(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomID")
	if !ok {
		return
	}

	room, err := h.roomService.FindRoomByID(c.Request.Context(), roomID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	participants, err := h.roomService.Participants(c.Request.Context(), roomID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"room":         room,
		"participants": participants,
	})
}

// JoinRoomRequest carries the optional password for private rooms.
type JoinRoomRequest struct {
	Password string `json:"password"`
}

// Join handles POST /api/rooms/:roomID/join.
func (h *RoomHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := parseIDParam(c, "roomID")
	if !ok {
		return
	}

	var req JoinRoomRequest
	// body is optional for public rooms
	_ = c.ShouldBindJSON(&req)

	participant, err := h.roomService.JoinRoom(c.Request.Context(), roomID, userID, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, participant)
}

// Leave handles POST /api/rooms/:roomID/leave.
func (h *RoomHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := parseIDParam(c, "roomID")
	if !ok {
		return
	}

	roomDeleted, err := h.roomService.LeaveRoom(c.Request.Context(), roomID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"message":      "Left room",
		"room_deleted": roomDeleted,
	})
}

// Ready handles POST /api/rooms/:roomID/ready and toggles the caller's ready
// flag.
func (h *RoomHandler) Ready(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := parseIDParam(c, "roomID")
	if !ok {
		return
	}

	ready, err := h.roomService.ToggleReady(c.Request.Context(), roomID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"is_ready": ready})
}

// Start handles POST /api/rooms/:roomID/start.
func (h *RoomHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := parseIDParam(c, "roomID")
	if !ok {
		return
	}

	room, err := h.roomService.StartGame(c.Request.Context(), roomID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, room)
}
