package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/service"
)

// InvitationHandler serves room invitations.
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler creates an InvitationHandler.
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	if invitationService == nil {
		panic("InvitationService cannot be nil for InvitationHandler")
	}
	return &InvitationHandler{invitationService: invitationService}
}

// InviteRequest is the invitation request body.
type InviteRequest struct {
	ToUserID uint `json:"to_user_id" binding:"required"`
}

// Invite handles POST /api/rooms/:roomID/invite.
func (h *InvitationHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := parseIDParam(c, "roomID")
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Invite: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: to_user_id is required")
		return
	}

	inv, err := h.invitationService.Invite(c.Request.Context(), roomID, userID, req.ToUserID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, inv)
}

// Accept handles POST /api/invitations/:invitationID/accept.
func (h *InvitationHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := parseIDParam(c, "invitationID")
	if !ok {
		return
	}

	participant, err := h.invitationService.Accept(c.Request.Context(), invitationID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, participant)
}

// Decline handles POST /api/invitations/:invitationID/decline.
func (h *InvitationHandler) Decline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := parseIDParam(c, "invitationID")
	if !ok {
		return
	}

	if err := h.invitationService.Decline(c.Request.Context(), invitationID, userID); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "Invitation declined"})
}

// ListPending handles GET /api/invitations and returns the caller's open
// invitations.
func (h *InvitationHandler) ListPending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invs, err := h.invitationService.ListPending(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"invitations": invs})
}
