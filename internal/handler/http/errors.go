package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/service"
)

// HandleServiceError translates service errors into HTTP responses. All
// business errors become 4xx; anything unmapped is a 500 with a generic body.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrNotHost),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotInvitee):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrBoardNotFound),
		errors.Is(err, service.ErrCellNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvitationNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoomNotJoinable),
		errors.Is(err, service.ErrGameNotActive),
		errors.Is(err, service.ErrInviteResolved),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrCellLocked),
		errors.Is(err, service.ErrInvitePending):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRegistrationFailed),
		errors.Is(err, service.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
