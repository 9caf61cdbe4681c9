package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

const (
	minBoardSize = 3
	maxBoardSize = 10
)

// BoardHandler serves board creation and lookup. Boards are immutable once
// created, so there is no update surface.
type BoardHandler struct {
	boardRepo repository.BoardRepository
}

// NewBoardHandler creates a BoardHandler.
func NewBoardHandler(boardRepo repository.BoardRepository) *BoardHandler {
	if boardRepo == nil {
		panic("BoardRepository cannot be nil for BoardHandler")
	}
	return &BoardHandler{boardRepo: boardRepo}
}

// CreateBoardRequest is the board creation request body. Tasks are given in
// row-major order and must fill the whole grid.
type CreateBoardRequest struct {
	Title string   `json:"title" binding:"required,max=128"`
	Size  int      `json:"size" binding:"required"`
	Tasks []string `json:"tasks" binding:"required"`
}

// Create handles POST /api/boards.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateBoard: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: title, size and tasks are required")
		return
	}
	if req.Size < minBoardSize || req.Size > maxBoardSize {
		ErrorResponse(c, http.StatusBadRequest, "Board size must be between 3 and 10")
		return
	}
	if len(req.Tasks) != req.Size*req.Size {
		ErrorResponse(c, http.StatusBadRequest, "Task count must equal size*size")
		return
	}
	for _, task := range req.Tasks {
		if task == "" {
			ErrorResponse(c, http.StatusBadRequest, "Tasks cannot be empty")
			return
		}
	}

	board := &domain.Board{
		CreatorID:   userID,
		Title:       req.Title,
		Size:        req.Size,
		IsPublished: true,
		Cells:       make([]domain.BoardCell, 0, len(req.Tasks)),
	}
	for i, task := range req.Tasks {
		board.Cells = append(board.Cells, domain.BoardCell{
			RowIndex: i / req.Size,
			ColIndex: i % req.Size,
			Task:     task,
		})
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		logrus.WithError(err).WithField("creator_id", userID).Error("Failed to create board")
		ErrorResponse(c, http.StatusInternalServerError, "Failed to create board")
		return
	}

	logrus.WithFields(logrus.Fields{"board_id": board.ID, "creator_id": userID, "size": board.Size}).Info("Board created")
	SuccessResponse(c, http.StatusCreated, board)
}

// Get handles GET /api/boards/:boardID and returns the board with its cells.
func (h *BoardHandler) Get(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardID")
	if !ok {
		return
	}

	board, err := h.boardRepo.FindByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Board not found")
			return
		}
		logrus.WithError(err).WithField("board_id", boardID).Error("Failed to load board")
		ErrorResponse(c, http.StatusInternalServerError, "Failed to load board")
		return
	}

	SuccessResponse(c, http.StatusOK, board)
}

// parseIDParam parses a positive integer path parameter, writing a 400 on
// failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
