package handler

import (
	"net/http"

	"buildboard-api/internal/service"
	"buildboard-api/pkg/response"
)

// BoardHandler serves the kanban view and the capacity indicator.
type BoardHandler struct {
	board *service.BoardService
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(board *service.BoardService) *BoardHandler {
	return &BoardHandler{board: board}
}

// Board handles GET /api/v1/board
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.board.Board())
}

// Capacity handles GET /api/v1/capacity
func (h *BoardHandler) Capacity(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.board.Capacity())
}
