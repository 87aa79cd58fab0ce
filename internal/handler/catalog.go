package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"buildboard-api/internal/service"
	"buildboard-api/pkg/apierror"
	"buildboard-api/pkg/response"
)

// CatalogHandler serves article lookups.
type CatalogHandler struct {
	board *service.BoardService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(board *service.BoardService) *CatalogHandler {
	return &CatalogHandler{board: board}
}

// Lookup handles GET /api/v1/catalog/{article_number}
func (h *CatalogHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	article := chi.URLParam(r, "article_number")
	if article == "" {
		response.Error(w, apierror.BadRequest("article_number is required"))
		return
	}

	item, err := h.board.LookupItem(r.Context(), article)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	if item == nil {
		response.Error(w, apierror.NotFound("Article number not found"))
		return
	}

	response.OK(w, item)
}
