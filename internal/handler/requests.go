package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"buildboard-api/internal/model"
	"buildboard-api/internal/service"
	"buildboard-api/pkg/apierror"
	"buildboard-api/pkg/response"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// RequestHandler handles build request HTTP requests.
type RequestHandler struct {
	board *service.BoardService
}

// NewRequestHandler creates a new build request handler.
func NewRequestHandler(board *service.BoardService) *RequestHandler {
	return &RequestHandler{board: board}
}

// CommandResult is returned by status and flag commands. Applied is false
// when the id matched no request; nothing changes in that case.
type CommandResult struct {
	Applied bool                `json:"applied"`
	Request *model.BuildRequest `json:"request,omitempty"`
}

// StatusUpdate is the body of PUT /requests/{id}/status.
type StatusUpdate struct {
	Status model.Status `json:"status"`
}

// List handles GET /api/v1/requests
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests := h.board.Requests()
	response.List(w, requests, len(requests))
}

// Submit handles POST /api/v1/requests
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	created, err := h.board.Submit(r.Context(), req)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}

	response.Created(w, created)
}

// Get handles GET /api/v1/requests/{id}
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, ok := h.board.Request(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, apierror.NotFound("Build request not found"))
		return
	}
	response.OK(w, req)
}

// SetStatus handles PUT /api/v1/requests/{id}/status
func (h *RequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var body StatusUpdate
	if err := decodeJSON(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}
	if body.Status == "" {
		response.Error(w, apierror.ValidationError("status is required",
			apierror.FieldError{Field: "status", Message: "is required"}))
		return
	}

	updated, ok, err := h.board.SetStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	writeCommand(w, updated, ok, err)
}

// Advance handles POST /api/v1/requests/{id}/advance
func (h *RequestHandler) Advance(w http.ResponseWriter, r *http.Request) {
	updated, ok, err := h.board.Advance(r.Context(), chi.URLParam(r, "id"))
	writeCommand(w, updated, ok, err)
}

// ToggleFlag handles POST /api/v1/requests/{id}/flags/{flag}
func (h *RequestHandler) ToggleFlag(w http.ResponseWriter, r *http.Request) {
	flag := model.Flag(chi.URLParam(r, "flag"))
	updated, ok, err := h.board.ToggleFlag(r.Context(), chi.URLParam(r, "id"), flag)
	writeCommand(w, updated, ok, err)
}

func writeCommand(w http.ResponseWriter, updated model.BuildRequest, ok bool, err error) {
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	if !ok {
		response.OK(w, CommandResult{Applied: false})
		return
	}
	response.OK(w, CommandResult{Applied: true, Request: &updated})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierror.BadRequest("invalid JSON body")
	}
	return nil
}
