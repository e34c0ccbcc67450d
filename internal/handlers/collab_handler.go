package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/services"
)

type CollabHandler struct {
	service   *services.CollabService
	validator *services.ValidationHelper
}

func NewCollabHandler(service *services.CollabService) *CollabHandler {
	return &CollabHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// Create sends a collaboration request from the calling investor
// @Summary Request collaboration
// @Tags Collaboration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CollabRequest true "Request"
// @Success 201 {object} models.CollaborationRequest
// @Failure 403 {object} services.ErrorResponse
// @Router /collaborations [post]
func (h *CollabHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	if role != ledger.Investor {
		services.SendErrorResponse(w, "Only investors can send collaboration requests", http.StatusForbidden, nil)
		return
	}
	var req services.CollabRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	cr, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		sendServiceError(w, "COLLAB", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, cr)
}

// List returns requests sent (investor) or received (entrepreneur) by the caller
// @Summary List collaboration requests
// @Tags Collaboration
// @Produce json
// @Security BearerAuth
// @Param status query string false "Only pending requests when set to pending"
// @Success 200 {array} models.CollaborationRequest
// @Router /collaborations [get]
func (h *CollabHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(w, r)
	if !ok {
		return
	}

	var (
		list any
		err  error
	)
	switch {
	case role == ledger.Investor:
		list, err = h.service.ForInvestor(r.Context(), userID)
	case r.URL.Query().Get("status") == "pending":
		list, err = h.service.Pending(r.Context(), userID)
	default:
		list, err = h.service.ForEntrepreneur(r.Context(), userID)
	}
	if err != nil {
		sendServiceError(w, "COLLAB", err)
		return
	}
	services.SendJSON(w, http.StatusOK, list)
}

// UpdateStatus accepts or rejects a received request
// @Summary Answer collaboration request
// @Tags Collaboration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param request body StatusRequest true "accepted or rejected"
// @Success 200 {object} models.CollaborationRequest
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /collaborations/{requestId}/status [put]
func (h *CollabHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	cr, err := h.service.UpdateStatus(r.Context(), userID, chi.URLParam(r, "requestId"), req.Status)
	if err != nil {
		sendServiceError(w, "COLLAB", err)
		return
	}
	services.SendJSON(w, http.StatusOK, cr)
}
