package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/venturelink/backend/internal/services"
)

type DocumentHandler struct {
	service   *services.DocumentService
	validator *services.ValidationHelper
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// Add registers document metadata for the caller
// @Summary Add document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.DocumentRequest true "Document"
// @Success 201 {object} models.Document
// @Failure 400 {object} services.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.DocumentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	doc, err := h.service.Add(r.Context(), userID, req)
	if err != nil {
		sendServiceError(w, "DOCUMENTS", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, doc)
}

// List returns the caller's documents
// @Summary List documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Document
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	docs, err := h.service.ListForOwner(r.Context(), userID)
	if err != nil {
		sendServiceError(w, "DOCUMENTS", err)
		return
	}
	services.SendJSON(w, http.StatusOK, docs)
}

// Delete removes one of the caller's documents
// @Summary Delete document
// @Tags Documents
// @Security BearerAuth
// @Param documentId path string true "Document ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /documents/{documentId} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "documentId")); err != nil {
		sendServiceError(w, "DOCUMENTS", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Share marks a document shared and returns a link with its QR code
// @Summary Share document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param documentId path string true "Document ID"
// @Success 200 {object} services.ShareResult
// @Failure 404 {object} services.ErrorResponse
// @Router /documents/{documentId}/share [post]
func (h *DocumentHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	res, err := h.service.Share(r.Context(), userID, chi.URLParam(r, "documentId"))
	if err != nil {
		sendServiceError(w, "DOCUMENTS", err)
		return
	}
	services.SendJSON(w, http.StatusOK, res)
}

// GetShared returns a shared document without authentication
// @Summary Get shared document
// @Tags Documents
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} services.ErrorResponse
// @Router /documents/shared/{documentId} [get]
func (h *DocumentHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetShared(r.Context(), chi.URLParam(r, "documentId"))
	if err != nil {
		sendServiceError(w, "DOCUMENTS", err)
		return
	}
	services.SendJSON(w, http.StatusOK, doc)
}
