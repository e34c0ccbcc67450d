package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/venturelink/backend/internal/services"
)

// SendMessageRequest is a chat message to partnerId.
// @Description Chat message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=5000" example:"Thanks for the intro!"`
}

type ChatHandler struct {
	service   *services.ChatService
	validator *services.ValidationHelper
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// Conversations lists the caller's chat partners
// @Summary List conversations
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Conversation
// @Router /chat/conversations [get]
func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	convs, err := h.service.Conversations(r.Context(), userID)
	if err != nil {
		sendServiceError(w, "CHAT", err)
		return
	}
	services.SendJSON(w, http.StatusOK, convs)
}

// Messages returns the caller's messages with a partner, oldest first
// @Summary Get messages
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner user ID"
// @Success 200 {array} models.Message
// @Router /chat/{partnerId}/messages [get]
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	msgs, err := h.service.Between(r.Context(), userID, chi.URLParam(r, "partnerId"))
	if err != nil {
		sendServiceError(w, "CHAT", err)
		return
	}
	services.SendJSON(w, http.StatusOK, msgs)
}

// Send posts a message to a partner
// @Summary Send message
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner user ID"
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} services.ErrorResponse
// @Router /chat/{partnerId}/messages [post]
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req SendMessageRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	msg, err := h.service.Send(r.Context(), userID, chi.URLParam(r, "partnerId"), req.Content)
	if err != nil {
		sendServiceError(w, "CHAT", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, msg)
}

// MarkRead marks a partner's messages to the caller as read
// @Summary Mark conversation read
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param partnerId path string true "Partner user ID"
// @Success 200 {object} object{updated=int}
// @Router /chat/{partnerId}/read [post]
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	n, err := h.service.MarkRead(r.Context(), userID, chi.URLParam(r, "partnerId"))
	if err != nil {
		sendServiceError(w, "CHAT", err)
		return
	}
	services.SendJSON(w, http.StatusOK, map[string]int{"updated": n})
}
