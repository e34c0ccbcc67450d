package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/venturelink/backend/internal/services"
)

// StatusRequest carries a new status for a meeting or request.
// @Description Status update
type StatusRequest struct {
	Status string `json:"status" validate:"required" example:"accepted"`
}

type CalendarHandler struct {
	service   *services.CalendarService
	validator *services.ValidationHelper
}

func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// AddSlot publishes an availability slot for the caller
// @Summary Add availability slot
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.SlotRequest true "Slot"
// @Success 201 {object} models.AvailabilitySlot
// @Failure 400 {object} services.ErrorResponse
// @Router /calendar/slots [post]
func (h *CalendarHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.SlotRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	slot, err := h.service.AddSlot(r.Context(), userID, req)
	if err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, slot)
}

// ListSlots returns availability slots, optionally for one user
// @Summary List availability slots
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Only slots of this user"
// @Success 200 {array} models.AvailabilitySlot
// @Router /calendar/slots [get]
func (h *CalendarHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := currentUser(w, r); !ok {
		return
	}

	var (
		slots any
		err   error
	)
	if userID := r.URL.Query().Get("userId"); userID != "" {
		slots, err = h.service.SlotsForUser(r.Context(), userID)
	} else {
		slots, err = h.service.ListSlots(r.Context())
	}
	if err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	services.SendJSON(w, http.StatusOK, slots)
}

// DeleteSlot removes one of the caller's slots
// @Summary Delete availability slot
// @Tags Calendar
// @Security BearerAuth
// @Param slotId path string true "Slot ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /calendar/slots/{slotId} [delete]
func (h *CalendarHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSlot(r.Context(), userID, chi.URLParam(r, "slotId")); err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMeeting requests a meeting
// @Summary Request meeting
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.MeetingRequest true "Meeting"
// @Success 201 {object} models.Meeting
// @Failure 400 {object} services.ErrorResponse
// @Router /calendar/meetings [post]
func (h *CalendarHandler) AddMeeting(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.MeetingRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	if req.InvestorID != userID && req.EntrepreneurID != userID {
		services.SendErrorResponse(w, "Caller must take part in the meeting", http.StatusForbidden, nil)
		return
	}

	m, err := h.service.AddMeeting(r.Context(), req)
	if err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, m)
}

// ListMeetings returns the caller's meetings
// @Summary List meetings
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Meeting
// @Router /calendar/meetings [get]
func (h *CalendarHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	meetings, err := h.service.MeetingsForUser(r.Context(), userID)
	if err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	services.SendJSON(w, http.StatusOK, meetings)
}

// UpdateMeetingStatus accepts or declines a meeting
// @Summary Update meeting status
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetingId path string true "Meeting ID"
// @Param request body StatusRequest true "accepted or declined"
// @Success 200 {object} models.Meeting
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /calendar/meetings/{meetingId}/status [put]
func (h *CalendarHandler) UpdateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	m, err := h.service.UpdateMeetingStatus(r.Context(), userID, chi.URLParam(r, "meetingId"), req.Status)
	if err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	services.SendJSON(w, http.StatusOK, m)
}

// DeleteMeeting removes a meeting the caller takes part in
// @Summary Delete meeting
// @Tags Calendar
// @Security BearerAuth
// @Param meetingId path string true "Meeting ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /calendar/meetings/{meetingId} [delete]
func (h *CalendarHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteMeeting(r.Context(), userID, chi.URLParam(r, "meetingId")); err != nil {
		sendServiceError(w, "CALENDAR", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
