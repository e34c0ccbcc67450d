package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/services"
)

const maxBodyBytes = 1_048_576 // 1 MB

// decodeJSON reads a single JSON object into dst and validates it. It writes
// the error response itself and returns false when the request is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *services.ValidationHelper, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}

	if err := v.ValidateStruct(dst); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

// currentUser returns the authenticated user id and role placed in the
// request context by the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (string, ledger.Role, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return "", "", false
	}
	role, err := ledger.ParseRole(stringValue(r, "role"))
	if err != nil {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return "", "", false
	}
	return userID, role, true
}

func stringValue(r *http.Request, key string) string {
	s, _ := r.Context().Value(key).(string)
	return s
}

// sendServiceError maps service errors onto HTTP status codes.
func sendServiceError(w http.ResponseWriter, tag string, err error) {
	status := http.StatusInternalServerError
	message := "An Internal Error Occurred"

	switch {
	case errors.Is(err, services.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrRoleNotAllowed):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrEmailTaken):
		status, message = http.StatusConflict, "Email Already Exists"
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidOTP):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrSubmissionDropped),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidWindow),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrMissingDocumentFields):
		status, message = http.StatusBadRequest, err.Error()
	}

	if status == http.StatusInternalServerError {
		log.Printf("[%s] %v", tag, err)
	}
	services.SendErrorResponse(w, message, status, nil)
}
