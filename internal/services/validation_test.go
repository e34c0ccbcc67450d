package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs), "expected validation errors, got %v", err)

	tags := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

func TestValidationHelper_AuthRequests(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid registration", func(t *testing.T) {
		err := vh.ValidateStruct(&RegisterRequest{
			Name: "Sarah Johnson", Email: "sarah@techwave.io", Password: "password123", Role: "entrepreneur",
		})
		assert.NoError(t, err)
	})

	t.Run("registration with every field wrong", func(t *testing.T) {
		err := vh.ValidateStruct(&RegisterRequest{Name: "S", Email: "sarah-at-techwave", Password: "12345", Role: "admin"})
		assert.Equal(t, map[string]string{
			"Name":     "min",
			"Email":    "email",
			"Password": "min",
			"Role":     "role",
		}, fieldErrors(t, err))
	})

	t.Run("login requires every field", func(t *testing.T) {
		err := vh.ValidateStruct(&LoginRequest{})
		assert.Equal(t, map[string]string{
			"Email":    "required",
			"Password": "required",
			"Role":     "required",
		}, fieldErrors(t, err))
	})

	t.Run("login role is case sensitive", func(t *testing.T) {
		err := vh.ValidateStruct(&LoginRequest{Email: "michael@vcinnovate.com", Password: "password123", Role: "Investor"})
		assert.Equal(t, map[string]string{"Role": "role"}, fieldErrors(t, err))
	})

	t.Run("otp code must be numeric", func(t *testing.T) {
		err := vh.ValidateStruct(&VerifyOTPRequest{UserID: "u1", Code: "12ab56"})
		assert.Equal(t, map[string]string{"Code": "numeric"}, fieldErrors(t, err))
	})
}

func TestValidationHelper_CalendarRequests(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid slot", func(t *testing.T) {
		err := vh.ValidateStruct(&SlotRequest{Date: "2024-03-15", StartTime: "09:30", EndTime: "10:30"})
		assert.NoError(t, err)
	})

	t.Run("malformed slot date and times", func(t *testing.T) {
		err := vh.ValidateStruct(&SlotRequest{Date: "15/03/2024", StartTime: "9am", EndTime: "25:00"})
		assert.Equal(t, map[string]string{
			"Date":      "datetime",
			"StartTime": "datetime",
			"EndTime":   "datetime",
		}, fieldErrors(t, err))
	})

	t.Run("meeting needs both participants", func(t *testing.T) {
		err := vh.ValidateStruct(&MeetingRequest{
			Title: "Seed round intro", Date: "2024-03-15", StartTime: "14:00", EndTime: "15:00",
		})
		assert.Equal(t, map[string]string{
			"EntrepreneurID": "required",
			"InvestorID":     "required",
		}, fieldErrors(t, err))
	})
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Not found", http.StatusNotFound, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})

	t.Run("validation failure lists each field", func(t *testing.T) {
		vh := NewValidationHelper()
		validationErr := vh.ValidateStruct(&LoginRequest{Email: "bad", Password: "password123", Role: "admin"})
		require.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, validationErr)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Validation failed", response.Error)
		assert.Equal(t, map[string]string{
			"Email": "Field Validation Failed on 'email' tag",
			"Role":  "Field Validation Failed on 'role' tag",
		}, response.Details)
	})

	t.Run("wrapped validation failure", func(t *testing.T) {
		vh := NewValidationHelper()
		validationErr := vh.ValidateStruct(&SlotRequest{Date: "2024-03-15", StartTime: "9am", EndTime: "10:00"})

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, errors.Join(errors.New("slot"), validationErr))

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Details, "StartTime")
	})

	t.Run("non-validation error carries no details", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, errStoreDown)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Nil(t, response.Details)
	})
}

func TestSendJSON(t *testing.T) {
	w := httptest.NewRecorder()

	SendJSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, w.Body.String())
}
