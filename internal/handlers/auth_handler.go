package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/venturelink/backend/internal/services"
)

// PasswordStrengthRequest is scored without being stored.
// @Description Password strength request
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrengthResponse is the strength meter reading.
// @Description Password strength
type PasswordStrengthResponse struct {
	Score int    `json:"score" example:"3"`
	Label string `json:"label" example:"Good"`
}

type AuthHandler struct {
	service   *services.AuthService
	validator *services.ValidationHelper
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new entrepreneur or investor
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration request"
// @Success 201 {object} models.User "Registration successful"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 409 {object} services.ErrorResponse "Email already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Registration attempt from IP: %s", r.RemoteAddr)

	var req services.RegisterRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Printf("[AUTH] Registration failed for %s: %v", req.Email, err)
		sendServiceError(w, "AUTH", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, user)
}

// Login checks credentials and starts the OTP step
// @Summary Login user
// @Description Authenticate with email, password and role; answer the returned challenge via /auth/verify-otp
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.LoginChallenge "OTP required"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 401 {object} services.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req services.LoginRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	challenge, err := h.service.Login(r.Context(), req)
	if err != nil {
		sendServiceError(w, "AUTH", err)
		return
	}
	services.SendJSON(w, http.StatusOK, challenge)
}

// VerifyOTP completes login
// @Summary Verify OTP
// @Description Answer a login challenge with the one-time code and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.VerifyOTPRequest true "OTP verification request"
// @Success 200 {object} services.AuthResponse "Login successful"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 401 {object} services.ErrorResponse "Invalid or expired OTP"
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req services.VerifyOTPRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), req)
	if err != nil {
		sendServiceError(w, "AUTH", err)
		return
	}
	services.SendJSON(w, http.StatusOK, resp)
}

// Logout handles user logout
// @Summary Logout user
// @Description Logout user and blacklist token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.service.Logout(r.Context(), token); err != nil {
		services.SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Account returns the authenticated user
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "User details"
// @Failure 401 {object} services.ErrorResponse "Unauthorized"
// @Router /auth/account [get]
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.service.User(r.Context(), userID)
	if err != nil {
		sendServiceError(w, "AUTH", err)
		return
	}
	services.SendJSON(w, http.StatusOK, user)
}

// PasswordStrength scores a candidate password
// @Summary Password strength
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PasswordStrengthRequest true "Password"
// @Success 200 {object} PasswordStrengthResponse
// @Router /auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req PasswordStrengthRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	score, label := services.PasswordStrength(req.Password)
	services.SendJSON(w, http.StatusOK, PasswordStrengthResponse{Score: score, Label: label})
}
