package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tiketi/models"
)

// Login handles POST /api/auth/login
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		BadRequest(w, "email and password are required")
		return
	}

	resp, err := a.api.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// Register handles POST /api/auth/register
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}
	if msg := validateRegistration(&req); msg != "" {
		BadRequest(w, msg)
		return
	}

	resp, err := a.api.Auth.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, resp)
}

// CurrentUser handles GET /api/auth/me
func (a *API) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.api.Auth.CurrentUser(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, user)
}

func validateRegistration(req *models.RegisterRequest) string {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return "email must be valid"
	}
	if len(strings.TrimSpace(req.Password)) < 8 {
		return "password must be at least 8 characters"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return "firstName is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		return "lastName is required"
	}
	if req.Role != "" {
		if _, err := models.ParseRole(req.Role); err != nil {
			return "role must be one of admin, organizer, attendee"
		}
	}
	return ""
}
