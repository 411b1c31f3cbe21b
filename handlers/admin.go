package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListUsers handles GET /api/admin/users
func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.api.Admin.Users(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	claims, _ := ClaimsFromContext(r.Context())
	if claims.UserID == id {
		BadRequest(w, "Cannot delete your own account")
		return
	}

	if err := a.api.Admin.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DashboardStats handles GET /api/admin/dashboard-stats
func (a *API) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.api.Admin.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, stats)
}

// AllEvents handles GET /api/admin/events
func (a *API) AllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.api.Admin.AllEvents(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, events)
}

// AllBookings handles GET /api/admin/bookings
func (a *API) AllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := a.api.Admin.AllBookings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, bookings)
}
