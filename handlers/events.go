package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tiketi/models"
)

func parseFilters(r *http.Request) (models.EventFilters, bool) {
	q := r.URL.Query()
	filters := models.EventFilters{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		County:   q.Get("county"),
		Date:     q.Get("date"),
	}
	switch pr := models.PriceRange(q.Get("priceRange")); pr {
	case "", models.PriceFree, models.PriceUnder1000, models.Price1000To5K, models.PriceAbove5K:
		filters.PriceRange = pr
	default:
		return filters, false
	}
	return filters, true
}

// ListEvents handles GET /api/events
func (a *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters, ok := parseFilters(r)
	if !ok {
		BadRequest(w, "Invalid priceRange")
		return
	}

	events, err := a.api.Events.List(r.Context(), filters)
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}
func (a *API) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := a.api.Events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/events
func (a *API) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}
	if msg := validateCreateEvent(&req); msg != "" {
		BadRequest(w, msg)
		return
	}

	event, err := a.api.Events.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /api/events/{id}. Only the owning organizer
// or an admin may update.
func (a *API) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.canManageEvent(w, r, id) {
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}

	event, err := a.api.Events.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/{id}
func (a *API) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.canManageEvent(w, r, id) {
		return
	}
	if err := a.api.Events.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyEvents handles GET /api/events/my-events
func (a *API) MyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.api.Events.Mine(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, events)
}

// canManageEvent loads the event and checks ownership. It writes the
// response on failure.
func (a *API) canManageEvent(w http.ResponseWriter, r *http.Request, id string) bool {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		Unauthorized(w, "Authentication required")
		return false
	}
	event, err := a.api.Events.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return false
	}
	if claims.Role != models.RoleAdmin && event.OrganizerID != claims.UserID {
		Forbidden(w, "Not your event")
		return false
	}
	return true
}

func validateCreateEvent(req *models.CreateEventRequest) string {
	if req.Title == "" {
		return "title is required"
	}
	if req.Date == "" {
		return "date is required"
	}
	if req.County == "" {
		return "county is required"
	}
	if req.Capacity <= 0 {
		return "capacity must be positive"
	}
	if len(req.TicketTypes) == 0 {
		return "at least one ticket type is required"
	}
	total := 0
	for _, tt := range req.TicketTypes {
		if tt.Name == "" {
			return "ticket type name is required"
		}
		if tt.Price < 0 {
			return "ticket prices cannot be negative"
		}
		if tt.Quantity <= 0 {
			return "ticket type quantity must be positive"
		}
		if req.IsFree && tt.Price != 0 {
			return "free events cannot have priced ticket types"
		}
		total += tt.Quantity
	}
	if total > req.Capacity {
		return "ticket quantities exceed event capacity"
	}
	return ""
}
