package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tiketi/models"
	"tiketi/services"
)

// CreateBooking handles POST /api/bookings/{eventId}. It drives the
// full booking flow for the request: selection validation, payment
// (simulated or free), then recording the confirmed booking.
func (a *API) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}

	event, err := a.api.Events.Get(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	flow := services.NewBookingFlow(event, nil)
	for _, sel := range req.Selections {
		if err := flow.SetQuantity(sel.TicketTypeID, sel.Quantity); err != nil {
			respondError(w, err)
			return
		}
	}
	if err := flow.ProceedToPayment(); err != nil {
		respondError(w, err)
		return
	}

	if flow.TotalAmount() == 0 {
		if err := flow.ConfirmFree(); err != nil {
			respondError(w, err)
			return
		}
	} else {
		processor, ok := a.processors[req.PaymentMethod]
		if !ok {
			BadRequest(w, "Unsupported payment method")
			return
		}
		if err := flow.Pay(r.Context(), processor, req.PhoneNumber); err != nil {
			respondError(w, err)
			return
		}
	}

	resp, err := a.api.Bookings.Create(r.Context(), eventID, models.CreateBookingRequest{
		Selections:    flow.Selections(),
		PaymentMethod: req.PaymentMethod,
		TransactionID: flow.TransactionID(),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, resp)
}

// CancelBooking handles DELETE /api/bookings/{id}. Non-admins may
// cancel only their own bookings.
func (a *API) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	claims, _ := ClaimsFromContext(r.Context())
	if claims.Role != models.RoleAdmin {
		mine, err := a.api.Bookings.Mine(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		owned := false
		for _, b := range mine {
			if b.ID == id {
				owned = true
				break
			}
		}
		if !owned {
			NotFound(w, "Booking not found")
			return
		}
	}

	booking, err := a.api.Bookings.Cancel(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, booking)
}

// MyBookings handles GET /api/bookings/my-bookings
func (a *API) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := a.api.Bookings.Mine(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, bookings)
}

// EventBookings handles GET /api/bookings/event/{eventId}
func (a *API) EventBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := a.api.Bookings.ByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, bookings)
}
