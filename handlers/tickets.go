package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MyTickets handles GET /api/tickets/my-tickets
func (a *API) MyTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := a.api.Tickets.Mine(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, tickets)
}

// GetTicket handles GET /api/tickets/{id}
func (a *API) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := a.api.Tickets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	JSON(w, http.StatusOK, ticket)
}

// DownloadTicket handles GET /api/tickets/{id}/download, serving the
// structured-data export as an attachment.
func (a *API) DownloadTicket(w http.ResponseWriter, r *http.Request) {
	export, err := a.api.Tickets.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.json", export.TicketNumber))
	JSON(w, http.StatusOK, export)
}
