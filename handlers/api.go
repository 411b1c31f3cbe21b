package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"tiketi/auth"
	"tiketi/client"
	"tiketi/models"
	"tiketi/services"
)

// API serves the JSON resource operations. Everything goes through
// the resource client, never the store directly, so the same handlers
// work against a remote deployment.
type API struct {
	api        *client.Client
	tokens     *auth.Tokens
	processors map[models.PaymentMethod]services.PaymentProcessor
}

func NewAPI(api *client.Client, tokens *auth.Tokens, processors ...services.PaymentProcessor) *API {
	byMethod := make(map[models.PaymentMethod]services.PaymentProcessor, len(processors))
	for _, p := range processors {
		byMethod[p.Method()] = p
	}
	return &API{api: api, tokens: tokens, processors: byMethod}
}

// Routes returns the /api router.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", a.Login)
		r.Post("/register", a.Register)
		r.With(a.RequireAuth).Get("/me", a.CurrentUser)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", a.ListEvents)
		r.With(a.RequireAuth, a.RequireRole(models.RoleOrganizer)).Get("/my-events", a.MyEvents)
		r.With(a.RequireAuth, a.RequireRole(models.RoleOrganizer, models.RoleAdmin)).Post("/", a.CreateEvent)
		r.Get("/{id}", a.GetEvent)
		r.With(a.RequireAuth).Put("/{id}", a.UpdateEvent)
		r.With(a.RequireAuth).Delete("/{id}", a.DeleteEvent)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Get("/my-bookings", a.MyBookings)
		r.With(a.RequireRole(models.RoleOrganizer, models.RoleAdmin)).Get("/event/{eventId}", a.EventBookings)
		r.Post("/{eventId}", a.CreateBooking)
		r.Delete("/{id}", a.CancelBooking)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Get("/my-tickets", a.MyTickets)
		r.Get("/{id}", a.GetTicket)
		r.Get("/{id}/download", a.DownloadTicket)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(a.RequireAuth, a.RequireRole(models.RoleAdmin))
		r.Get("/users", a.ListUsers)
		r.Delete("/users/{id}", a.DeleteUser)
		r.Get("/dashboard-stats", a.DashboardStats)
		r.Get("/events", a.AllEvents)
		r.Get("/bookings", a.AllBookings)
	})

	return r
}

// respondError maps the shared sentinels onto the wire taxonomy.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, client.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, client.ErrNotFound):
		NotFound(w, "Resource not found")
	case errors.Is(err, client.ErrEmailTaken):
		Conflict(w, "EMAIL_TAKEN", "A user with that email already exists")
	case errors.Is(err, client.ErrInsufficientTickets):
		Conflict(w, "INSUFFICIENT_TICKETS", err.Error())
	case errors.Is(err, services.ErrNoSelection):
		BadRequest(w, "Please select at least one ticket")
	case errors.Is(err, services.ErrMissingPhone):
		BadRequest(w, "Please enter your M-Pesa phone number")
	case errors.Is(err, services.ErrInvalidPhone):
		BadRequest(w, "Please enter a valid Kenyan phone number")
	case errors.Is(err, services.ErrUnknownTicketType):
		BadRequest(w, err.Error())
	case errors.Is(err, services.ErrPaymentFailed):
		Error(w, http.StatusPaymentRequired, "PAYMENT_FAILED", "Payment failed. Please try again.")
	default:
		logrus.WithError(err).Error("request failed")
		InternalServerError(w, "Something went wrong")
	}
}
