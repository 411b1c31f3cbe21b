// Package client is the resource-client boundary the rest of the app
// depends on: one named operation per resource action, grouped by
// resource. Local resolves against the in-memory store after simulated
// latency; HTTP talks to a real deployment of the same API.
package client

import (
	"context"
	"errors"

	"tiketi/models"
	"tiketi/store"
)

// Shared sentinels. The local client surfaces the store's values
// directly; the HTTP client maps status codes back onto the same ones
// so callers never care which transport is underneath.
var (
	ErrNotFound            = store.ErrNotFound
	ErrInvalidCredentials  = store.ErrInvalidCredentials
	ErrEmailTaken          = store.ErrEmailTaken
	ErrInsufficientTickets = store.ErrInsufficientTickets
	ErrUnauthorized        = errors.New("UNAUTHORIZED")
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

type EventAPI interface {
	List(ctx context.Context, filters models.EventFilters) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, id string, req models.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	Mine(ctx context.Context) ([]models.Event, error)
}

type BookingAPI interface {
	Create(ctx context.Context, eventID string, req models.CreateBookingRequest) (*models.BookingResponse, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	Mine(ctx context.Context) ([]models.Booking, error)
	ByEvent(ctx context.Context, eventID string) ([]models.Booking, error)
}

type TicketAPI interface {
	Mine(ctx context.Context) ([]models.Ticket, error)
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Download(ctx context.Context, id string) (*models.TicketExport, error)
}

type AdminAPI interface {
	Users(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.DashboardStats, error)
	AllEvents(ctx context.Context) ([]models.Event, error)
	AllBookings(ctx context.Context) ([]models.Booking, error)
}

// Client aggregates the per-resource APIs.
type Client struct {
	Auth     AuthAPI
	Events   EventAPI
	Bookings BookingAPI
	Tickets  TicketAPI
	Admin    AdminAPI
}

type tokenCtxKey struct{}

// WithToken attaches a bearer token to the context; both client
// implementations pick it up for authenticated operations.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext returns the bearer token attached with WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}
