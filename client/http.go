package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tiketi/models"
)

// HTTP talks to a real deployment of the resource API. Two
// cross-cutting concerns live here, not in business logic: every
// request carries a bearer token when one is available, and a 401
// response fires the OnUnauthorized hook (clear the session, force
// the login view) before the error is returned.
type HTTP struct {
	baseURL        string
	hc             *http.Client
	tokenSource    func(ctx context.Context) string
	onUnauthorized func()
}

type HTTPOption func(*HTTP)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(h *HTTP) { h.hc = hc }
}

// WithTokenSource installs a fallback token source consulted when the
// context carries no token.
func WithTokenSource(fn func(ctx context.Context) string) HTTPOption {
	return func(h *HTTP) { h.tokenSource = fn }
}

// WithUnauthorizedHook installs the 401 response hook.
func WithUnauthorizedHook(fn func()) HTTPOption {
	return func(h *HTTP) { h.onUnauthorized = fn }
}

func NewHTTP(baseURL string, opts ...HTTPOption) *Client {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return &Client{
		Auth:     (*httpAuth)(h),
		Events:   (*httpEvents)(h),
		Bookings: (*httpBookings)(h),
		Tickets:  (*httpTickets)(h),
		Admin:    (*httpAdmin)(h),
	}
}

func (h *HTTP) token(ctx context.Context) string {
	if token := TokenFromContext(ctx); token != "" {
		return token
	}
	if h.tokenSource != nil {
		return h.tokenSource(ctx)
	}
	return ""
}

func (h *HTTP) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := h.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := h.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return h.asError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (h *HTTP) asError(resp *http.Response) error {
	var envelope models.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode == http.StatusUnauthorized {
		if h.onUnauthorized != nil {
			h.onUnauthorized()
		}
		return ErrUnauthorized
	}

	switch envelope.Error {
	case "NOT_FOUND":
		return ErrNotFound
	case "INVALID_CREDENTIALS":
		return ErrInvalidCredentials
	case "EMAIL_TAKEN":
		return ErrEmailTaken
	case "INSUFFICIENT_TICKETS":
		return fmt.Errorf("%w: %s", ErrInsufficientTickets, envelope.Message)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if envelope.Message != "" {
		return fmt.Errorf("%s (%d)", envelope.Message, resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

type httpAuth HTTP

func (h *httpAuth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := (*HTTP)(h).do(ctx, http.MethodPost, "/api/auth/login", nil,
		models.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpAuth) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := (*HTTP)(h).do(ctx, http.MethodPost, "/api/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type httpEvents HTTP

func filterQuery(filters models.EventFilters) url.Values {
	if filters.IsZero() {
		return nil
	}
	q := url.Values{}
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	if filters.County != "" {
		q.Set("county", filters.County)
	}
	if filters.Date != "" {
		q.Set("date", filters.Date)
	}
	if filters.PriceRange != "" {
		q.Set("priceRange", string(filters.PriceRange))
	}
	return q
}

func (h *httpEvents) List(ctx context.Context, filters models.EventFilters) ([]models.Event, error) {
	var out []models.Event
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/events", filterQuery(filters), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpEvents) Get(ctx context.Context, id string) (*models.Event, error) {
	var out models.Event
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpEvents) Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	var out models.Event
	if err := (*HTTP)(h).do(ctx, http.MethodPost, "/api/events", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpEvents) Update(ctx context.Context, id string, req models.UpdateEventRequest) (*models.Event, error) {
	var out models.Event
	if err := (*HTTP)(h).do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpEvents) Delete(ctx context.Context, id string) error {
	return (*HTTP)(h).do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil, nil)
}

func (h *httpEvents) Mine(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/events/my-events", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type httpBookings HTTP

func (h *httpBookings) Create(ctx context.Context, eventID string, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	var out models.BookingResponse
	if err := (*HTTP)(h).do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(eventID), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpBookings) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	var out models.Booking
	if err := (*HTTP)(h).do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpBookings) Mine(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/bookings/my-bookings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpBookings) ByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	var out []models.Booking
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/bookings/event/"+url.PathEscape(eventID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type httpTickets HTTP

func (h *httpTickets) Mine(ctx context.Context) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/tickets/my-tickets", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpTickets) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var out models.Ticket
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpTickets) Download(ctx context.Context, id string) (*models.TicketExport, error) {
	var out models.TicketExport
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(id)+"/download", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type httpAdmin HTTP

func (h *httpAdmin) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpAdmin) DeleteUser(ctx context.Context, id string) error {
	return (*HTTP)(h).do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil, nil, nil)
}

func (h *httpAdmin) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/admin/dashboard-stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpAdmin) AllEvents(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/admin/events", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpAdmin) AllBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := (*HTTP)(h).do(ctx, http.MethodGet, "/api/admin/bookings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
