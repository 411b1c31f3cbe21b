package client

import (
	"context"
	"fmt"

	"tiketi/auth"
	"tiketi/models"
	"tiketi/store"
)

// Local resolves every operation against the in-memory store, which
// already applies the simulated network delay. Authenticated
// operations resolve the bearer token from the context into a user;
// a bad or missing token invokes the OnUnauthorized hook, mirroring
// the HTTP client's 401 handling.
type Local struct {
	store          *store.MemoryStore
	tokens         *auth.Tokens
	onUnauthorized func()
}

type LocalOption func(*Local)

// WithOnUnauthorized installs the hook fired whenever an
// authenticated operation is attempted without a valid token.
func WithOnUnauthorized(fn func()) LocalOption {
	return func(l *Local) { l.onUnauthorized = fn }
}

func NewLocal(st *store.MemoryStore, tokens *auth.Tokens, opts ...LocalOption) *Client {
	l := &Local{store: st, tokens: tokens}
	for _, opt := range opts {
		opt(l)
	}
	return &Client{
		Auth:     (*localAuth)(l),
		Events:   (*localEvents)(l),
		Bookings: (*localBookings)(l),
		Tickets:  (*localTickets)(l),
		Admin:    (*localAdmin)(l),
	}
}

func (l *Local) unauthorized() error {
	if l.onUnauthorized != nil {
		l.onUnauthorized()
	}
	return ErrUnauthorized
}

// caller resolves the context token into the signed-in user.
func (l *Local) caller(ctx context.Context) (*models.User, error) {
	token := TokenFromContext(ctx)
	if token == "" {
		return nil, l.unauthorized()
	}
	claims, err := l.tokens.Verify(token)
	if err != nil {
		return nil, l.unauthorized()
	}
	user, err := l.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, l.unauthorized()
	}
	return user, nil
}

type localAuth Local

func (l *localAuth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := l.store.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: user, Token: l.tokens.Mint(user)}, nil
}

func (l *localAuth) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	user, err := l.store.RegisterUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: user, Token: l.tokens.Mint(user)}, nil
}

func (l *localAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	return (*Local)(l).caller(ctx)
}

type localEvents Local

func (l *localEvents) List(ctx context.Context, filters models.EventFilters) ([]models.Event, error) {
	return l.store.ListEvents(ctx, filters)
}

func (l *localEvents) Get(ctx context.Context, id string) (*models.Event, error) {
	return l.store.GetEvent(ctx, id)
}

func (l *localEvents) Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	user, err := (*Local)(l).caller(ctx)
	if err != nil {
		return nil, err
	}
	return l.store.CreateEvent(ctx, req, user)
}

func (l *localEvents) Update(ctx context.Context, id string, req models.UpdateEventRequest) (*models.Event, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.UpdateEvent(ctx, id, req)
}

func (l *localEvents) Delete(ctx context.Context, id string) error {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return err
	}
	return l.store.DeleteEvent(ctx, id)
}

func (l *localEvents) Mine(ctx context.Context) ([]models.Event, error) {
	user, err := (*Local)(l).caller(ctx)
	if err != nil {
		return nil, err
	}
	return l.store.EventsByOrganizer(ctx, user.ID)
}

type localBookings Local

func (l *localBookings) Create(ctx context.Context, eventID string, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	user, err := (*Local)(l).caller(ctx)
	if err != nil {
		return nil, err
	}
	booking, err := l.store.CreateBooking(ctx, user.ID, eventID, req.Selections, req.PaymentMethod, req.TransactionID)
	if err != nil {
		return nil, err
	}
	return &models.BookingResponse{Booking: booking, TransactionID: booking.TransactionID}, nil
}

func (l *localBookings) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.CancelBooking(ctx, id)
}

func (l *localBookings) Mine(ctx context.Context) ([]models.Booking, error) {
	user, err := (*Local)(l).caller(ctx)
	if err != nil {
		return nil, err
	}
	return l.store.BookingsByUser(ctx, user.ID)
}

func (l *localBookings) ByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.BookingsByEvent(ctx, eventID)
}

type localTickets Local

func (l *localTickets) Mine(ctx context.Context) ([]models.Ticket, error) {
	user, err := (*Local)(l).caller(ctx)
	if err != nil {
		return nil, err
	}
	return l.store.TicketsByOwner(ctx, user.ID)
}

func (l *localTickets) Get(ctx context.Context, id string) (*models.Ticket, error) {
	user, err := (*Local)(l).caller(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := l.store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	// Admins can inspect any ticket; everyone else only their own.
	if ticket.UserID != user.ID && user.Role != models.RoleAdmin {
		return nil, ErrNotFound
	}
	return ticket, nil
}

func (l *localTickets) Download(ctx context.Context, id string) (*models.TicketExport, error) {
	ticket, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Event == nil {
		return nil, fmt.Errorf("ticket %s: event gone: %w", id, ErrNotFound)
	}
	export := &models.TicketExport{
		EventTitle:   ticket.Event.Title,
		TicketNumber: ticket.TicketNumber,
		Date:         ticket.Event.Date,
		Time:         ticket.Event.Time,
		Location:     ticket.Event.Location,
		Price:        ticket.Price,
		QRCode:       ticket.QRCode,
	}
	for _, tt := range ticket.Event.TicketTypes {
		if tt.ID == ticket.TicketTypeID {
			export.TicketType = tt.Name
			break
		}
	}
	return export, nil
}

type localAdmin Local

func (l *localAdmin) Users(ctx context.Context) ([]models.User, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.ListUsers(ctx)
}

func (l *localAdmin) DeleteUser(ctx context.Context, id string) error {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return err
	}
	return l.store.DeleteUser(ctx, id)
}

func (l *localAdmin) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.Stats(ctx)
}

func (l *localAdmin) AllEvents(ctx context.Context) ([]models.Event, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.ListEvents(ctx, models.EventFilters{})
}

func (l *localAdmin) AllBookings(ctx context.Context) ([]models.Booking, error) {
	if _, err := (*Local)(l).caller(ctx); err != nil {
		return nil, err
	}
	return l.store.ListBookings(ctx)
}
