package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"tiketi/auth"
	"tiketi/clock"
	"tiketi/models"
	"tiketi/store"
)

func newLocalClient(t *testing.T, opts ...LocalOption) *Client {
	t.Helper()
	clk := clock.NewFixed(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))
	st := store.NewSeeded(store.WithLatency(store.Latency{}), store.WithClock(clk))
	return NewLocal(st, auth.NewTokens("local-test-secret", clk), opts...)
}

func signIn(t *testing.T, api *Client, email string) context.Context {
	t.Helper()
	resp, err := api.Auth.Login(context.Background(), email, "password")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return WithToken(context.Background(), resp.Token)
}

func TestLocalClient_Auth(t *testing.T) {
	t.Parallel()

	api := newLocalClient(t)

	t.Run("login mints a verifiable token", func(t *testing.T) {
		resp, err := api.Auth.Login(context.Background(), "attendee@example.com", "password")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if resp.Token == "" || resp.User.Role != models.RoleAttendee {
			t.Fatalf("unexpected response: %+v", resp)
		}

		user, err := api.Auth.CurrentUser(WithToken(context.Background(), resp.Token))
		if err != nil {
			t.Fatalf("current user: %v", err)
		}
		if user.ID != resp.User.ID {
			t.Fatalf("expected user %s, got %s", resp.User.ID, user.ID)
		}
	})

	t.Run("unknown email surfaces invalid credentials", func(t *testing.T) {
		_, err := api.Auth.Login(context.Background(), "nobody@example.com", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestLocalClient_Unauthorized(t *testing.T) {
	t.Parallel()

	fired := 0
	api := newLocalClient(t, WithOnUnauthorized(func() { fired++ }))

	t.Run("missing token fires the hook", func(t *testing.T) {
		_, err := api.Tickets.Mine(context.Background())
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if fired != 1 {
			t.Fatalf("expected hook once, fired %d", fired)
		}
	})

	t.Run("garbage token fires the hook", func(t *testing.T) {
		_, err := api.Bookings.Mine(WithToken(context.Background(), "garbage"))
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if fired != 2 {
			t.Fatalf("expected hook twice, fired %d", fired)
		}
	})
}

func TestLocalClient_TicketAccess(t *testing.T) {
	t.Parallel()

	api := newLocalClient(t)

	t.Run("owner reads their ticket", func(t *testing.T) {
		ctx := signIn(t, api, "attendee@example.com")
		ticket, err := api.Tickets.Get(ctx, "ticket-1")
		if err != nil {
			t.Fatalf("get ticket: %v", err)
		}
		if ticket.Event == nil {
			t.Fatal("expected joined event")
		}
	})

	t.Run("another user's ticket reads as missing", func(t *testing.T) {
		ctx := signIn(t, api, "organizer@example.com")
		if _, err := api.Tickets.Get(ctx, "ticket-1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("admin reads any ticket", func(t *testing.T) {
		ctx := signIn(t, api, "admin@example.com")
		if _, err := api.Tickets.Get(ctx, "ticket-1"); err != nil {
			t.Fatalf("get ticket as admin: %v", err)
		}
	})

	t.Run("download builds the export from the joined event", func(t *testing.T) {
		ctx := signIn(t, api, "attendee@example.com")
		export, err := api.Tickets.Download(ctx, "ticket-1")
		if err != nil {
			t.Fatalf("download: %v", err)
		}
		if export.EventTitle != "Nairobi Tech Summit 2024" {
			t.Fatalf("unexpected title %q", export.EventTitle)
		}
		if export.TicketType != "Early Bird" {
			t.Fatalf("unexpected ticket type %q", export.TicketType)
		}
		if export.QRCode != "TIKETI:1:TK001234567" {
			t.Fatalf("unexpected qr %q", export.QRCode)
		}
	})
}

func TestLocalClient_Events(t *testing.T) {
	t.Parallel()

	api := newLocalClient(t)

	t.Run("create attributes the signed-in organizer", func(t *testing.T) {
		ctx := signIn(t, api, "organizer@example.com")
		event, err := api.Events.Create(ctx, models.CreateEventRequest{
			Title:    "Thika Farmers Expo",
			Date:     "2024-07-01",
			County:   "Kiambu",
			Category: "Agriculture",
			Capacity: 80,
			TicketTypes: []models.TicketTypeInput{
				{Name: "Gate", Price: 200, Quantity: 80},
			},
		})
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		if event.OrganizerID != "2" {
			t.Fatalf("expected organizer 2, got %s", event.OrganizerID)
		}

		mine, err := api.Events.Mine(ctx)
		if err != nil {
			t.Fatalf("mine: %v", err)
		}
		found := false
		for _, e := range mine {
			if e.ID == event.ID {
				found = true
			}
		}
		if !found {
			t.Fatal("created event missing from my-events")
		}
	})

	t.Run("booking resolves the user from the token", func(t *testing.T) {
		ctx := signIn(t, api, "attendee@example.com")
		resp, err := api.Bookings.Create(ctx, "3", models.CreateBookingRequest{
			Selections:    []models.TicketSelection{{TicketTypeID: "general", Quantity: 1}},
			TransactionID: "FREE",
		})
		if err != nil {
			t.Fatalf("create booking: %v", err)
		}
		if resp.Booking.UserID != "3" {
			t.Fatalf("expected user 3, got %s", resp.Booking.UserID)
		}
		if resp.TransactionID != "FREE" {
			t.Fatalf("expected FREE transaction, got %q", resp.TransactionID)
		}
	})
}
