package models

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"admin", "organizer", "attendee"} {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if string(role) != s {
			t.Fatalf("ParseRole(%q) = %q", s, role)
		}
	}

	for _, s := range []string{"", "Admin", "superuser"} {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q): expected error", s)
		}
	}
}

func TestEventStartsAt(t *testing.T) {
	t.Parallel()

	e := Event{Date: "2024-03-15", Time: "09:00"}
	want := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	if got := e.StartsAt(); !got.Equal(want) {
		t.Fatalf("StartsAt() = %v, want %v", got, want)
	}

	// Missing time falls back to midnight.
	e = Event{Date: "2024-03-15"}
	want = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := e.StartsAt(); !got.Equal(want) {
		t.Fatalf("StartsAt() without time = %v, want %v", got, want)
	}

	e = Event{Date: "soon"}
	if !e.StartsAt().IsZero() {
		t.Fatal("malformed date should sort as the zero time")
	}
}

func TestMinTicketPrice(t *testing.T) {
	t.Parallel()

	e := Event{TicketTypes: []TicketType{
		{Price: 3500}, {Price: 2500}, {Price: 7500},
	}}
	if got := e.MinTicketPrice(); got != 2500 {
		t.Fatalf("MinTicketPrice() = %d, want 2500", got)
	}

	if got := (&Event{}).MinTicketPrice(); got != 0 {
		t.Fatalf("MinTicketPrice() with no types = %d, want 0", got)
	}
}
