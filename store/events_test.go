package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tiketi/clock"
	"tiketi/models"
)

var testNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewSeeded(WithLatency(Latency{}), WithClock(clock.NewFixed(testNow)))
}

func eventIDs(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestSeedInvariants(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	events, err := s.ListEvents(context.Background(), models.EventFilters{})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 seeded events, got %d", len(events))
	}

	for _, e := range events {
		if e.AvailableSlots < 0 || e.AvailableSlots > e.Capacity {
			t.Errorf("event %s: availableSlots %d outside [0, %d]", e.ID, e.AvailableSlots, e.Capacity)
		}
		for _, tt := range e.TicketTypes {
			if tt.AvailableQuantity < 0 || tt.AvailableQuantity > tt.Quantity {
				t.Errorf("event %s type %s: availableQuantity %d outside [0, %d]",
					e.ID, tt.ID, tt.AvailableQuantity, tt.Quantity)
			}
		}
	}
}

func TestListEvents_Filters(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	list := func(t *testing.T, f models.EventFilters) []models.Event {
		t.Helper()
		events, err := s.ListEvents(ctx, f)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		return events
	}

	t.Run("no filters returns all sorted by start time", func(t *testing.T) {
		got := eventIDs(list(t, models.EventFilters{}))
		want := []string{"1", "2", "3", "4"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		events := list(t, models.EventFilters{Search: "TECH"})
		if len(events) != 1 || events[0].ID != "1" {
			t.Fatalf("expected event 1, got %v", eventIDs(events))
		}
	})

	t.Run("search matches description", func(t *testing.T) {
		events := list(t, models.EventFilters{Search: "coast"})
		if len(events) != 1 || events[0].ID != "4" {
			t.Fatalf("expected event 4, got %v", eventIDs(events))
		}
	})

	t.Run("county filter is exact", func(t *testing.T) {
		events := list(t, models.EventFilters{County: "Kisumu"})
		if len(events) != 1 || events[0].ID != "3" {
			t.Fatalf("expected event 3, got %v", eventIDs(events))
		}
	})

	t.Run("category filter", func(t *testing.T) {
		events := list(t, models.EventFilters{Category: "Sports & Fitness"})
		if len(events) != 1 || events[0].ID != "4" {
			t.Fatalf("expected event 4, got %v", eventIDs(events))
		}
	})

	t.Run("date filter", func(t *testing.T) {
		events := list(t, models.EventFilters{Date: "2024-03-20"})
		if len(events) != 1 || events[0].ID != "2" {
			t.Fatalf("expected event 2, got %v", eventIDs(events))
		}
	})

	t.Run("free bucket holds exactly the free events", func(t *testing.T) {
		events := list(t, models.EventFilters{PriceRange: models.PriceFree})
		if len(events) != 1 || events[0].ID != "3" {
			t.Fatalf("expected event 3, got %v", eventIDs(events))
		}
	})

	t.Run("under-1000 excludes free events", func(t *testing.T) {
		events := list(t, models.EventFilters{PriceRange: models.PriceUnder1000})
		if len(events) != 1 || events[0].ID != "4" {
			t.Fatalf("expected event 4 (min 500), got %v", eventIDs(events))
		}
	})

	t.Run("1000-5000 buckets on minimum ticket price", func(t *testing.T) {
		got := eventIDs(list(t, models.EventFilters{PriceRange: models.Price1000To5K}))
		if len(got) != 2 || got[0] != "1" || got[1] != "2" {
			t.Fatalf("expected events 1 and 2, got %v", got)
		}
	})

	t.Run("above-5000 matches nothing in the seed", func(t *testing.T) {
		events := list(t, models.EventFilters{PriceRange: models.PriceAbove5K})
		if len(events) != 0 {
			t.Fatalf("expected no events, got %v", eventIDs(events))
		}
	})

	t.Run("filters combine", func(t *testing.T) {
		events := list(t, models.EventFilters{County: "Nairobi", PriceRange: models.Price1000To5K, Search: "summit"})
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %v", eventIDs(events))
		}
	})
}

func TestGetEvent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	t.Run("returns an isolated copy", func(t *testing.T) {
		event, err := s.GetEvent(ctx, "1")
		if err != nil {
			t.Fatalf("get event: %v", err)
		}
		event.Title = "mutated"
		event.TicketTypes[0].AvailableQuantity = 0

		again, err := s.GetEvent(ctx, "1")
		if err != nil {
			t.Fatalf("get event again: %v", err)
		}
		if again.Title != "Nairobi Tech Summit 2024" {
			t.Fatalf("stored title mutated: %q", again.Title)
		}
		if again.TicketTypes[0].AvailableQuantity != 45 {
			t.Fatalf("stored pool mutated: %d", again.TicketTypes[0].AvailableQuantity)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := s.GetEvent(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	organizer, err := s.GetUserByID(ctx, "2")
	if err != nil {
		t.Fatalf("get organizer: %v", err)
	}

	event, err := s.CreateEvent(ctx, models.CreateEventRequest{
		Title:    "Nakuru Jazz Night",
		Date:     "2024-06-01",
		Time:     "19:00",
		Location: "Lake View Gardens",
		County:   "Nakuru",
		Category: "Music & Entertainment",
		Capacity: 120,
		TicketTypes: []models.TicketTypeInput{
			{Name: "Standard", Price: 1500, Quantity: 100},
			{Name: "VIP", Price: 4000, Quantity: 20},
		},
	}, organizer)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if event.AvailableSlots != 120 {
		t.Fatalf("expected slots to start at capacity, got %d", event.AvailableSlots)
	}
	if event.OrganizerName != "John Organizer" {
		t.Fatalf("expected organizer name set, got %q", event.OrganizerName)
	}
	for _, tt := range event.TicketTypes {
		if tt.AvailableQuantity != tt.Quantity {
			t.Fatalf("type %s: pool should start full, got %d/%d", tt.Name, tt.AvailableQuantity, tt.Quantity)
		}
		if tt.ID == "" {
			t.Fatalf("type %s: missing id", tt.Name)
		}
	}

	mine, err := s.EventsByOrganizer(ctx, "2")
	if err != nil {
		t.Fatalf("events by organizer: %v", err)
	}
	if len(mine) != 5 {
		t.Fatalf("expected 5 organizer events, got %d", len(mine))
	}
}

func TestUpdateEvent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	title := "Renamed Summit"
	updated, err := s.UpdateEvent(ctx, "1", models.UpdateEventRequest{Title: &title})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Title != "Renamed Summit" {
		t.Fatalf("title not applied: %q", updated.Title)
	}
	// Fields not present in the patch stay untouched.
	if updated.County != "Nairobi" || updated.Capacity != 500 {
		t.Fatalf("unrelated fields changed: %q %d", updated.County, updated.Capacity)
	}

	if _, err := s.UpdateEvent(ctx, "nope", models.UpdateEventRequest{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	if err := s.DeleteEvent(ctx, "4"); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if _, err := s.GetEvent(ctx, "4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteEvent(ctx, "4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSimulatedLatencyHonoursContext(t *testing.T) {
	t.Parallel()

	s := NewSeeded(WithLatency(Latency{Min: time.Minute, Max: 2 * time.Minute}))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := s.ListEvents(ctx, models.EventFilters{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
