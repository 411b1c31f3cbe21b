package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"

	"tiketi/models"
)

// CreateBooking records a confirmed purchase: it decrements each
// selected ticket type's pool and the event's available slots, and
// appends the issued tickets, all inside one lock section. Any
// over-selection fails the whole booking; nothing is partially
// reserved.
func (s *MemoryStore) CreateBooking(ctx context.Context, userID, eventID string, selections []models.TicketSelection, method models.PaymentMethod, transactionID string) (*models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return nil, ErrNotFound
	}

	types := make(map[string]*models.TicketType, len(event.TicketTypes))
	for i := range event.TicketTypes {
		types[event.TicketTypes[i].ID] = &event.TicketTypes[i]
	}

	// Validate the whole selection before touching any pool. A ticket
	// type may appear in several selections, so quantities are summed
	// per type before the pool check.
	wanted := make(map[string]int, len(selections))
	requested := 0
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		if _, ok := types[sel.TicketTypeID]; !ok {
			return nil, fmt.Errorf("ticket type %s: %w", sel.TicketTypeID, ErrNotFound)
		}
		wanted[sel.TicketTypeID] += sel.Quantity
		requested += sel.Quantity
	}
	for id, qty := range wanted {
		tt := types[id]
		if qty > tt.AvailableQuantity {
			return nil, fmt.Errorf("%w: %s has %d left, requested %d",
				ErrInsufficientTickets, tt.Name, tt.AvailableQuantity, qty)
		}
	}
	if requested == 0 {
		return nil, fmt.Errorf("%w: empty ticket selection", ErrInsufficientTickets)
	}
	if requested > event.AvailableSlots {
		return nil, fmt.Errorf("%w: event has %d slots left, requested %d",
			ErrInsufficientTickets, event.AvailableSlots, requested)
	}

	now := s.clk.Now()
	booking := &models.Booking{
		ID:            uuid.NewString(),
		EventID:       eventID,
		UserID:        userID,
		PaymentStatus: models.PaymentCompleted,
		PaymentMethod: method,
		TransactionID: transactionID,
		BookingDate:   now,
		Status:        models.BookingConfirmed,
	}

	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		tt := types[sel.TicketTypeID]
		tt.AvailableQuantity -= sel.Quantity
		for i := 0; i < sel.Quantity; i++ {
			number := "TK-" + strings.ToUpper(shortuuid.New()[:10])
			ticket := &models.Ticket{
				ID:           uuid.NewString(),
				EventID:      eventID,
				TicketTypeID: tt.ID,
				UserID:       userID,
				TicketNumber: number,
				QRCode:       fmt.Sprintf("TIKETI:%s:%s", eventID, number),
				Status:       models.TicketActive,
				PurchaseDate: now,
				Price:        tt.Price,
			}
			s.tickets[ticket.ID] = ticket
			booking.Tickets = append(booking.Tickets, *ticket)
			booking.TotalAmount += tt.Price
		}
	}
	event.AvailableSlots -= requested
	event.UpdatedAt = now

	s.bookings[booking.ID] = booking
	return copyBooking(booking), nil
}

// CancelBooking marks a confirmed booking cancelled and returns its
// tickets to the pools.
func (s *MemoryStore) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if booking.Status == models.BookingCancelled {
		return copyBooking(booking), nil
	}

	event := s.events[booking.EventID]
	for i := range booking.Tickets {
		t := &booking.Tickets[i]
		t.Status = models.TicketCancelled
		if stored, ok := s.tickets[t.ID]; ok {
			stored.Status = models.TicketCancelled
		}
		if event == nil {
			continue
		}
		for j := range event.TicketTypes {
			if event.TicketTypes[j].ID == t.TicketTypeID {
				event.TicketTypes[j].AvailableQuantity++
			}
		}
		event.AvailableSlots++
	}
	booking.Status = models.BookingCancelled
	booking.PaymentStatus = models.PaymentRefunded

	return copyBooking(booking), nil
}

func (s *MemoryStore) BookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectBookings(func(b *models.Booking) bool { return b.UserID == userID }), nil
}

func (s *MemoryStore) BookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectBookings(func(b *models.Booking) bool { return b.EventID == eventID }), nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectBookings(func(*models.Booking) bool { return true }), nil
}

// collectBookings must be called with the lock held.
func (s *MemoryStore) collectBookings(match func(*models.Booking) bool) []models.Booking {
	var out []models.Booking
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, *copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].BookingDate.After(out[j].BookingDate)
	})
	return out
}
