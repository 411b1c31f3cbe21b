package store

import (
	"context"
	"sort"

	"tiketi/models"
)

// TicketsByOwner returns the user's tickets, newest purchase first,
// with the owning event joined for display.
func (s *MemoryStore) TicketsByOwner(ctx context.Context, userID string) ([]models.Ticket, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Ticket
	for _, t := range s.tickets {
		if t.UserID != userID {
			continue
		}
		ticket := *t
		if e, ok := s.events[t.EventID]; ok {
			ticket.Event = copyEvent(e)
		}
		out = append(out, ticket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].TicketNumber < out[j].TicketNumber
		}
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out, nil
}

func (s *MemoryStore) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	ticket := *t
	if e, ok := s.events[t.EventID]; ok {
		ticket.Event = copyEvent(e)
	}
	return &ticket, nil
}
