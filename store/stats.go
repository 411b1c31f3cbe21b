package store

import (
	"context"

	"tiketi/models"
)

// Stats aggregates the marketplace-wide dashboard figures. Bookings
// are counted as filled capacity so the figure stays meaningful even
// for seeded events whose bookings predate this snapshot.
func (s *MemoryStore) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clk.Now()
	stats := &models.DashboardStats{
		TotalEvents: len(s.events),
		TotalUsers:  len(s.users),
	}
	for _, e := range s.events {
		stats.TotalBookings += e.Capacity - e.AvailableSlots
		if e.StartsAt().After(now) {
			stats.UpcomingEvents++
		}
	}
	for _, t := range s.tickets {
		if t.Status != models.TicketCancelled {
			stats.TotalRevenue += t.Price
		}
	}
	return stats, nil
}
