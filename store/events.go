package store

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"tiketi/models"
)

// ListEvents returns the events matching the given filters, sorted by
// start time then id.
func (s *MemoryStore) ListEvents(ctx context.Context, filters models.EventFilters) ([]models.Event, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if matchesFilters(e, filters) {
			out = append(out, *copyEvent(e))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].StartsAt(), out[j].StartsAt()
		if si.Equal(sj) {
			return out[i].ID < out[j].ID
		}
		return si.Before(sj)
	})
	return out, nil
}

func matchesFilters(e *models.Event, f models.EventFilters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			return false
		}
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.County != "" && e.County != f.County {
		return false
	}
	if f.Date != "" && e.Date != f.Date {
		return false
	}
	return matchesPriceRange(e, f.PriceRange)
}

// matchesPriceRange buckets an event on the minimum price across its
// ticket types. Free events belong only to the free bucket.
func matchesPriceRange(e *models.Event, pr models.PriceRange) bool {
	switch pr {
	case "":
		return true
	case models.PriceFree:
		return e.IsFree
	case models.PriceUnder1000:
		return !e.IsFree && e.MinTicketPrice() < 1000
	case models.Price1000To5K:
		min := e.MinTicketPrice()
		return !e.IsFree && min >= 1000 && min <= 5000
	case models.PriceAbove5K:
		return !e.IsFree && e.MinTicketPrice() > 5000
	}
	return false
}

func (s *MemoryStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEvent(e), nil
}

// CreateEvent stores a new event for the given organizer. Available
// slots start at capacity and each ticket type's pool starts full.
func (s *MemoryStore) CreateEvent(ctx context.Context, req models.CreateEventRequest, organizer *models.User) (*models.Event, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	event := &models.Event{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Date:           req.Date,
		Time:           req.Time,
		Location:       req.Location,
		County:         req.County,
		Category:       req.Category,
		Capacity:       req.Capacity,
		AvailableSlots: req.Capacity,
		OrganizerID:    organizer.ID,
		OrganizerName:  organizer.FullName(),
		ImageURL:       req.ImageURL,
		IsFree:         req.IsFree,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, in := range req.TicketTypes {
		event.TicketTypes = append(event.TicketTypes, models.TicketType{
			ID:                uuid.NewString(),
			Name:              in.Name,
			Description:       in.Description,
			Price:             in.Price,
			Quantity:          in.Quantity,
			AvailableQuantity: in.Quantity,
			Benefits:          append([]string(nil), in.Benefits...),
		})
	}

	s.mu.Lock()
	s.events[event.ID] = event
	s.mu.Unlock()

	return copyEvent(event), nil
}

func (s *MemoryStore) UpdateEvent(ctx context.Context, id string, req models.UpdateEventRequest) (*models.Event, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}

	if req.Title != nil {
		e.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Time != nil {
		e.Time = *req.Time
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.County != nil {
		e.County = *req.County
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
	}
	e.UpdatedAt = s.clk.Now()

	return copyEvent(e), nil
}

func (s *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	if err := s.simulate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// EventsByOrganizer returns the events owned by the given user.
func (s *MemoryStore) EventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Event
	for _, e := range s.events {
		if e.OrganizerID == organizerID {
			out = append(out, *copyEvent(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt().Before(out[j].StartsAt()) })
	return out, nil
}
