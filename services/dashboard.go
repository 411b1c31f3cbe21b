package services

import (
	"context"
	"fmt"

	"tiketi/client"
	"tiketi/clock"
	"tiketi/models"
)

// Dashboard builds the role-specific dashboard views. Each variant
// fetches and aggregates its own collections through the resource
// client; there is deliberately no shared aggregation between roles.
type Dashboard struct {
	api *client.Client
	clk clock.Clock
}

func NewDashboard(api *client.Client, clk clock.Clock) *Dashboard {
	return &Dashboard{api: api, clk: clk}
}

// View is the tagged result of the role dispatch: exactly one of the
// variant fields is set, matching Role.
type View struct {
	Role      models.Role
	Admin     *AdminView
	Organizer *OrganizerView
	Attendee  *AttendeeView
}

type AdminView struct {
	Stats    *models.DashboardStats
	Users    []models.User
	Events   []models.Event
	Bookings []models.Booking
}

type OrganizerView struct {
	Upcoming      []models.Event
	Past          []models.Event
	TotalBookings int
	Revenue       int
}

type AttendeeView struct {
	Tickets       []models.Ticket
	ActiveTickets int
	UsedTickets   int
	Upcoming      []models.Event
}

// Build dispatches on the user's role. The switch is exhaustive over
// the closed role set; anything else is a bug.
func (d *Dashboard) Build(ctx context.Context, user *models.User) (*View, error) {
	switch user.Role {
	case models.RoleAdmin:
		v, err := d.admin(ctx)
		if err != nil {
			return nil, err
		}
		return &View{Role: models.RoleAdmin, Admin: v}, nil
	case models.RoleOrganizer:
		v, err := d.organizer(ctx)
		if err != nil {
			return nil, err
		}
		return &View{Role: models.RoleOrganizer, Organizer: v}, nil
	case models.RoleAttendee:
		v, err := d.attendee(ctx)
		if err != nil {
			return nil, err
		}
		return &View{Role: models.RoleAttendee, Attendee: v}, nil
	}
	return nil, fmt.Errorf("unhandled role %q", user.Role)
}

func (d *Dashboard) admin(ctx context.Context) (*AdminView, error) {
	stats, err := d.api.Admin.Stats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := d.api.Admin.Users(ctx)
	if err != nil {
		return nil, err
	}
	events, err := d.api.Admin.AllEvents(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := d.api.Admin.AllBookings(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminView{Stats: stats, Users: users, Events: events, Bookings: bookings}, nil
}

func (d *Dashboard) organizer(ctx context.Context) (*OrganizerView, error) {
	events, err := d.api.Events.Mine(ctx)
	if err != nil {
		return nil, err
	}

	view := &OrganizerView{}
	now := d.clk.Now()
	for _, e := range events {
		if e.StartsAt().After(now) {
			view.Upcoming = append(view.Upcoming, e)
		} else {
			view.Past = append(view.Past, e)
		}
		view.TotalBookings += e.Capacity - e.AvailableSlots

		bookings, err := d.api.Bookings.ByEvent(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			if b.Status == models.BookingConfirmed {
				view.Revenue += b.TotalAmount
			}
		}
	}
	return view, nil
}

func (d *Dashboard) attendee(ctx context.Context) (*AttendeeView, error) {
	tickets, err := d.api.Tickets.Mine(ctx)
	if err != nil {
		return nil, err
	}

	view := &AttendeeView{Tickets: tickets}
	now := d.clk.Now()
	seen := make(map[string]bool)
	for _, t := range tickets {
		switch t.Status {
		case models.TicketActive:
			view.ActiveTickets++
		case models.TicketUsed:
			view.UsedTickets++
		}
		if t.Status != models.TicketActive || t.Event == nil || seen[t.EventID] {
			continue
		}
		if t.Event.StartsAt().After(now) {
			seen[t.EventID] = true
			view.Upcoming = append(view.Upcoming, *t.Event)
		}
	}
	return view, nil
}
