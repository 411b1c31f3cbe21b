package store

import (
	"time"

	"tiketi/models"
)

// seed loads the development fixtures: three accounts (one per role,
// password "password"), four events across the counties, and a handful
// of issued tickets for the attendee.
func (s *MemoryStore) seed() {
	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hashed := hashPassword("password")

	users := []*models.User{
		{
			ID: "1", Email: "admin@example.com",
			FirstName: "Admin", LastName: "User",
			Role: models.RoleAdmin, HashedPassword: hashed,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "2", Email: "organizer@example.com",
			FirstName: "John", LastName: "Organizer",
			Role: models.RoleOrganizer, HashedPassword: hashed,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "3", Email: "attendee@example.com",
			FirstName: "Jane", LastName: "Attendee",
			Role: models.RoleAttendee, HashedPassword: hashed,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	}

	events := []*models.Event{
		{
			ID:          "1",
			Title:       "Nairobi Tech Summit 2024",
			Description: "Kenya's premier technology conference featuring the latest in AI, fintech, and digital innovation.",
			Date:        "2024-03-15", Time: "09:00",
			Location: "KICC - Kenyatta International Convention Centre",
			County:   "Nairobi", Category: "Technology & Innovation",
			Capacity: 500, AvailableSlots: 245,
			OrganizerID: "2", OrganizerName: "John Organizer",
			IsFree: false,
			TicketTypes: []models.TicketType{
				{
					ID: "early-bird", Name: "Early Bird", Description: "Limited time offer",
					Price: 2500, Quantity: 100, AvailableQuantity: 45,
					Benefits: []string{"Event access", "Welcome kit", "Lunch", "Networking session"},
				},
				{
					ID: "regular", Name: "Regular", Description: "Standard admission",
					Price: 3500, Quantity: 300, AvailableQuantity: 150,
					Benefits: []string{"Event access", "Lunch", "Networking session"},
				},
				{
					ID: "vip", Name: "VIP", Description: "Premium experience",
					Price: 7500, Quantity: 100, AvailableQuantity: 50,
					Benefits: []string{"Event access", "VIP seating", "Welcome kit", "Lunch", "Networking session", "Meet & greet with speakers"},
				},
			},
			ImageURL:  "https://images.pexels.com/photos/1181533/pexels-photo-1181533.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID:          "2",
			Title:       "Kenyan Entrepreneurs Summit",
			Description: "Connect with successful entrepreneurs and learn strategies for building businesses in Kenya.",
			Date:        "2024-03-20", Time: "10:00",
			Location: "Sarit Centre",
			County:   "Nairobi", Category: "Business & Entrepreneurship",
			Capacity: 300, AvailableSlots: 150,
			OrganizerID: "2", OrganizerName: "John Organizer",
			IsFree: false,
			TicketTypes: []models.TicketType{
				{
					ID: "student", Name: "Student", Description: "For university students",
					Price: 1000, Quantity: 50, AvailableQuantity: 25,
					Benefits: []string{"Event access", "Student networking", "Lunch"},
				},
				{
					ID: "professional", Name: "Professional", Description: "For working professionals",
					Price: 2500, Quantity: 200, AvailableQuantity: 100,
					Benefits: []string{"Event access", "Professional networking", "Lunch", "Workshop materials"},
				},
				{
					ID: "entrepreneur", Name: "Entrepreneur", Description: "For business owners",
					Price: 4000, Quantity: 50, AvailableQuantity: 25,
					Benefits: []string{"Event access", "VIP networking", "Lunch", "Workshop materials", "1-on-1 mentorship session"},
				},
			},
			ImageURL:  "https://images.pexels.com/photos/1181396/pexels-photo-1181396.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID:          "3",
			Title:       "Kisumu Cultural Festival",
			Description: "Celebrate the rich cultural heritage of Western Kenya with music, dance, and traditional crafts.",
			Date:        "2024-03-25", Time: "14:00",
			Location: "Dunga Beach",
			County:   "Kisumu", Category: "Arts & Culture",
			Capacity: 200, AvailableSlots: 180,
			OrganizerID: "2", OrganizerName: "John Organizer",
			IsFree: true,
			TicketTypes: []models.TicketType{
				{
					ID: "general", Name: "General Admission", Description: "Free entry to the festival",
					Price: 0, Quantity: 200, AvailableQuantity: 180,
					Benefits: []string{"Festival access", "Cultural performances", "Art exhibitions"},
				},
			},
			ImageURL:  "https://images.pexels.com/photos/1181298/pexels-photo-1181298.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID:          "4",
			Title:       "Mombasa Beach Marathon",
			Description: "Annual marathon along the beautiful Kenyan coast. Multiple race categories available.",
			Date:        "2024-04-10", Time: "06:00",
			Location: "Nyali Beach",
			County:   "Mombasa", Category: "Sports & Fitness",
			Capacity: 1000, AvailableSlots: 750,
			OrganizerID: "2", OrganizerName: "John Organizer",
			IsFree: false,
			TicketTypes: []models.TicketType{
				{
					ID: "5k", Name: "5K Fun Run", Description: "Family-friendly 5K run",
					Price: 500, Quantity: 300, AvailableQuantity: 250,
					Benefits: []string{"Race participation", "Finisher medal", "T-shirt", "Refreshments"},
				},
				{
					ID: "10k", Name: "10K Race", Description: "Competitive 10K race",
					Price: 1000, Quantity: 400, AvailableQuantity: 300,
					Benefits: []string{"Race participation", "Finisher medal", "T-shirt", "Refreshments", "Timing chip"},
				},
				{
					ID: "half-marathon", Name: "Half Marathon", Description: "21K half marathon",
					Price: 1500, Quantity: 250, AvailableQuantity: 175,
					Benefits: []string{"Race participation", "Finisher medal", "T-shirt", "Refreshments", "Timing chip", "Certificate"},
				},
				{
					ID: "full-marathon", Name: "Full Marathon", Description: "42K full marathon",
					Price: 2000, Quantity: 50, AvailableQuantity: 25,
					Benefits: []string{"Race participation", "Finisher medal", "T-shirt", "Refreshments", "Timing chip", "Certificate", "Massage session"},
				},
			},
			ImageURL:  "https://images.pexels.com/photos/2402777/pexels-photo-2402777.jpeg?auto=compress&cs=tinysrgb&w=800",
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	}

	tickets := []*models.Ticket{
		{
			ID: "ticket-1", EventID: "1", TicketTypeID: "early-bird", UserID: "3",
			TicketNumber: "TK001234567", QRCode: "TIKETI:1:TK001234567",
			Status:       models.TicketActive,
			PurchaseDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), Price: 2500,
		},
		{
			ID: "ticket-2", EventID: "2", TicketTypeID: "professional", UserID: "3",
			TicketNumber: "TK001234568", QRCode: "TIKETI:2:TK001234568",
			Status:       models.TicketActive,
			PurchaseDate: time.Date(2024, 1, 20, 14, 15, 0, 0, time.UTC), Price: 2500,
		},
		{
			ID: "ticket-3", EventID: "3", TicketTypeID: "general", UserID: "3",
			TicketNumber: "TK001234569", QRCode: "TIKETI:3:TK001234569",
			Status:       models.TicketUsed,
			PurchaseDate: time.Date(2024, 1, 10, 9, 45, 0, 0, time.UTC), Price: 0,
		},
		{
			ID: "ticket-4", EventID: "4", TicketTypeID: "10k", UserID: "3",
			TicketNumber: "TK001234570", QRCode: "TIKETI:4:TK001234570",
			Status:       models.TicketActive,
			PurchaseDate: time.Date(2024, 2, 1, 16, 20, 0, 0, time.UTC), Price: 1000,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
	for _, e := range events {
		s.events[e.ID] = e
	}
	for _, t := range tickets {
		s.tickets[t.ID] = t
	}
}
