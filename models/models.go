package models

import (
	"fmt"
	"time"
)

// Domain Models

// Role is the closed set of user roles. Parse with ParseRole so the
// rest of the code can switch on it exhaustively.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleOrganizer, RoleAttendee:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone,omitempty"`
	Role           Role      `json:"role"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// TicketType is a priced tier of admission with its own quantity pool.
// Invariant: 0 <= AvailableQuantity <= Quantity. Price is in whole
// Kenyan shillings.
type TicketType struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             int      `json:"price"`
	Quantity          int      `json:"quantity"`
	AvailableQuantity int      `json:"availableQuantity"`
	Benefits          []string `json:"benefits"`
}

// Event is a schedulable happening with capacity and one or more
// ticket types. Invariant: 0 <= AvailableSlots <= Capacity.
type Event struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Date           string       `json:"date"` // YYYY-MM-DD
	Time           string       `json:"time"` // HH:MM
	Location       string       `json:"location"`
	County         string       `json:"county"`
	Category       string       `json:"category"`
	Capacity       int          `json:"capacity"`
	AvailableSlots int          `json:"availableSlots"`
	OrganizerID    string       `json:"organizerId"`
	OrganizerName  string       `json:"organizerName"`
	ImageURL       string       `json:"imageUrl,omitempty"`
	TicketTypes    []TicketType `json:"ticketTypes"`
	IsFree         bool         `json:"isFree"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// MinTicketPrice returns the lowest price across the event's ticket
// types, used for price-range bucketing. Zero when the event has no
// ticket types.
func (e Event) MinTicketPrice() int {
	if len(e.TicketTypes) == 0 {
		return 0
	}
	min := e.TicketTypes[0].Price
	for _, tt := range e.TicketTypes[1:] {
		if tt.Price < min {
			min = tt.Price
		}
	}
	return min
}

// StartsAt combines the event's date and time fields. Events with a
// malformed date sort as the zero time.
func (e Event) StartsAt() time.Time {
	t, err := time.Parse("2006-01-02 15:04", e.Date+" "+e.Time)
	if err == nil {
		return t
	}
	t, err = time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID           string       `json:"id"`
	EventID      string       `json:"eventId"`
	TicketTypeID string       `json:"ticketTypeId"`
	UserID       string       `json:"userId"`
	TicketNumber string       `json:"ticketNumber"`
	QRCode       string       `json:"qrCode"`
	Status       TicketStatus `json:"status"`
	PurchaseDate time.Time    `json:"purchaseDate"`
	Price        int          `json:"price"`
	// Joined for display
	Event *Event `json:"event,omitempty"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMpesa        PaymentMethod = "mpesa"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingPending   BookingStatus = "pending"
)

// Booking groups the tickets purchased under one payment transaction.
type Booking struct {
	ID            string        `json:"id"`
	EventID       string        `json:"eventId"`
	UserID        string        `json:"userId"`
	Tickets       []Ticket      `json:"tickets"`
	TotalAmount   int           `json:"totalAmount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TransactionID string        `json:"mpesaTransactionId,omitempty"`
	BookingDate   time.Time     `json:"bookingDate"`
	Status        BookingStatus `json:"status"`
}

// PriceRange buckets an event by its minimum ticket price.
type PriceRange string

const (
	PriceFree      PriceRange = "free"
	PriceUnder1000 PriceRange = "under-1000"
	Price1000To5K  PriceRange = "1000-5000"
	PriceAbove5K   PriceRange = "above-5000"
)

// EventFilters carries the optional list-events query parameters.
type EventFilters struct {
	Search     string
	Category   string
	County     string
	Date       string
	PriceRange PriceRange
}

func (f EventFilters) IsZero() bool {
	return f == EventFilters{}
}

type DashboardStats struct {
	TotalEvents    int `json:"totalEvents"`
	TotalBookings  int `json:"totalBookings"`
	TotalUsers     int `json:"totalUsers"`
	UpcomingEvents int `json:"upcomingEvents"`
	TotalRevenue   int `json:"totalRevenue"`
}

// API Request/Response DTOs

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type TicketTypeInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Quantity    int      `json:"quantity"`
	Benefits    []string `json:"benefits"`
}

type CreateEventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Location    string            `json:"location"`
	County      string            `json:"county"`
	Category    string            `json:"category"`
	Capacity    int               `json:"capacity"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	IsFree      bool              `json:"isFree"`
	TicketTypes []TicketTypeInput `json:"ticketTypes"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	County      *string `json:"county"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
}

// TicketSelection maps a ticket type to a requested quantity.
type TicketSelection struct {
	TicketTypeID string `json:"ticketTypeId"`
	Quantity     int    `json:"quantity"`
}

type CreateBookingRequest struct {
	Selections    []TicketSelection `json:"ticketSelections"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	PhoneNumber   string            `json:"phoneNumber,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
}

type BookingResponse struct {
	Booking       *Booking `json:"booking"`
	TransactionID string   `json:"transactionId"`
}

// TicketExport is the structured-data download format for a ticket.
type TicketExport struct {
	EventTitle   string `json:"eventTitle"`
	TicketNumber string `json:"ticketNumber"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	TicketType   string `json:"ticketType"`
	Price        int    `json:"price"`
	QRCode       string `json:"qrCode"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
