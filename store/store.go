// Package store is the in-memory stand-in for the remote service. It
// holds seeded marketplace collections and resolves every operation
// after a simulated network delay.
package store

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"tiketi/clock"
	"tiketi/models"
)

var (
	ErrNotFound            = errors.New("NOT_FOUND")
	ErrEmailTaken          = errors.New("EMAIL_TAKEN")
	ErrInsufficientTickets = errors.New("INSUFFICIENT_TICKETS")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
)

// Latency is the artificial delay window applied to store operations.
// Reads use the low end, writes the high end.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

var DefaultLatency = Latency{Min: 500 * time.Millisecond, Max: time.Second}

type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	events   map[string]*models.Event
	tickets  map[string]*models.Ticket
	bookings map[string]*models.Booking

	clk     clock.Clock
	latency Latency

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*MemoryStore)

// WithLatency overrides the simulated delay window. A zero Latency
// disables the delay entirely, which tests rely on.
func WithLatency(l Latency) Option {
	return func(s *MemoryStore) { s.latency = l }
}

func WithClock(clk clock.Clock) Option {
	return func(s *MemoryStore) { s.clk = clk }
}

func New(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		users:    make(map[string]*models.User),
		events:   make(map[string]*models.Event),
		tickets:  make(map[string]*models.Ticket),
		bookings: make(map[string]*models.Booking),
		clk:      clock.NewSystem(),
		latency:  DefaultLatency,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded returns a store loaded with the marketplace fixtures.
func NewSeeded(opts ...Option) *MemoryStore {
	s := New(opts...)
	s.seed()
	return s
}

// simulate blocks for a random duration inside the latency window,
// or until the context is cancelled.
func (s *MemoryStore) simulate(ctx context.Context) error {
	d := s.delay()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *MemoryStore) delay() time.Duration {
	if s.latency.Max <= 0 {
		return 0
	}
	span := s.latency.Max - s.latency.Min
	if span <= 0 {
		return s.latency.Min
	}
	s.rngMu.Lock()
	jitter := time.Duration(s.rng.Int63n(int64(span)))
	s.rngMu.Unlock()
	return s.latency.Min + jitter
}

func copyEvent(e *models.Event) *models.Event {
	out := *e
	out.TicketTypes = make([]models.TicketType, len(e.TicketTypes))
	for i, tt := range e.TicketTypes {
		out.TicketTypes[i] = tt
		out.TicketTypes[i].Benefits = append([]string(nil), tt.Benefits...)
	}
	return &out
}

func copyTicket(t *models.Ticket) *models.Ticket {
	out := *t
	if t.Event != nil {
		out.Event = copyEvent(t.Event)
	}
	return &out
}

func copyBooking(b *models.Booking) *models.Booking {
	out := *b
	out.Tickets = make([]models.Ticket, len(b.Tickets))
	for i := range b.Tickets {
		out.Tickets[i] = *copyTicket(&b.Tickets[i])
	}
	return &out
}
