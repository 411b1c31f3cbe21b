package services

import (
	"context"
	"errors"
	"fmt"

	"tiketi/models"
)

var (
	ErrNoSelection       = errors.New("NO_SELECTION")
	ErrWrongStep         = errors.New("WRONG_STEP")
	ErrUnknownTicketType = errors.New("UNKNOWN_TICKET_TYPE")
	ErrNotFree           = errors.New("NOT_FREE")
)

// Step is one stage of the booking flow.
type Step string

const (
	StepTickets      Step = "tickets"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// FreeTransactionID marks a zero-amount booking confirmation.
const FreeTransactionID = "FREE"

// BookingFlow is the tickets -> payment -> confirmation progression
// behind the booking modal. No step is skipped and there is no
// backward transition; Finish resets the flow to tickets for reuse.
// One flow serves one modal instance and is not goroutine-safe.
type BookingFlow struct {
	event         *models.Event
	step          Step
	quantities    map[string]int
	transactionID string
	onSuccess     func()
}

// NewBookingFlow starts a flow for the given event. onSuccess runs
// once, at Finish, so the originating view can refresh; it may be nil.
func NewBookingFlow(event *models.Event, onSuccess func()) *BookingFlow {
	return &BookingFlow{
		event:      event,
		step:       StepTickets,
		quantities: make(map[string]int),
		onSuccess:  onSuccess,
	}
}

func (f *BookingFlow) Step() Step {
	return f.step
}

func (f *BookingFlow) Event() *models.Event {
	return f.event
}

// TransactionID is set once payment (or a free confirmation) succeeds.
func (f *BookingFlow) TransactionID() string {
	return f.transactionID
}

func (f *BookingFlow) ticketType(id string) *models.TicketType {
	for i := range f.event.TicketTypes {
		if f.event.TicketTypes[i].ID == id {
			return &f.event.TicketTypes[i]
		}
	}
	return nil
}

// SetQuantity records a requested quantity for a ticket type, clamped
// to [0, availableQuantity]. Zero removes the entry.
func (f *BookingFlow) SetQuantity(ticketTypeID string, quantity int) error {
	if f.step != StepTickets {
		return fmt.Errorf("%w: cannot change selection during %s", ErrWrongStep, f.step)
	}
	tt := f.ticketType(ticketTypeID)
	if tt == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTicketType, ticketTypeID)
	}

	if quantity < 0 {
		quantity = 0
	}
	if quantity > tt.AvailableQuantity {
		quantity = tt.AvailableQuantity
	}
	if quantity == 0 {
		delete(f.quantities, ticketTypeID)
		return nil
	}
	f.quantities[ticketTypeID] = quantity
	return nil
}

// Increment bumps the selection by one; at availableQuantity it is a
// no-op.
func (f *BookingFlow) Increment(ticketTypeID string) error {
	return f.SetQuantity(ticketTypeID, f.Quantity(ticketTypeID)+1)
}

func (f *BookingFlow) Decrement(ticketTypeID string) error {
	return f.SetQuantity(ticketTypeID, f.Quantity(ticketTypeID)-1)
}

func (f *BookingFlow) Quantity(ticketTypeID string) int {
	return f.quantities[ticketTypeID]
}

// Selections returns the non-zero selections in the event's ticket
// type order.
func (f *BookingFlow) Selections() []models.TicketSelection {
	var out []models.TicketSelection
	for _, tt := range f.event.TicketTypes {
		if qty := f.quantities[tt.ID]; qty > 0 {
			out = append(out, models.TicketSelection{TicketTypeID: tt.ID, Quantity: qty})
		}
	}
	return out
}

// TotalAmount is the running total across the selection.
func (f *BookingFlow) TotalAmount() int {
	total := 0
	for id, qty := range f.quantities {
		if tt := f.ticketType(id); tt != nil {
			total += tt.Price * qty
		}
	}
	return total
}

func (f *BookingFlow) TotalTickets() int {
	total := 0
	for _, qty := range f.quantities {
		total += qty
	}
	return total
}

// ProceedToPayment advances tickets -> payment. It requires at least
// one non-zero selection; otherwise the flow stays on tickets.
func (f *BookingFlow) ProceedToPayment() error {
	if f.step != StepTickets {
		return fmt.Errorf("%w: already past ticket selection", ErrWrongStep)
	}
	if len(f.Selections()) == 0 {
		return ErrNoSelection
	}
	f.step = StepPayment
	return nil
}

// ConfirmFree completes a zero-amount booking, skipping the payment
// processors entirely.
func (f *BookingFlow) ConfirmFree() error {
	if f.step != StepPayment {
		return fmt.Errorf("%w: confirm from %s", ErrWrongStep, f.step)
	}
	if f.TotalAmount() != 0 {
		return ErrNotFree
	}
	f.transactionID = FreeTransactionID
	f.step = StepConfirmation
	return nil
}

// Pay runs the selected processor for a non-zero total. On failure the
// flow stays on payment for a manual retry.
func (f *BookingFlow) Pay(ctx context.Context, processor PaymentProcessor, phoneNumber string) error {
	if f.step != StepPayment {
		return fmt.Errorf("%w: pay from %s", ErrWrongStep, f.step)
	}
	total := f.TotalAmount()
	if total == 0 {
		return f.ConfirmFree()
	}

	txn, err := processor.Process(ctx, PaymentRequest{Amount: total, PhoneNumber: phoneNumber})
	if err != nil {
		return err
	}
	f.transactionID = txn
	f.step = StepConfirmation
	return nil
}

// Finish closes a confirmed flow: it fires the success callback and
// resets the machine back to tickets for reuse.
func (f *BookingFlow) Finish() error {
	if f.step != StepConfirmation {
		return fmt.Errorf("%w: finish from %s", ErrWrongStep, f.step)
	}
	if f.onSuccess != nil {
		f.onSuccess()
	}
	f.Reset()
	return nil
}

// Reset returns the flow to the tickets step with an empty selection.
func (f *BookingFlow) Reset() {
	f.step = StepTickets
	f.quantities = make(map[string]int)
	f.transactionID = ""
}
