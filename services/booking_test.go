package services

import (
	"context"
	"errors"
	"testing"

	"tiketi/models"
)

func summitEvent() *models.Event {
	return &models.Event{
		ID:             "1",
		Title:          "Nairobi Tech Summit 2024",
		Capacity:       500,
		AvailableSlots: 245,
		TicketTypes: []models.TicketType{
			{ID: "early-bird", Name: "Early Bird", Price: 2500, Quantity: 100, AvailableQuantity: 45},
			{ID: "regular", Name: "Regular", Price: 3500, Quantity: 300, AvailableQuantity: 150},
			{ID: "vip", Name: "VIP", Price: 7500, Quantity: 100, AvailableQuantity: 50},
		},
	}
}

func freeEvent() *models.Event {
	return &models.Event{
		ID:     "3",
		Title:  "Kisumu Cultural Festival",
		IsFree: true,
		TicketTypes: []models.TicketType{
			{ID: "general", Name: "General Admission", Price: 0, Quantity: 200, AvailableQuantity: 180},
		},
	}
}

// spyProcessor records whether Process ran.
type spyProcessor struct {
	method models.PaymentMethod
	called bool
	txn    string
	err    error
}

func (p *spyProcessor) Method() models.PaymentMethod { return p.method }

func (p *spyProcessor) Process(ctx context.Context, req PaymentRequest) (string, error) {
	p.called = true
	if p.err != nil {
		return "", p.err
	}
	return p.txn, nil
}

func TestBookingFlow_Selection(t *testing.T) {
	t.Parallel()

	t.Run("quantity clamps to the available pool", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		if err := flow.SetQuantity("early-bird", 100); err != nil {
			t.Fatalf("set quantity: %v", err)
		}
		if got := flow.Quantity("early-bird"); got != 45 {
			t.Fatalf("expected clamp to 45, got %d", got)
		}

		if err := flow.SetQuantity("early-bird", -3); err != nil {
			t.Fatalf("set quantity: %v", err)
		}
		if got := flow.Quantity("early-bird"); got != 0 {
			t.Fatalf("expected negative to clear, got %d", got)
		}
	})

	t.Run("increment at the pool limit is a no-op", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		if err := flow.SetQuantity("vip", 50); err != nil {
			t.Fatalf("set quantity: %v", err)
		}
		if err := flow.Increment("vip"); err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got := flow.Quantity("vip"); got != 50 {
			t.Fatalf("expected 50 after increment at limit, got %d", got)
		}
	})

	t.Run("unknown ticket type", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		if err := flow.SetQuantity("platinum", 1); !errors.Is(err, ErrUnknownTicketType) {
			t.Fatalf("expected ErrUnknownTicketType, got %v", err)
		}
	})

	t.Run("total is price times quantity across the selection", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		_ = flow.SetQuantity("vip", 2)
		_ = flow.SetQuantity("regular", 1)
		if got := flow.TotalAmount(); got != 2*7500+3500 {
			t.Fatalf("expected 18500, got %d", got)
		}
		if got := flow.TotalTickets(); got != 3 {
			t.Fatalf("expected 3 tickets, got %d", got)
		}
	})

	t.Run("two VIP tickets total 15000 and unlock payment", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		_ = flow.SetQuantity("vip", 2)
		if got := flow.TotalAmount(); got != 15000 {
			t.Fatalf("expected 15000, got %d", got)
		}
		if err := flow.ProceedToPayment(); err != nil {
			t.Fatalf("proceed to payment: %v", err)
		}
		if flow.Step() != StepPayment {
			t.Fatalf("expected payment step, got %s", flow.Step())
		}
	})

	t.Run("empty selection blocks payment", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		if err := flow.ProceedToPayment(); !errors.Is(err, ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
		if flow.Step() != StepTickets {
			t.Fatalf("flow advanced on empty selection: %s", flow.Step())
		}
	})

	t.Run("selection is frozen after ticket step", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		_ = flow.SetQuantity("vip", 1)
		if err := flow.ProceedToPayment(); err != nil {
			t.Fatalf("proceed: %v", err)
		}
		if err := flow.SetQuantity("vip", 3); !errors.Is(err, ErrWrongStep) {
			t.Fatalf("expected ErrWrongStep, got %v", err)
		}
	})
}

func TestBookingFlow_Payment(t *testing.T) {
	t.Parallel()

	t.Run("free booking skips the processor", func(t *testing.T) {
		flow := NewBookingFlow(freeEvent(), nil)
		_ = flow.SetQuantity("general", 2)
		if err := flow.ProceedToPayment(); err != nil {
			t.Fatalf("proceed: %v", err)
		}

		spy := &spyProcessor{method: models.PaymentMpesa, txn: "MPSHOULDNOTRUN"}
		if err := flow.Pay(context.Background(), spy, ""); err != nil {
			t.Fatalf("pay: %v", err)
		}
		if spy.called {
			t.Fatal("processor ran for a free booking")
		}
		if flow.TransactionID() != FreeTransactionID {
			t.Fatalf("expected %q, got %q", FreeTransactionID, flow.TransactionID())
		}
		if flow.Step() != StepConfirmation {
			t.Fatalf("expected confirmation, got %s", flow.Step())
		}
	})

	t.Run("confirm free rejects a paid selection", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		_ = flow.SetQuantity("vip", 1)
		_ = flow.ProceedToPayment()
		if err := flow.ConfirmFree(); !errors.Is(err, ErrNotFree) {
			t.Fatalf("expected ErrNotFree, got %v", err)
		}
	})

	t.Run("successful payment records the transaction", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		_ = flow.SetQuantity("regular", 2)
		_ = flow.ProceedToPayment()

		spy := &spyProcessor{method: models.PaymentCard, txn: "CDTEST12345"}
		if err := flow.Pay(context.Background(), spy, ""); err != nil {
			t.Fatalf("pay: %v", err)
		}
		if !spy.called {
			t.Fatal("processor never ran")
		}
		if flow.TransactionID() != "CDTEST12345" {
			t.Fatalf("transaction id not recorded: %q", flow.TransactionID())
		}
	})

	t.Run("failed payment stays on the payment step", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		_ = flow.SetQuantity("regular", 1)
		_ = flow.ProceedToPayment()

		spy := &spyProcessor{method: models.PaymentMpesa, err: ErrPaymentFailed}
		if err := flow.Pay(context.Background(), spy, "0712345678"); !errors.Is(err, ErrPaymentFailed) {
			t.Fatalf("expected ErrPaymentFailed, got %v", err)
		}
		if flow.Step() != StepPayment {
			t.Fatalf("expected to stay on payment, got %s", flow.Step())
		}

		// Manual retry succeeds.
		spy.err = nil
		spy.txn = "MPRETRY"
		if err := flow.Pay(context.Background(), spy, "0712345678"); err != nil {
			t.Fatalf("retry pay: %v", err)
		}
		if flow.Step() != StepConfirmation {
			t.Fatalf("expected confirmation after retry, got %s", flow.Step())
		}
	})

	t.Run("pay before the payment step is rejected", func(t *testing.T) {
		flow := NewBookingFlow(summitEvent(), nil)
		spy := &spyProcessor{method: models.PaymentCard}
		if err := flow.Pay(context.Background(), spy, ""); !errors.Is(err, ErrWrongStep) {
			t.Fatalf("expected ErrWrongStep, got %v", err)
		}
	})
}

func TestBookingFlow_Finish(t *testing.T) {
	t.Parallel()

	fired := 0
	flow := NewBookingFlow(freeEvent(), func() { fired++ })
	_ = flow.SetQuantity("general", 1)
	_ = flow.ProceedToPayment()
	if err := flow.ConfirmFree(); err != nil {
		t.Fatalf("confirm free: %v", err)
	}

	if err := flow.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected success callback once, fired %d times", fired)
	}
	if flow.Step() != StepTickets || flow.TotalTickets() != 0 || flow.TransactionID() != "" {
		t.Fatal("flow not reset after finish")
	}

	if err := flow.Finish(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep on double finish, got %v", err)
	}
}
