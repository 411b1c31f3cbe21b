package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSimulatedProcessor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("mpesa requires a phone number", func(t *testing.T) {
		p := NewMpesaProcessor(WithDelay(0))
		_, err := p.Process(ctx, PaymentRequest{Amount: 1000})
		if !errors.Is(err, ErrMissingPhone) {
			t.Fatalf("expected ErrMissingPhone, got %v", err)
		}
	})

	t.Run("mpesa rejects non-Kenyan phone numbers", func(t *testing.T) {
		p := NewMpesaProcessor(WithDelay(0))
		for _, phone := range []string{"12345", "+15551234567", "071234567890"} {
			_, err := p.Process(ctx, PaymentRequest{Amount: 1000, PhoneNumber: phone})
			if !errors.Is(err, ErrInvalidPhone) {
				t.Fatalf("phone %q: expected ErrInvalidPhone, got %v", phone, err)
			}
		}
	})

	t.Run("mpesa receipts are MP-prefixed", func(t *testing.T) {
		p := NewMpesaProcessor(WithDelay(0))
		txn, err := p.Process(ctx, PaymentRequest{Amount: 1000, PhoneNumber: "0712345678"})
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if !strings.HasPrefix(txn, "MP") || len(txn) != 12 {
			t.Fatalf("unexpected receipt %q", txn)
		}
	})

	t.Run("card references are CD-prefixed and need no phone", func(t *testing.T) {
		p := NewCardProcessor(WithDelay(0))
		txn, err := p.Process(ctx, PaymentRequest{Amount: 2500})
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if !strings.HasPrefix(txn, "CD") || len(txn) != 12 {
			t.Fatalf("unexpected reference %q", txn)
		}
	})

	t.Run("declines at fail rate one", func(t *testing.T) {
		p := NewCardProcessor(WithDelay(0), WithFailRate(1))
		_, err := p.Process(ctx, PaymentRequest{Amount: 2500})
		if !errors.Is(err, ErrPaymentFailed) {
			t.Fatalf("expected ErrPaymentFailed, got %v", err)
		}
	})

	t.Run("cancellation interrupts the processing window", func(t *testing.T) {
		p := NewCardProcessor(WithDelay(time.Minute))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := p.Process(cancelled, PaymentRequest{Amount: 2500})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
