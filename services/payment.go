package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"

	"tiketi/kenya"
	"tiketi/models"
)

var (
	ErrPaymentFailed = errors.New("PAYMENT_FAILED")
	ErrMissingPhone  = errors.New("MISSING_PHONE")
	ErrInvalidPhone  = errors.New("INVALID_PHONE")
)

// PaymentRequest is what a processor needs to collect a payment.
type PaymentRequest struct {
	Amount      int
	PhoneNumber string
}

// PaymentProcessor simulates one payment rail. Process blocks for the
// processing window and returns a synthetic transaction id, or
// ErrPaymentFailed. There is no automatic retry; callers stay on the
// payment step and retry manually.
type PaymentProcessor interface {
	Method() models.PaymentMethod
	Process(ctx context.Context, req PaymentRequest) (string, error)
}

// SimulatedProcessor stands in for both supported rails. M-Pesa
// requires a Kenyan phone number for the STK push; card does not.
type SimulatedProcessor struct {
	method   models.PaymentMethod
	delay    time.Duration
	failRate float64
	log      *logrus.Entry
}

type ProcessorOption func(*SimulatedProcessor)

// WithDelay overrides the simulated processing window (zero in tests).
func WithDelay(d time.Duration) ProcessorOption {
	return func(p *SimulatedProcessor) { p.delay = d }
}

// WithFailRate sets the probability of a simulated decline in [0, 1].
func WithFailRate(rate float64) ProcessorOption {
	return func(p *SimulatedProcessor) { p.failRate = rate }
}

func newProcessor(method models.PaymentMethod, delay time.Duration, opts ...ProcessorOption) *SimulatedProcessor {
	p := &SimulatedProcessor{
		method: method,
		delay:  delay,
		log:    logrus.WithField("processor", string(method)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewMpesaProcessor simulates an M-Pesa STK push: roughly three
// seconds of processing, then an MP-prefixed receipt.
func NewMpesaProcessor(opts ...ProcessorOption) *SimulatedProcessor {
	return newProcessor(models.PaymentMpesa, 3*time.Second, opts...)
}

// NewCardProcessor simulates a card charge: roughly two seconds, then
// a CD-prefixed reference.
func NewCardProcessor(opts ...ProcessorOption) *SimulatedProcessor {
	return newProcessor(models.PaymentCard, 2*time.Second, opts...)
}

func (p *SimulatedProcessor) Method() models.PaymentMethod {
	return p.method
}

func (p *SimulatedProcessor) Process(ctx context.Context, req PaymentRequest) (string, error) {
	if p.method == models.PaymentMpesa {
		if strings.TrimSpace(req.PhoneNumber) == "" {
			return "", ErrMissingPhone
		}
		if !kenya.ValidPhoneNumber(req.PhoneNumber) {
			return "", ErrInvalidPhone
		}
		p.log.WithFields(logrus.Fields{
			"phone":  kenya.FormatPhoneNumber(req.PhoneNumber),
			"amount": req.Amount,
		}).Info("payment request sent to phone")
	}

	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}

	if p.failRate > 0 && rand.Float64() < p.failRate {
		p.log.WithField("amount", req.Amount).Warn("simulated payment declined")
		return "", ErrPaymentFailed
	}

	var txn string
	switch p.method {
	case models.PaymentMpesa:
		txn = "MP" + strings.ToUpper(shortuuid.New()[:10])
	case models.PaymentCard:
		txn = "CD" + strings.ToUpper(shortuuid.New()[:10])
	default:
		txn = strings.ToUpper(shortuuid.New()[:12])
	}
	p.log.WithFields(logrus.Fields{"amount": req.Amount, "transaction": txn}).Info("payment successful")
	return txn, nil
}
