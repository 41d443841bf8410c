// Package payment drives the post-order payment state machine across the
// mock and live processor paths.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

type State string

const (
	StateInitializing State = "INITIALIZING"
	StateReady        State = "READY"
	StateProcessing   State = "PROCESSING"
	StateSucceeded    State = "SUCCEEDED"
	StateFailed       State = "FAILED"
)

// String representation (for logging)
func (s State) String() string {
	return string(s)
}

// Backend is the slice of the storefront API the controller needs.
type Backend interface {
	CreateIntent(ctx context.Context, orderID int64) (domain.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string) error
}

// StatusSucceeded is the processor status that counts as a completed charge;
// every other status fails the attempt with the raw status attached.
const StatusSucceeded = "succeeded"

type ProcessorResult struct {
	IntentID string
	Status   string
}

// Processor confirms a live payment intent with the external processor.
type Processor interface {
	Confirm(ctx context.Context, clientSecret string) (ProcessorResult, error)
}

const defaultMockDelay = time.Second

type Option func(*Controller)

// WithMockDelay overrides the simulated processing delay of the mock path.
func WithMockDelay(d time.Duration) Option {
	return func(c *Controller) { c.mockDelay = d }
}

// WithClock overrides the clock used to synthesise mock confirmation
// references.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.clock = now }
}

// Controller owns one order's payment flow:
//
//	Initializing -> Ready -> Processing -> Succeeded | Failed
//
// Failed is terminal for the attempt, not the flow: Pay may be called again
// and reuses the same intent until RefreshIntent requests a new one. At most
// one attempt is in flight at a time.
type Controller struct {
	orderID   int64
	backend   Backend
	processor Processor
	logger    *zap.Logger
	mockDelay time.Duration
	clock     func() time.Time

	mu      sync.Mutex
	state   State
	intent  domain.PaymentIntent
	lastErr error
}

func NewController(orderID int64, backend Backend, processor Processor, logger *zap.Logger, options ...Option) *Controller {
	c := &Controller{
		orderID:   orderID,
		backend:   backend,
		processor: processor,
		logger:    logger,
		mockDelay: defaultMockDelay,
		clock:     time.Now,
		state:     StateInitializing,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Intent() domain.PaymentIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intent
}

// LastErr returns the failure of the most recent attempt, nil outside
// StateFailed.
func (c *Controller) LastErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Init requests a payment intent for the order and moves the flow to Ready.
// On failure the flow stays in Initializing so the caller can try again.
func (c *Controller) Init(ctx context.Context) error {
	intent, err := c.backend.CreateIntent(ctx, c.orderID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.intent = intent
	c.state = StateReady
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info("payment intent ready",
		zap.Int64("order_id", c.orderID),
		zap.Bool("mock", intent.IsMock()))
	return nil
}

// RefreshIntent replaces the current intent, for retries that should not
// reuse the previous one.
func (c *Controller) RefreshIntent(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateProcessing {
		c.mu.Unlock()
		return ErrPaymentInProgress
	}
	c.mu.Unlock()

	return c.Init(ctx)
}

// Pay runs one payment attempt. Allowed from Ready or Failed; a call while
// Processing is rejected, not queued.
func (c *Controller) Pay(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateProcessing:
		c.mu.Unlock()
		return ErrPaymentInProgress
	case StateReady, StateFailed:
	default:
		c.mu.Unlock()
		return ErrNotReady
	}
	c.state = StateProcessing
	c.lastErr = nil
	intent := c.intent
	c.mu.Unlock()

	var err error
	if intent.IsMock() {
		err = c.payMock(ctx)
	} else {
		err = c.payLive(ctx, intent)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		return err
	}
	c.state = StateSucceeded
	return nil
}

// payMock simulates the processor: a fixed delay, then a backend
// confirmation with a reference unique across repeated attempts.
func (c *Controller) payMock(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.mockDelay):
	}

	reference := fmt.Sprintf("%s_%d_%d", domain.MockSecretPrefix, c.orderID, c.clock().UnixMilli())
	if err := c.backend.ConfirmPayment(ctx, reference); err != nil {
		return &ProcessorError{Message: "Mock payment failed: " + err.Error()}
	}
	return nil
}

// payLive delegates to the external processor, then notifies the backend.
// Three outcomes: processor error, charge succeeded (confirm may still
// fail), or any other processor status.
func (c *Controller) payLive(ctx context.Context, intent domain.PaymentIntent) error {
	result, err := c.processor.Confirm(ctx, intent.ClientSecret)
	if err != nil {
		return &ProcessorError{Message: err.Error()}
	}

	if result.Status != StatusSucceeded {
		return &ProcessorError{Message: "Payment status: " + result.Status}
	}

	if err := c.backend.ConfirmPayment(ctx, result.IntentID); err != nil {
		c.logger.Error("backend confirmation failed after completed charge",
			zap.Int64("order_id", c.orderID),
			zap.String("intent_id", result.IntentID),
			zap.Error(err))
		return &ReconciliationError{IntentID: result.IntentID}
	}
	return nil
}
