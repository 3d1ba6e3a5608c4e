package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pickup"
)

var (
	ErrMissingName    = errors.New("first and last name are required")
	ErrMissingContact = errors.New("phone or email is required")
	ErrEmptyCart      = errors.New("cart is empty")
)

// CustomerInput is the raw checkout form.
type CustomerInput struct {
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	PaymentMethod order.PaymentMethod
}

func (in CustomerInput) trimmed() CustomerInput {
	return CustomerInput{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		PaymentMethod: in.PaymentMethod,
	}
}

// Validate checks the form after trimming whitespace.
func Validate(in CustomerInput) error {
	in = in.trimmed()
	if in.FirstName == "" || in.LastName == "" {
		return ErrMissingName
	}
	if in.Phone == "" && in.Email == "" {
		return ErrMissingContact
	}
	return nil
}

// Dispatcher hands a finished order to the outbound submitters without
// blocking the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, o order.Order)
}

// Confirmation is what the UI shows once the order has been handed off.
type Confirmation struct {
	OrderID    string          `json:"orderId"`
	Summary    string          `json:"summary"`
	PickupDate time.Time       `json:"pickupDate"`
	Total      decimal.Decimal `json:"total"`
}

type Coordinator struct {
	engine        *cart.Engine
	dispatcher    Dispatcher
	now           func() time.Time
	newID         func() (string, error)
	defaultMethod order.PaymentMethod
	logger        *zap.Logger
}

type Option func(*Coordinator)

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithIDGenerator(fn func() (string, error)) Option {
	return func(c *Coordinator) { c.newID = fn }
}

// WithDefaultPaymentMethod is used when the form leaves the method blank.
func WithDefaultPaymentMethod(m order.PaymentMethod) Option {
	return func(c *Coordinator) { c.defaultMethod = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

func NewCoordinator(engine *cart.Engine, dispatcher Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		engine:        engine,
		dispatcher:    dispatcher,
		now:           time.Now,
		newID:         order.NewID,
		defaultMethod: order.PaymentCash,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildOrder snapshots lines into an immutable order. It does not touch the cart.
func (c *Coordinator) BuildOrder(lines []cart.Line, in CustomerInput, now time.Time) (order.Order, error) {
	if len(lines) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	id, err := c.newID()
	if err != nil {
		return order.Order{}, fmt.Errorf("build order: %w", err)
	}

	in = in.trimmed()
	method := in.PaymentMethod
	if method == "" {
		method = c.defaultMethod
	}

	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)

	return order.Order{
		ID: id,
		Customer: order.Customer{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
			Email:     in.Email,
		},
		PaymentMethod: method,
		Lines:         snapshot,
		PickupDate:    pickup.Date(now),
		Total:         cart.Total(snapshot),
		PlacedAt:      now,
	}, nil
}

// Submit dispatches the order and clears the cart. Weekly counters are left
// as they are; they were charged when each item was added.
func (c *Coordinator) Submit(ctx context.Context, o order.Order) Confirmation {
	c.dispatcher.Dispatch(ctx, o)
	c.engine.Clear()

	c.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("payment_method", string(o.PaymentMethod)),
		zap.Int("lines", len(o.Lines)),
		zap.String("total", order.FormatMoney(o.Total)),
	)

	return Confirmation{
		OrderID:    o.ID,
		Summary:    order.Summary(o),
		PickupDate: o.PickupDate,
		Total:      o.Total,
	}
}

// PlaceOrder validates, builds and submits. Any error leaves the cart intact
// and dispatches nothing.
func (c *Coordinator) PlaceOrder(ctx context.Context, in CustomerInput) (Confirmation, error) {
	if err := Validate(in); err != nil {
		return Confirmation{}, err
	}

	o, err := c.BuildOrder(c.engine.Lines(), in, c.now())
	if err != nil {
		return Confirmation{}, err
	}

	return c.Submit(ctx, o), nil
}
