package submission

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const DefaultTimeout = 10 * time.Second

// Sender delivers a placed order to one remote destination.
type Sender interface {
	Send(ctx context.Context, o order.Order) error
}

type SenderFunc func(ctx context.Context, o order.Order) error

func (f SenderFunc) Send(ctx context.Context, o order.Order) error { return f(ctx, o) }

type target struct {
	name   string
	sender Sender
}

// Dispatcher submits orders in the background. Each sender is called once
// per order; failures are logged and dropped.
type Dispatcher struct {
	targets []target
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

type Option func(*Dispatcher)

func WithSender(name string, s Sender) Option {
	return func(d *Dispatcher) { d.targets = append(d.targets, target{name: name, sender: s}) }
}

func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{timeout: DefaultTimeout, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch returns immediately. Request cancellation does not reach the
// senders; only the per-send timeout bounds them.
func (d *Dispatcher) Dispatch(ctx context.Context, o order.Order) {
	if len(d.targets) == 0 {
		d.logger.Warn("no order senders configured, order not submitted", zap.String("order_id", o.ID))
		return
	}

	base := context.WithoutCancel(ctx)
	for _, t := range d.targets {
		d.wg.Add(1)
		go d.send(base, t, o)
	}
}

func (d *Dispatcher) send(base context.Context, t target, o order.Order) {
	defer d.wg.Done()

	log := d.logger.With(zap.String("sender", t.name), zap.String("order_id", o.ID))
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("order sender panicked", zap.Any("panic", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()

	start := time.Now()
	if err := t.sender.Send(ctx, o); err != nil {
		log.Error("order submission failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}
	log.Info("order submitted", zap.Duration("elapsed", time.Since(start)))
}

// Wait blocks until every in-flight send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
