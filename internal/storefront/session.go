package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/limits"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pickup"
)

const (
	EmptyCartMessage = "Your cart is empty."
	ResetMessage     = "Weekly order limits have been reset!"
)

type ProductView struct {
	ProductID   string           `json:"productId"`
	Name        string           `json:"name"`
	Price       string           `json:"price"`
	WeeklyLimit int              `json:"weeklyLimit"`
	Button      cart.ButtonState `json:"button"`
}

type StorefrontView struct {
	Products    []ProductView `json:"products"`
	LimitBanner bool          `json:"limitBanner"`
}

type CartRow struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartView struct {
	Rows    []CartRow `json:"rows"`
	Total   string    `json:"total"`
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
}

// Session is the single logical client: one cart, one counter record. All
// methods are serialized so concurrent callers behave like sequential UI
// events.
type Session struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	store    limits.Store
	engine   *cart.Engine
	checkout *checkout.Coordinator
	now      func() time.Time
	logger   *zap.Logger
}

type config struct {
	now           func() time.Time
	logger        *zap.Logger
	defaultMethod order.PaymentMethod
}

type Option func(*config)

func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

func WithDefaultPaymentMethod(m order.PaymentMethod) Option {
	return func(c *config) { c.defaultMethod = m }
}

func NewSession(cat *catalog.Catalog, store limits.Store, dispatcher checkout.Dispatcher, opts ...Option) *Session {
	cfg := config{now: time.Now, logger: zap.NewNop(), defaultMethod: order.PaymentCash}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := cart.NewEngine(store)
	engine.OnChange(func() {
		cfg.logger.Debug("cart changed", zap.Int("lines", engine.Len()), zap.String("total", order.FormatMoney(engine.Total())))
	})

	return &Session{
		catalog: cat,
		store:   store,
		engine:  engine,
		checkout: checkout.NewCoordinator(engine, dispatcher,
			checkout.WithClock(cfg.now),
			checkout.WithDefaultPaymentMethod(cfg.defaultMethod),
			checkout.WithLogger(cfg.logger),
		),
		now:    cfg.now,
		logger: cfg.logger,
	}
}

// Storefront projects the current counters onto every product button.
func (s *Session) Storefront(ctx context.Context) (StorefrontView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storefront(ctx)
}

func (s *Session) storefront(ctx context.Context) (StorefrontView, error) {
	weekly := s.catalog.Limits()
	states, err := s.engine.ButtonStates(ctx, weekly)
	if err != nil {
		return StorefrontView{}, err
	}
	banner, err := s.engine.AnyLimitReached(ctx, weekly)
	if err != nil {
		return StorefrontView{}, err
	}

	products := s.catalog.Products()
	view := StorefrontView{Products: make([]ProductView, 0, len(products)), LimitBanner: banner}
	for _, p := range products {
		view.Products = append(view.Products, ProductView{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       order.FormatMoney(p.Price),
			WeeklyLimit: p.WeeklyLimit,
			Button:      states[p.ID],
		})
	}
	return view, nil
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) cartView() CartView {
	lines := s.engine.Lines()
	view := CartView{
		Rows:  make([]CartRow, 0, len(lines)),
		Total: order.FormatMoney(s.engine.Total()),
		Empty: len(lines) == 0,
	}
	if view.Empty {
		view.Message = EmptyCartMessage
	}
	for _, l := range lines {
		view.Rows = append(view.Rows, CartRow{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     order.FormatMoney(l.UnitPrice),
			Quantity:  l.Quantity,
			Subtotal:  order.FormatMoney(l.Subtotal()),
		})
	}
	return view
}

// AddItem adds one unit of the catalog product and returns the refreshed cart.
func (s *Session) AddItem(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Lookup(productID)
	if err != nil {
		return CartView{}, err
	}

	err = s.engine.AddItem(ctx, cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Limit:     p.WeeklyLimit,
	})
	if err != nil {
		return CartView{}, err
	}
	return s.cartView(), nil
}

func (s *Session) Checkout(ctx context.Context, in checkout.CustomerInput) (checkout.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.PlaceOrder(ctx, in)
}

// ResetLimits clears every weekly counter and starts a fresh cart, the same
// state a reloaded page would show.
func (s *Session) ResetLimits(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset order limits: %w", err)
	}
	s.engine.Clear()
	s.logger.Info(ResetMessage)
	return nil
}

func (s *Session) PickupDate() time.Time {
	return pickup.Date(s.now())
}
