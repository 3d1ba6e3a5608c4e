package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/limits"
)

// Engine owns the in-memory cart for one client and enforces weekly
// order limits through a limits.Store.
//
// Engine is not safe for concurrent use; the storefront session serializes
// access.
type Engine struct {
	store     limits.Store
	lines     []Line
	listeners []func()
}

func NewEngine(store limits.Store) *Engine {
	return &Engine{store: store}
}

// OnChange registers fn to run after every cart mutation.
func (e *Engine) OnChange(fn func()) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) notify() {
	for _, fn := range e.listeners {
		fn()
	}
}

// AddItem adds one unit of it to the cart. It fails with ErrLimitReached,
// leaving cart and counters untouched, when the product's weekly count has
// already reached it.Limit.
func (e *Engine) AddItem(ctx context.Context, it Item) error {
	if it.ProductID == "" || it.Limit < 0 || it.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: %+v", ErrInvalidItem, it)
	}

	counts, err := e.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load order counts: %w", err)
	}
	if n := counts[it.ProductID]; n >= it.Limit {
		return &LimitReachedError{ProductID: it.ProductID, Count: n, Limit: it.Limit}
	}

	idx := e.indexOf(it.ProductID)
	if idx >= 0 {
		e.lines[idx].Quantity++
	} else {
		e.lines = append(e.lines, Line{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  1,
			Limit:     it.Limit,
		})
	}

	if err := e.store.Increment(ctx, it.ProductID); err != nil {
		if idx >= 0 {
			e.lines[idx].Quantity--
		} else {
			e.lines = e.lines[:len(e.lines)-1]
		}
		return fmt.Errorf("persist order count: %w", err)
	}

	e.notify()
	return nil
}

func (e *Engine) indexOf(productID string) int {
	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Lines returns a copy of the cart in insertion order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Engine) Len() int { return len(e.lines) }

// Total is the exact sum of unit price × quantity. Rounding is left to
// presentation.
func (e *Engine) Total() decimal.Decimal {
	return Total(e.lines)
}

// Total sums a snapshot of lines the same way Engine.Total does.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Clear empties the cart. Order counters are not touched.
func (e *Engine) Clear() {
	e.lines = nil
	e.notify()
}

func (e *Engine) ButtonState(ctx context.Context, productID string, limit int) (ButtonState, error) {
	counts, err := e.store.Get(ctx)
	if err != nil {
		return ButtonState{}, fmt.Errorf("load order counts: %w", err)
	}
	return buttonState(counts[productID], limit), nil
}

// ButtonStates projects every product in weeklyLimits in a single store read.
func (e *Engine) ButtonStates(ctx context.Context, weeklyLimits map[string]int) (map[string]ButtonState, error) {
	counts, err := e.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load order counts: %w", err)
	}
	out := make(map[string]ButtonState, len(weeklyLimits))
	for id, limit := range weeklyLimits {
		out[id] = buttonState(counts[id], limit)
	}
	return out, nil
}

func buttonState(count, limit int) ButtonState {
	if count >= limit {
		return ButtonState{Enabled: false, Label: LabelAtOrderLimit}
	}
	return ButtonState{Enabled: true, Label: LabelAddToCart}
}

// AnyLimitReached reports whether any tracked product with a configured
// limit has reached it. Products absent from weeklyLimits are ignored.
func (e *Engine) AnyLimitReached(ctx context.Context, weeklyLimits map[string]int) (bool, error) {
	counts, err := e.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load order counts: %w", err)
	}
	for id, n := range counts {
		if limit, ok := weeklyLimits[id]; ok && n >= limit {
			return true, nil
		}
	}
	return false, nil
}
