package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentCard  PaymentMethod = "Card"
	PaymentVenmo PaymentMethod = "Venmo"
)

// ParsePaymentMethod matches case-insensitively against the known methods.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCard, PaymentVenmo} {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
}

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Order is built once at checkout and never mutated afterwards.
type Order struct {
	ID            string          `json:"orderId"`
	Customer      Customer        `json:"customer"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Lines         []cart.Line     `json:"lines"`
	PickupDate    time.Time       `json:"pickupDate"`
	Total         decimal.Decimal `json:"total"`
	PlacedAt      time.Time       `json:"placedAt"`
}

// FormatMoney rounds to cents for display.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
