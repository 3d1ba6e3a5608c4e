package cart

import "github.com/shopspring/decimal"

// Item is what the storefront page sends when a product button is clicked.
type Item struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Limit     int
}

type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Limit     int             `json:"limit"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

const (
	LabelAddToCart    = "Add to Cart"
	LabelAtOrderLimit = "At Order Limit"
)

// ButtonState is the projection of a product's counter onto its add button.
type ButtonState struct {
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
}
