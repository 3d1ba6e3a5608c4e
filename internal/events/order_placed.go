package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const (
	orderPlacedEventName    = "OrderPlaced"
	orderPlacedEventVersion = 1
	orderPlacedSchema       = "contracts/events/storefront/OrderPlaced.v1.payload.schema.json"
)

type OrderPlacedItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// OrderPlacedPayload is the v1 payload. Money is a 2-decimal string.
type OrderPlacedPayload struct {
	OrderID       string            `json:"orderId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Phone         string            `json:"phone,omitempty"`
	Email         string            `json:"email,omitempty"`
	PaymentMethod string            `json:"paymentMethod"`
	Items         []OrderPlacedItem `json:"items"`
	Total         string            `json:"total"`
	PickupDate    string            `json:"pickupDate"`
	PlacedAt      time.Time         `json:"placedAt"`
}

type OrderPlacedEnvelope = EventEnvelope[OrderPlacedPayload]

func BuildOrderPlacedEnvelope(o order.Order, correlationID string) OrderPlacedEnvelope {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	items := make([]OrderPlacedItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderPlacedItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: order.FormatMoney(l.UnitPrice),
		})
	}

	return OrderPlacedEnvelope{
		EventName:     orderPlacedEventName,
		EventVersion:  orderPlacedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: correlationID,
		Producer:      storefrontProducerName,
		PartitionKey:  o.ID,
		OccurredAt:    time.Now().UTC(),
		Schema:        orderPlacedSchema,
		Payload: OrderPlacedPayload{
			OrderID:       o.ID,
			FirstName:     o.Customer.FirstName,
			LastName:      o.Customer.LastName,
			Phone:         o.Customer.Phone,
			Email:         o.Customer.Email,
			PaymentMethod: string(o.PaymentMethod),
			Items:         items,
			Total:         order.FormatMoney(o.Total),
			PickupDate:    o.PickupDate.Format("2006-01-02"),
			PlacedAt:      o.PlacedAt.UTC(),
		},
	}
}
