package order

import (
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pickup"
)

// Summary renders the human-readable order text shown on the confirmation
// panel and sent as orderDetails.
func Summary(o Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Name: %s\n", o.Customer.FullName())
	if o.Customer.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", o.Customer.Phone)
	}
	if o.Customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", o.Customer.Email)
	}
	fmt.Fprintf(&b, "Payment Method: %s\n", o.PaymentMethod)
	b.WriteString("Items:\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "- %s x %d - $%s\n", l.Name, l.Quantity, FormatMoney(l.Subtotal()))
	}
	fmt.Fprintf(&b, "Pickup Date: %s\n", pickup.Format(o.PickupDate))
	fmt.Fprintf(&b, "Total: $%s", FormatMoney(o.Total))

	if o.PaymentMethod == PaymentVenmo {
		fmt.Fprintf(&b, "\nPlease include your order ID (%s) in the Venmo payment note.", o.ID)
	}
	return b.String()
}
