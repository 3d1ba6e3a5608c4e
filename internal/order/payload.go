package order

// Payload is the JSON body the spreadsheet collector expects.
type Payload struct {
	OrderID       string `json:"orderId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	PaymentMethod string `json:"paymentMethod"`
	OrderDetails  string `json:"orderDetails"`
	Total         string `json:"total"`
}

func NewPayload(o Order) Payload {
	return Payload{
		OrderID:       o.ID,
		FirstName:     o.Customer.FirstName,
		LastName:      o.Customer.LastName,
		Phone:         o.Customer.Phone,
		Email:         o.Customer.Email,
		PaymentMethod: string(o.PaymentMethod),
		OrderDetails:  Summary(o),
		Total:         FormatMoney(o.Total),
	}
}
