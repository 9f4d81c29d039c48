package viewmodel

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/pkg/logging"
)

func NewOrdersViewModel(gw Gateway[apiprotocol.Order], logger *logging.ZapLogger) *ViewModel[apiprotocol.Order] {
	return New(ordersSchema(), gw, logger)
}

// The four amount fields and the order date are displayed but never sent:
// the backend owns them and the client always submits zeroes.
func ordersSchema() Schema[apiprotocol.Order] {
	return Schema[apiprotocol.Order]{
		Noun:   "order",
		Plural: "orders",
		ID:     func(o *apiprotocol.Order) int { return o.ID },
		Fields: []FieldSpec[apiprotocol.Order]{
			{
				Name:    "order_number",
				Present: func(o *apiprotocol.Order) string { return o.OrderNumber },
			},
			{
				Name:    "client_id",
				Present: func(o *apiprotocol.Order) string { return presentInt(o.ClientID) },
			},
			{
				Name:    "order_date",
				Present: func(o *apiprotocol.Order) string { return presentOptString(o.OrderDate) },
			},
			{
				Name:    "order_status",
				Default: apiprotocol.OrderStatusPending,
				Present: func(o *apiprotocol.Order) string { return o.OrderStatus },
			},
			{
				Name:    "payment_method",
				Default: apiprotocol.PaymentMethodCreditCard,
				Present: func(o *apiprotocol.Order) string { return o.PaymentMethod },
			},
			{
				Name:    "currency_code",
				Default: "EUR",
				Present: func(o *apiprotocol.Order) string { return o.CurrencyCode },
			},
			{
				Name:    "subtotal_amount",
				Default: "0",
				Present: func(o *apiprotocol.Order) string { return o.SubtotalAmount.String() },
			},
			{
				Name:    "discount_amount",
				Default: "0",
				Present: func(o *apiprotocol.Order) string { return o.DiscountAmount.String() },
			},
			{
				Name:    "tax_amount",
				Default: "0",
				Present: func(o *apiprotocol.Order) string { return o.TaxAmount.String() },
			},
			{
				Name:    "total_amount",
				Default: "0",
				Present: func(o *apiprotocol.Order) string { return o.TotalAmount.String() },
			},
			{
				Name:    "shipping_address",
				Present: func(o *apiprotocol.Order) string { return presentOptString(o.ShippingAddress) },
			},
			{
				Name:    "billing_address",
				Present: func(o *apiprotocol.Order) string { return presentOptString(o.BillingAddress) },
			},
			{
				Name:    "notes",
				Present: func(o *apiprotocol.Order) string { return presentOptString(o.Notes) },
			},
			{
				Name:    "created_at",
				Present: func(o *apiprotocol.Order) string { return presentOptString(o.CreatedAt) },
			},
			{
				Name:    "updated_at",
				Present: func(o *apiprotocol.Order) string { return presentOptString(o.UpdatedAt) },
			},
		},
		Collect: collectOrder,
	}
}

func collectOrder(get func(name string) string) (*apiprotocol.Order, string) {
	number := strings.TrimSpace(get("order_number"))
	if number == "" {
		return nil, "Order number is required"
	}
	clientID, err := strconv.Atoi(strings.TrimSpace(get("client_id")))
	if err != nil || clientID <= 0 {
		return nil, "Valid client ID is required"
	}
	return &apiprotocol.Order{
		OrderNumber:     number,
		ClientID:        clientID,
		OrderStatus:     strings.TrimSpace(get("order_status")),
		PaymentMethod:   strings.TrimSpace(get("payment_method")),
		CurrencyCode:    strings.TrimSpace(get("currency_code")),
		SubtotalAmount:  decimal.Zero,
		DiscountAmount:  decimal.Zero,
		TaxAmount:       decimal.Zero,
		TotalAmount:     decimal.Zero,
		ShippingAddress: optString(strings.TrimSpace(get("shipping_address"))),
		BillingAddress:  optString(strings.TrimSpace(get("billing_address"))),
		Notes:           optString(strings.TrimSpace(get("notes"))),
	}, ""
}
