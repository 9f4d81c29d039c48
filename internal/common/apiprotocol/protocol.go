// Package apiprotocol holds the wire representation of the order-desk API:
// snake_case JSON objects, collections as arrays. The client treats these
// records as its in-memory entities; the server converts them at its
// handler boundary. Optional fields are pointers, never sentinel values.
// Timestamps are opaque strings on the wire, owned by the server.
package apiprotocol

import "github.com/shopspring/decimal"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodPaypal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
)

// Client is a customer record. ID is 0 until the server assigns one.
type Client struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	CreatedAt *string `json:"created_at,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ProviderID  *int            `json:"provider_id"`
	CreatedAt   *string         `json:"created_at,omitempty"`
	UpdatedAt   *string         `json:"updated_at,omitempty"`
}

// Order amounts are computed by the server; clients send zeroes on create.
type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"order_number"`
	ClientID        int             `json:"client_id"`
	OrderDate       *string         `json:"order_date"`
	OrderStatus     string          `json:"order_status"`
	PaymentMethod   string          `json:"payment_method"`
	CurrencyCode    string          `json:"currency_code"`
	SubtotalAmount  decimal.Decimal `json:"subtotal_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress *string         `json:"shipping_address"`
	BillingAddress  *string         `json:"billing_address"`
	Notes           *string         `json:"notes"`
	CreatedAt       *string         `json:"created_at,omitempty"`
	UpdatedAt       *string         `json:"updated_at,omitempty"`
}

// OrderProduct is one order line item. LineTotal is always server-computed
// as quantity times unit price.
type OrderProduct struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"order_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// APIError is the body the server sends with any non-2xx status.
type APIError struct {
	Error string `json:"error"`
}
