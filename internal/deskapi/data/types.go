package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	PendingStatus   = OrderStatus("pending")
	PaidStatus      = OrderStatus("paid")
	ShippedStatus   = OrderStatus("shipped")
	CompletedStatus = OrderStatus("completed")
	CancelledStatus = OrderStatus("cancelled")
)

type PaymentMethod string

const (
	CreditCardMethod   = PaymentMethod("credit_card")
	PayPalMethod       = PaymentMethod("paypal")
	BankTransferMethod = PaymentMethod("bank_transfer")
	CashMethod         = PaymentMethod("cash")
)

type Client struct {
	ID        int
	Name      string
	Email     string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID          int
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	ProviderID  *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Order struct {
	ID              int
	OrderNumber     string
	ClientID        int
	OrderDate       *time.Time
	OrderStatus     OrderStatus
	PaymentMethod   PaymentMethod
	CurrencyCode    string
	SubtotalAmount  decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	ShippingAddress *string
	BillingAddress  *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderProduct struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
