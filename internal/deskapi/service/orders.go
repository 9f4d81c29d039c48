package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"orderdesk/internal/deskapi/data"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

var orderStatuses = map[data.OrderStatus]struct{}{
	data.PendingStatus:   {},
	data.PaidStatus:      {},
	data.ShippedStatus:   {},
	data.CompletedStatus: {},
	data.CancelledStatus: {},
}

var paymentMethods = map[data.PaymentMethod]struct{}{
	data.CreditCardMethod:   {},
	data.PayPalMethod:       {},
	data.BankTransferMethod: {},
	data.CashMethod:         {},
}

type Orders struct {
	repository         Repository
	transactionManager TransactionManager
}

func NewOrders(repository Repository, transactionManager TransactionManager) *Orders {
	return &Orders{
		repository:         repository,
		transactionManager: transactionManager,
	}
}

func (s *Orders) List(ctx context.Context) ([]data.Order, error) {
	orders, err := s.repository.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	return orders, nil
}

func (s *Orders) Get(ctx context.Context, id int) (data.Order, error) {
	order, err := s.repository.GetOrder(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.Order{}, ErrNotFound
		default:
			return data.Order{}, fmt.Errorf("error getting order: %w", err)
		}
	}
	return order, nil
}

// Create stores the order with a generated order number when the draft
// carries a blank one. Subtotal and total start at zero and follow the
// line items from then on.
func (s *Orders) Create(ctx context.Context, draft data.Order) (data.Order, error) {
	if err := validateOrder(&draft); err != nil {
		return data.Order{}, err
	}
	if draft.OrderNumber == "" {
		draft.OrderNumber = "ORD-" + uuid.NewString()
	}
	created, err := s.repository.InsertOrder(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrForeignKeyViolation):
			return data.Order{}, invalidField("client_id")
		case errors.Is(err, data.ErrUniqueConstraintViolation):
			return data.Order{}, ErrOrderNumberTaken
		default:
			return data.Order{}, fmt.Errorf("error inserting order: %w", err)
		}
	}
	return created, nil
}

// Update changes the mutable order fields and recomputes the stored
// amounts. The order number and the client assigned at creation stay as
// they are whatever the request carries.
func (s *Orders) Update(ctx context.Context, order data.Order) (data.Order, error) {
	if err := validateOrder(&order); err != nil {
		return data.Order{}, err
	}

	var updated data.Order
	err := s.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repository.UpdateOrder(ctx, order)
		if err != nil {
			return err
		}
		if err := s.repository.RecalculateOrderAmounts(ctx, order.ID); err != nil {
			return err
		}
		updated, err = s.repository.GetOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.Order{}, ErrNotFound
		default:
			return data.Order{}, fmt.Errorf("error updating order: %w", err)
		}
	}
	return updated, nil
}

func (s *Orders) Delete(ctx context.Context, id int) error {
	if err := s.repository.DeleteOrder(ctx, id); err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return ErrNotFound
		default:
			return fmt.Errorf("error deleting order: %w", err)
		}
	}
	return nil
}

func validateOrder(order *data.Order) error {
	if order.ClientID <= 0 {
		return invalidField("client_id")
	}
	order.OrderNumber = strings.TrimSpace(order.OrderNumber)
	if len(order.OrderNumber) > 50 {
		return invalidField("order_number")
	}
	if order.OrderStatus == "" {
		order.OrderStatus = data.PendingStatus
	}
	if _, ok := orderStatuses[order.OrderStatus]; !ok {
		return invalidField("order_status")
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = data.CreditCardMethod
	}
	if _, ok := paymentMethods[order.PaymentMethod]; !ok {
		return invalidField("payment_method")
	}
	order.CurrencyCode = strings.ToUpper(strings.TrimSpace(order.CurrencyCode))
	if order.CurrencyCode == "" {
		order.CurrencyCode = "EUR"
	}
	if !currencyCodePattern.MatchString(order.CurrencyCode) {
		return invalidField("currency_code")
	}
	if order.DiscountAmount.IsNegative() {
		return invalidField("discount_amount")
	}
	if order.TaxAmount.IsNegative() {
		return invalidField("tax_amount")
	}
	if order.ShippingAddress != nil && len(*order.ShippingAddress) > maxTextFieldLength {
		return invalidField("shipping_address")
	}
	if order.BillingAddress != nil && len(*order.BillingAddress) > maxTextFieldLength {
		return invalidField("billing_address")
	}
	return nil
}
